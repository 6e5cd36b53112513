package model

// Predictor は学習済みモデルでグループ化された入力から出力を予測するインターフェース
//
// inputs[g][j] はグループ g の変数 j のサンプル列、返り値は出力ごとの予測列。
type Predictor interface {
	Predict(inputs [][][]float64) ([][]float64, error)
}

// Describer は学習済みモデルを人が読める数式として表現するインターフェース
type Describer interface {
	// Formula は出力 o の数式を返す
	Formula(o int) (string, error)
	String() string
}

// Model は予測と数式表現の両方を提供する学習済みモデル
type Model interface {
	Predictor
	Describer
}
