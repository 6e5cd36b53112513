// Package metrics computes goodness-of-fit measures between an output row and
// its reconstruction.
package metrics

import (
	"math"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// checkPair は 2 つのベクトルが空でなく同じ長さであることを確認する
func checkPair(op string, yTrue, yPred []float64) error {
	if len(yTrue) == 0 {
		return errors.NewValueError(op, "empty vector")
	}
	if len(yPred) != len(yTrue) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred), 0)
	}
	return nil
}

// MaxError は最大絶対誤差（無限大ノルム）max|yTrue - yPred| を計算する
func MaxError(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("MaxError", yTrue, yPred); err != nil {
		return 0, err
	}
	return floats.Distance(yTrue, yPred, math.Inf(1)), nil
}

// MaxErrors は行ごとの MaxError を計算する
func MaxErrors(yTrue, yPred [][]float64) ([]float64, error) {
	if len(yPred) != len(yTrue) {
		return nil, errors.NewDimensionError("MaxErrors", len(yTrue), len(yPred), 0)
	}
	out := make([]float64, len(yTrue))
	for i := range yTrue {
		var err error
		if out[i], err = MaxError(yTrue[i], yPred[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("MSE", yTrue, yPred); err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	d := floats.Distance(yTrue, yPred, 2)
	return d * d / float64(len(yTrue)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	return floats.Distance(yTrue, yPred, 1) / float64(len(yTrue)), nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	// 全変動が0の場合（すべてのyTrueが同じ値）
	if floats.Max(yTrue) == floats.Min(yTrue) {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return stat.RSquaredFrom(yPred, yTrue, nil), nil
}

// Summary は 1 行分の誤差指標をまとめたもの
type Summary struct {
	Max  float64
	MSE  float64
	RMSE float64
	MAE  float64
	R2   float64 // yTrue が定数の場合は NaN
}

// Summarize は 1 行分の誤差指標をまとめて計算する
func Summarize(yTrue, yPred []float64) (Summary, error) {
	var s Summary
	var err error
	if s.Max, err = MaxError(yTrue, yPred); err != nil {
		return Summary{}, err
	}
	if s.MSE, err = MSE(yTrue, yPred); err != nil {
		return Summary{}, err
	}
	s.RMSE = math.Sqrt(s.MSE)
	if s.MAE, err = MAE(yTrue, yPred); err != nil {
		return Summary{}, err
	}
	if s.R2, err = R2Score(yTrue, yPred); err != nil {
		s.R2 = math.NaN()
	}
	return s, nil
}
