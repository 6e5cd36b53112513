package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Scale は min-max 正規化の逆変換に必要な (最小値, 値域) の組
// original = normalized*Range + Min
type Scale struct {
	Min   float64
	Range float64
}

// Transform は保存済みのスケールで値を [0,1] 空間へ写す
func (s Scale) Transform(v float64) float64 {
	return (v - s.Min) / s.Range
}

// Denormalize は正規化された値を元のスケールへ戻す
func (s Scale) Denormalize(v float64) float64 {
	return v*s.Range + s.Min
}

// TransformVec は src を正規化して dst に書き込む。dst が nil の場合は新しく確保する
func (s Scale) TransformVec(dst, src []float64) []float64 {
	dst = resize(dst, len(src))
	for i, v := range src {
		dst[i] = s.Transform(v)
	}
	return dst
}

// DenormalizeVec は src を元のスケールへ戻して dst に書き込む。dst が nil の場合は新しく確保する
func (s Scale) DenormalizeVec(dst, src []float64) []float64 {
	dst = resize(dst, len(src))
	for i, v := range src {
		dst[i] = s.Denormalize(v)
	}
	return dst
}

// String はスケールの文字列表現を返す
func (s Scale) String() string {
	return fmt.Sprintf("Scale(min=%g, range=%g)", s.Min, s.Range)
}

// Normalize はベクトルを [0,1] へ min-max 正規化する
//
// 前提条件: ベクトルは少なくとも2つの異なる値を持つこと。
// 値域がゼロの場合は NormalizationError を返す。
//
// 使用例:
//
//	normed, scale, err := preprocessing.Normalize([]float64{2, 4, 6})
//	// normed = [0, 0.5, 1], scale = {Min: 2, Range: 4}
func Normalize(v []float64) ([]float64, Scale, error) {
	return normalize("Normalize", 0, v)
}

func normalize(op string, index int, v []float64) ([]float64, Scale, error) {
	if len(v) == 0 {
		return nil, Scale{}, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if err := errors.CheckNumericalStability(op, v, 0); err != nil {
		return nil, Scale{}, err
	}

	lo, hi := floats.Min(v), floats.Max(v)
	scale := Scale{Min: lo, Range: hi - lo}
	if scale.Range == 0 {
		return nil, Scale{}, errors.NewNormalizationError(op, index, lo)
	}

	return scale.TransformVec(nil, v), scale, nil
}

// NormalizeRows は各行を独立に正規化する（出力変数の正規化に使う）
// すべての行は同じ長さでなければならない
func NormalizeRows(rows [][]float64) ([][]float64, []Scale, error) {
	if len(rows) == 0 {
		return nil, nil, errors.NewModelError("NormalizeRows", "empty data", errors.ErrEmptyData)
	}

	n := len(rows[0])
	normed := make([][]float64, len(rows))
	scales := make([]Scale, len(rows))
	for i, row := range rows {
		if len(row) != n {
			return nil, nil, errors.NewDimensionError("NormalizeRows", n, len(row), 0)
		}
		var err error
		normed[i], scales[i], err = normalize("NormalizeRows", i, row)
		if err != nil {
			return nil, nil, err
		}
	}
	return normed, scales, nil
}

// NormalizeGroups は入力グループ内の各変数ベクトルを独立に正規化する
// グループ全体をまとめて正規化するのではない点に注意
func NormalizeGroups(groups [][][]float64) ([][][]float64, [][]Scale, error) {
	if len(groups) == 0 {
		return nil, nil, errors.NewModelError("NormalizeGroups", "empty data", errors.ErrEmptyData)
	}

	n := -1
	flat := 0
	normed := make([][][]float64, len(groups))
	scales := make([][]Scale, len(groups))
	for g, group := range groups {
		if len(group) == 0 {
			return nil, nil, errors.NewValueError("NormalizeGroups", fmt.Sprintf("group %d has no variables", g))
		}
		normed[g] = make([][]float64, len(group))
		scales[g] = make([]Scale, len(group))
		for j, v := range group {
			if n < 0 {
				n = len(v)
			}
			if len(v) != n {
				return nil, nil, errors.NewDimensionError("NormalizeGroups", n, len(v), 0)
			}
			var err error
			normed[g][j], scales[g][j], err = normalize("NormalizeGroups", flat, v)
			if err != nil {
				return nil, nil, err
			}
			flat++
		}
	}
	return normed, scales, nil
}

func resize(dst []float64, n int) []float64 {
	if cap(dst) < n {
		return make([]float64, n)
	}
	return dst[:n]
}
