package identification

import (
	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/YuminosukeSato/structid/polynomial"
	"gonum.org/v1/gonum/mat"
)

// BuildBasis は正規化済み入力から基底行列 A を構築する
//
// A[k][col] = eval(p, inputs[g][j][k])。列は (グループ, 変数, 次数) の順で並び、
// layout.VariableColumns(v) が変数 v の列ブロックを与える。
func BuildBasis(inputs [][][]float64, layout *Layout, eval polynomial.Evaluator) (*mat.Dense, error) {
	n, err := sampleCount(inputs, layout)
	if err != nil {
		return nil, err
	}

	basis := mat.NewDense(n, layout.Columns(), nil)
	for v := 0; v < layout.Variables(); v++ {
		g, j := layout.variable(v)
		x := inputs[g][j]
		start, end := layout.VariableColumns(v)
		for k := 0; k < n; k++ {
			for col := start; col < end; col++ {
				basis.Set(k, col, eval.Eval(col-start, x[k]))
			}
		}
	}

	if err := errors.CheckMatrix("BuildBasis", basis, 0); err != nil {
		return nil, err
	}
	return basis, nil
}

// sampleCount checks inputs against layout and returns the common sample length.
func sampleCount(inputs [][][]float64, layout *Layout) (int, error) {
	if len(inputs) != layout.Groups() {
		return 0, errors.NewDimensionError("BuildBasis", layout.Groups(), len(inputs), 0)
	}
	n := -1
	for g, group := range inputs {
		if len(group) != layout.GroupSizes[g] {
			return 0, errors.NewDimensionError("BuildBasis", layout.GroupSizes[g], len(group), 1)
		}
		for _, v := range group {
			if n < 0 {
				n = len(v)
			}
			if len(v) != n {
				return 0, errors.NewDimensionError("BuildBasis", n, len(v), 0)
			}
		}
	}
	if n <= 0 {
		return 0, errors.NewModelError("BuildBasis", "empty data", errors.ErrEmptyData)
	}
	return n, nil
}
