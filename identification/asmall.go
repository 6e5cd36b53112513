package identification

import (
	"github.com/YuminosukeSato/structid/linear"
	"github.com/YuminosukeSato/structid/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SolveASmall は各グループの ψ 列ブロックを正規化済み出力 y に回帰し、
// グループごとの係数ベクトル a を返す
func SolveASmall(psi *mat.Dense, y []float64, layout *Layout, solver linear.Solver) ([][]float64, error) {
	rows, cols := psi.Dims()
	if cols != layout.Variables() {
		return nil, errors.NewDimensionError("SolveASmall", layout.Variables(), cols, 1)
	}

	a := make([][]float64, layout.Groups())
	for g := range a {
		start, end := layout.GroupVariables(g)
		coef, err := solver.Solve(psi.Slice(0, rows, start, end), y)
		if err != nil {
			return nil, errors.Wrapf(err, "group %d", g)
		}
		a[g] = coef
	}
	return a, nil
}
