package identification

import (
	"github.com/YuminosukeSato/structid/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BuildPsi は基底行列と λ から ψ 行列（サンプル × 変数）を作る
//
// ψ[k][v] = Σ_{col ∈ 変数 v の列ブロック} A[k][col]·λ[col]
func BuildPsi(basis mat.Matrix, lambda []float64, layout *Layout) (*mat.Dense, error) {
	n, cols := basis.Dims()
	if cols != layout.Columns() {
		return nil, errors.NewDimensionError("BuildPsi", layout.Columns(), cols, 1)
	}
	if len(lambda) != cols {
		return nil, errors.NewDimensionError("BuildPsi", cols, len(lambda), 0)
	}

	psi := mat.NewDense(n, layout.Variables(), nil)
	row := make([]float64, cols)
	for k := 0; k < n; k++ {
		mat.Row(row, k, basis)
		floats.Mul(row, lambda)
		for v := 0; v < layout.Variables(); v++ {
			start, end := layout.VariableColumns(v)
			psi.Set(k, v, floats.Sum(row[start:end]))
		}
	}
	return psi, nil
}
