package identification

import (
	"github.com/YuminosukeSato/structid/linear"
	"github.com/YuminosukeSato/structid/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SolveLambda solves the basis coefficients λ of one output row against
// target. In split mode every group's column block is solved on its own
// against the same target and the sub-vectors are concatenated, so the
// result has the same length either way.
func SolveLambda(basis *mat.Dense, target []float64, layout *Layout, solver linear.Solver, split bool) ([]float64, error) {
	rows, cols := basis.Dims()
	if cols != layout.Columns() {
		return nil, errors.NewDimensionError("SolveLambda", layout.Columns(), cols, 1)
	}
	if !split {
		return solver.Solve(basis, target)
	}

	lambda := make([]float64, 0, cols)
	for g := 0; g < layout.Groups(); g++ {
		start, end := layout.GroupColumns(g)
		sub, err := solver.Solve(basis.Slice(0, rows, start, end), target)
		if err != nil {
			return nil, errors.Wrapf(err, "group %d", g)
		}
		lambda = append(lambda, sub...)
	}
	return lambda, nil
}
