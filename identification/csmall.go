package identification

import (
	"github.com/YuminosukeSato/structid/linear"
	"github.com/YuminosukeSato/structid/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SolveCSmall regresses the stacked partial fits against the normalized
// output and returns one combination coefficient per group.
func SolveCSmall(fi *mat.Dense, y []float64, solver linear.Solver) ([]float64, error) {
	rows, _ := fi.Dims()
	if rows != len(y) {
		return nil, errors.NewDimensionError("SolveCSmall", rows, len(y), 0)
	}
	return solver.Solve(fi, y)
}
