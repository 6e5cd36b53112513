package identification

import (
	"github.com/YuminosukeSato/structid/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// PartialFits builds the n×G matrix whose column g is the partial fit
// f_g = ψ[:, group g]·a[g].
func PartialFits(psi *mat.Dense, a [][]float64, layout *Layout) (*mat.Dense, error) {
	rows, cols := psi.Dims()
	if cols != layout.Variables() {
		return nil, errors.NewDimensionError("PartialFits", layout.Variables(), cols, 1)
	}
	if len(a) != layout.Groups() {
		return nil, errors.NewDimensionError("PartialFits", layout.Groups(), len(a), 0)
	}

	fi := mat.NewDense(rows, layout.Groups(), nil)
	for g, coef := range a {
		start, end := layout.GroupVariables(g)
		if len(coef) != end-start {
			return nil, errors.NewDimensionError("PartialFits", end-start, len(coef), 0)
		}
		col := fi.ColView(g).(*mat.VecDense)
		col.MulVec(psi.Slice(0, rows, start, end), mat.NewVecDense(len(coef), coef))
	}
	return fi, nil
}
