package identification

import (
	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/YuminosukeSato/structid/preprocessing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Combine returns the normalized prediction f = Σ_g c[g]·f_g.
func Combine(fi *mat.Dense, c []float64) ([]float64, error) {
	rows, groups := fi.Dims()
	if len(c) != groups {
		return nil, errors.NewDimensionError("Combine", groups, len(c), 0)
	}
	f := make([]float64, rows)
	mat.NewVecDense(rows, f).MulVec(fi, mat.NewVecDense(groups, c))
	return f, nil
}

// DenormalizeLike maps a normalized prediction back to the scale of the
// original output row, using the row's own min and max.
func DenormalizeLike(f, original []float64) ([]float64, error) {
	if len(f) != len(original) {
		return nil, errors.NewDimensionError("DenormalizeLike", len(original), len(f), 0)
	}
	if len(original) == 0 {
		return nil, errors.NewModelError("DenormalizeLike", "empty data", errors.ErrEmptyData)
	}
	lo, hi := floats.Min(original), floats.Max(original)
	scale := preprocessing.Scale{Min: lo, Range: hi - lo}
	return scale.DenormalizeVec(nil, f), nil
}
