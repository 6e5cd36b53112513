package linear

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// coordinateDescent minimises ‖A·x − b‖₂ one coordinate at a time. Each sweep
// runs the configured LineSearcher on every coordinate in order, keeping the
// residual r = A·x − b current so a single evaluation costs O(rows).
type coordinateDescent struct {
	cfg *Config
}

func (s *coordinateDescent) Method() Method { return MethodCoordinateDescent }

func (s *coordinateDescent) Solve(a mat.Matrix, b []float64) ([]float64, error) {
	const op = "coordinate-descent"
	rows, n, err := checkSystem(op, a, b)
	if err != nil {
		return nil, err
	}

	cols := make([][]float64, n)
	for j := range cols {
		cols[j] = mat.Col(nil, j, a)
	}

	// x = 0 から開始するので残差は −b
	residual := make([]float64, rows)
	floats.ScaleTo(residual, -1, b)
	trial := make([]float64, rows)

	var searchErr error
	x, err := iterate(op, n, s.cfg, func(dst, x []float64) {
		copy(dst, x)
		for j, col := range cols {
			base := dst[j]
			objective := func(t float64) float64 {
				floats.AddScaledTo(trial, residual, t-base, col)
				return floats.Norm(trial, 2)
			}
			t, err := s.cfg.LineSearch.Minimize(objective, base)
			if err != nil && searchErr == nil {
				searchErr = err
			}
			// 厳密に改善しない場合は元の値を保持
			if !(objective(t) < objective(base)) {
				t = base
			}
			floats.AddScaled(residual, t-base, col)
			dst[j] = t
		}
	})
	if err != nil {
		return nil, err
	}
	if searchErr != nil {
		s.cfg.Logger.Debug("line search reported an early stop", searchErr)
	}
	return x, nil
}
