package linear

import (
	"math"
	"strings"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"gonum.org/v1/gonum/optimize"
)

// LineSearcher minimises a scalar function starting from x0.
type LineSearcher interface {
	Minimize(f func(float64) float64, x0 float64) (float64, error)
}

// LineSearchFunc adapts a plain function to LineSearcher.
type LineSearchFunc func(f func(float64) float64, x0 float64) (float64, error)

// Minimize implements LineSearcher.
func (fn LineSearchFunc) Minimize(f func(float64) float64, x0 float64) (float64, error) {
	return fn(f, x0)
}

// ParseLineSearcher returns the searcher named by name: "golden" (also the
// empty string) or "nelder-mead".
func ParseLineSearcher(name string) (LineSearcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "golden", "golden-section":
		return GoldenSectionSearch{}, nil
	case "nelder-mead", "neldermead":
		return NelderMeadSearch{}, nil
	}
	return nil, errors.NewValidationError("line_search", "unknown line search", name)
}

// GoldenSectionSearch brackets a minimum starting from x0 and x0+Step by
// downhill expansion, then shrinks the bracket by the golden ratio. It needs
// no derivatives. The zero value is ready to use.
type GoldenSectionSearch struct {
	// Step is the initial bracket width; zero means 1.
	Step float64
	// Tolerance is the relative width at which the search stops; zero means
	// sqrt of the machine epsilon.
	Tolerance float64
	// MaxIterations caps the shrinking phase; zero means 5000.
	MaxIterations int
}

const (
	goldenRatio   = 1.618033988749895
	invGoldenTail = 0.3819660112501051 // 1 - 1/φ
	maxExpansions = 100
)

// Minimize implements LineSearcher.
func (s GoldenSectionSearch) Minimize(f func(float64) float64, x0 float64) (float64, error) {
	step := s.Step
	if step <= 0 {
		step = 1
	}
	tol := s.Tolerance
	if tol <= 0 {
		tol = 1.4901161193847656e-08
	}
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = 5000
	}

	// ブラケット (a, b, c) を f(b) <= f(a), f(b) <= f(c) になるまで広げる
	a, b := x0, x0+step
	fa, fb := f(a), f(b)
	if fb > fa {
		a, b = b, a
		fb = fa
	}
	c := b + goldenRatio*(b-a)
	fc := f(c)
	for i := 0; fc < fb; i++ {
		if i == maxExpansions {
			return c, errors.Newf("golden section: no bracket after %d expansions", maxExpansions)
		}
		a, b, fb = b, c, fc
		c = b + goldenRatio*(b-a)
		fc = f(c)
	}

	lo, hi := a, c
	if lo > hi {
		lo, hi = hi, lo
	}
	x1, x2 := b, b
	if hi-b > b-lo {
		x2 = b + invGoldenTail*(hi-b)
	} else {
		x1 = b - invGoldenTail*(b-lo)
	}
	f1, f2 := f(x1), f(x2)

	for i := 0; i < maxIter; i++ {
		if hi-lo <= tol*(math.Abs(x1)+math.Abs(x2)) || hi-lo <= tol*tol {
			break
		}
		if f2 < f1 {
			lo, x1, f1 = x1, x2, f2
			x2 = x1 + invGoldenTail*(hi-x1)
			f2 = f(x2)
		} else {
			hi, x2, f2 = x2, x1, f1
			x1 = x2 - invGoldenTail*(x2-lo)
			f1 = f(x1)
		}
	}
	if f1 < f2 {
		return x1, nil
	}
	return x2, nil
}

// NelderMeadSearch runs gonum's derivative-free Nelder-Mead method in one
// dimension. The zero value is ready to use.
type NelderMeadSearch struct {
	// SimplexSize is the initial simplex edge; zero means 0.05·max(1, |x0|).
	SimplexSize float64
	// Settings overrides the optimisation settings; nil uses defaults that
	// stop once the objective stops improving.
	Settings *optimize.Settings
}

// Minimize implements LineSearcher.
func (s NelderMeadSearch) Minimize(f func(float64) float64, x0 float64) (float64, error) {
	size := s.SimplexSize
	if size <= 0 {
		size = 0.05 * math.Max(1, math.Abs(x0))
	}

	settings := s.Settings
	if settings == nil {
		settings = &optimize.Settings{
			Converger: &optimize.FunctionConverge{
				Absolute:   0,
				Iterations: 40,
			},
			MajorIterations: 2000,
		}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 { return f(x[0]) },
	}
	res, err := optimize.Minimize(problem, []float64{x0}, settings, &optimize.NelderMead{SimplexSize: size})
	if res == nil {
		return x0, errors.Wrap(err, "nelder-mead line search")
	}
	if err != nil && !res.Status.Early() {
		return res.X[0], errors.Wrap(err, "nelder-mead line search")
	}
	return res.X[0], nil
}
