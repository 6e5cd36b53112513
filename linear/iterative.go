package linear

import (
	"math"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/YuminosukeSato/structid/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// normalEquations は AᵀA と Aᵀb を計算する
func normalEquations(a mat.Matrix, b []float64) (*mat.Dense, *mat.VecDense) {
	var ata mat.Dense
	ata.Mul(a.T(), a)

	var atb mat.VecDense
	atb.MulVec(a.T(), mat.NewVecDense(len(b), b))
	return &ata, &atb
}

// stepFunc computes the next iterate from x into dst.
type stepFunc func(dst, x []float64)

// iterate runs step from the zero vector until two successive iterates are
// within eps in Euclidean distance.
func iterate(algorithm string, n int, cfg *Config, step stepFunc) ([]float64, error) {
	x := make([]float64, n)
	next := make([]float64, n)

	diff := math.Inf(1)
	for it := 1; it <= cfg.MaxIterations; it++ {
		step(next, x)
		if err := errors.CheckNumericalStability(algorithm, next, it); err != nil {
			return nil, err
		}

		diff = floats.Distance(next, x, 2)
		x, next = next, x
		if diff <= cfg.Epsilon {
			cfg.Logger.Debug("iterative solve converged",
				log.MethodKey, algorithm,
				log.IterationKey, it,
				log.DifferenceKey, diff,
			)
			return x, nil
		}
	}

	err := errors.NewConvergenceError(algorithm, cfg.MaxIterations, diff, cfg.Epsilon)
	cfg.Logger.Warn("iterative solve did not converge", err)
	return nil, err
}

// checkFactor turns the condition reported by a gonum inversion into either a
// SingularMatrixError (exactly singular) or an ill-conditioning warning.
func checkFactor(op, factor string, err error) error {
	if err == nil {
		return nil
	}
	cond, ok := err.(mat.Condition)
	if !ok {
		return errors.Wrapf(err, "%s: invert %s", op, factor)
	}
	if math.IsInf(float64(cond), 1) || math.IsNaN(float64(cond)) {
		return errors.NewSingularMatrixError(op, factor)
	}
	errors.Warn(errors.NewIllConditionedWarning(op, factor, float64(cond)))
	return nil
}

// gaussSeidel は AᵀA = L + U（L は対角を含む下三角、U は狭義上三角）と分解し
// x ← L⁻¹(Aᵀb − U·x) を収束まで繰り返す
type gaussSeidel struct {
	cfg *Config
}

func (s *gaussSeidel) Method() Method { return MethodGaussSeidel }

func (s *gaussSeidel) Solve(a mat.Matrix, b []float64) ([]float64, error) {
	const op = "gauss-seidel"
	_, n, err := checkSystem(op, a, b)
	if err != nil {
		return nil, err
	}

	ata, atb := normalEquations(a, b)

	lower := mat.NewTriDense(n, mat.Lower, nil)
	lower.Copy(ata)

	var lowerInv mat.TriDense
	if err := checkFactor(op, "L", lowerInv.InverseTri(lower)); err != nil {
		return nil, err
	}

	var upper mat.Dense
	upper.Sub(ata, lower)

	rhs := mat.NewVecDense(n, nil)
	return iterate(op, n, s.cfg, func(dst, x []float64) {
		rhs.MulVec(&upper, mat.NewVecDense(n, x))
		rhs.SubVec(atb, rhs)
		mat.NewVecDense(n, dst).MulVec(&lowerInv, rhs)
	})
}

// jacobi は AᵀA = D + R（D は対角、R は残り）と分解し
// x ← D⁻¹(Aᵀb − R·x) を収束まで繰り返す
type jacobi struct {
	cfg *Config
}

func (s *jacobi) Method() Method { return MethodJacobi }

func (s *jacobi) Solve(a mat.Matrix, b []float64) ([]float64, error) {
	const op = "jacobi"
	_, n, err := checkSystem(op, a, b)
	if err != nil {
		return nil, err
	}

	ata, atb := normalEquations(a, b)

	diag := make([]float64, n)
	invDiag := make([]float64, n)
	for i := range diag {
		diag[i] = ata.At(i, i)
		if diag[i] == 0 {
			return nil, errors.NewSingularMatrixError(op, "D")
		}
		invDiag[i] = 1 / diag[i]
	}
	// 対角成分の比が極端な場合は警告のみ
	if cond := math.Abs(floats.Max(diag) / floats.Min(diag)); cond > mat.ConditionTolerance {
		errors.Warn(errors.NewIllConditionedWarning(op, "D", cond))
	}

	var rest mat.Dense
	rest.Sub(ata, mat.NewDiagDense(n, diag))
	dInv := mat.NewDiagDense(n, invDiag)

	rhs := mat.NewVecDense(n, nil)
	return iterate(op, n, s.cfg, func(dst, x []float64) {
		rhs.MulVec(&rest, mat.NewVecDense(n, x))
		rhs.SubVec(atb, rhs)
		mat.NewVecDense(n, dst).MulVec(dInv, rhs)
	})
}
