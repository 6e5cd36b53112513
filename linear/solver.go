// Package linear solves the overdetermined linear systems A·x ≈ b that every
// regression level of the identification pipeline reduces to.
//
// Four interchangeable methods are available behind the Solver interface:
// a direct SVD least-squares solve and three iterative schemes (coordinate
// descent, Gauss-Seidel and Jacobi on the normal equations).
package linear

import (
	"math"
	"strings"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/YuminosukeSato/structid/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// Method は方程式ソルバーの種類を表す
type Method int

const (
	// MethodDefault は SVD による直接最小二乗法（ランク落ちに強い）
	MethodDefault Method = iota
	// MethodCoordinateDescent は座標ごとの 1 次元最小化を繰り返す
	MethodCoordinateDescent
	// MethodGaussSeidel は正規方程式に対するガウス・ザイデル法
	MethodGaussSeidel
	// MethodJacobi は正規方程式に対するヤコビ法
	MethodJacobi
)

var methodNames = map[Method]string{
	MethodDefault:           "default",
	MethodCoordinateDescent: "coordinate-descent",
	MethodGaussSeidel:       "gauss-seidel",
	MethodJacobi:            "jacobi",
}

// String returns the canonical method name.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether m is one of the four methods.
func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

// ParseMethod converts a method name to a Method. Short tags ("lstsq",
// "cdesc", "seidel") are accepted as aliases and the empty string selects
// MethodDefault. Unknown names are a configuration error.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "lstsq":
		return MethodDefault, nil
	case "coordinate-descent", "cdesc":
		return MethodCoordinateDescent, nil
	case "gauss-seidel", "seidel":
		return MethodGaussSeidel, nil
	case "jacobi":
		return MethodJacobi, nil
	}
	return MethodDefault, errors.NewValidationError("method", "unknown solver method", name)
}

// Solver solves A·x ≈ b for x. A has one row per sample; len(b) must equal
// the row count of A.
type Solver interface {
	Solve(a mat.Matrix, b []float64) ([]float64, error)
	Method() Method
}

// NewSolver returns the solver implementing method with tolerance eps.
// eps must be finite and strictly positive.
//
// 使用例:
//
//	s, err := linear.NewSolver(linear.MethodGaussSeidel, 1e-8)
//	x, err := s.Solve(A, b)
func NewSolver(method Method, eps float64, opts ...Option) (Solver, error) {
	if err := ValidateEpsilon(eps); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, errors.NewValidationError("method", "unknown solver method", int(method))
	}

	cfg := &Config{
		Epsilon:       eps,
		MaxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.MaxIterations <= 0 {
		return nil, errors.NewValidationError("max_iterations", "must be positive", cfg.MaxIterations)
	}
	if cfg.LineSearch == nil {
		cfg.LineSearch = GoldenSectionSearch{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.GetLoggerWithName("linear")
	}

	switch method {
	case MethodCoordinateDescent:
		return &coordinateDescent{cfg: cfg}, nil
	case MethodGaussSeidel:
		return &gaussSeidel{cfg: cfg}, nil
	case MethodJacobi:
		return &jacobi{cfg: cfg}, nil
	default:
		return &leastSquares{cfg: cfg}, nil
	}
}

// Solve is a convenience wrapper around NewSolver(method, eps).Solve(a, b).
func Solve(a mat.Matrix, b []float64, eps float64, method Method, opts ...Option) ([]float64, error) {
	s, err := NewSolver(method, eps, opts...)
	if err != nil {
		return nil, err
	}
	return s.Solve(a, b)
}

// ValidateEpsilon returns a ValidationError unless eps is finite and > 0.
func ValidateEpsilon(eps float64) error {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		return errors.NewValidationError("epsilon", "must be a finite positive number", eps)
	}
	return nil
}

// checkSystem validates the shapes of A and b.
func checkSystem(op string, a mat.Matrix, b []float64) (rows, cols int, err error) {
	rows, cols = a.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(b) != rows {
		return 0, 0, errors.NewDimensionError(op, rows, len(b), 0)
	}
	return rows, cols, nil
}

// leastSquares は SVD による最小ノルム最小二乗解を求める
// eps より小さい（最大特異値との比で）特異値は切り捨てる
type leastSquares struct {
	cfg *Config
}

func (s *leastSquares) Method() Method { return MethodDefault }

func (s *leastSquares) Solve(a mat.Matrix, b []float64) ([]float64, error) {
	_, cols, err := checkSystem("lstsq", a, b)
	if err != nil {
		return nil, err
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errors.NewModelError("lstsq", "svd factorization failed", nil)
	}

	x := make([]float64, cols)
	rank := svd.Rank(s.cfg.Epsilon)
	if rank == 0 {
		// A はゼロ行列なので最小ノルム解はゼロ
		return x, nil
	}

	dst := mat.NewVecDense(cols, x)
	svd.SolveVecTo(dst, mat.NewVecDense(len(b), b), rank)
	return x, nil
}
