package identification

import (
	"strconv"
	"strings"

	"github.com/YuminosukeSato/structid/linear"
	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/YuminosukeSato/structid/pkg/log"
	"github.com/YuminosukeSato/structid/polynomial"
)

// DefaultEpsilon is the convergence tolerance used when none is configured.
const DefaultEpsilon = 1e-6

// Config holds the settings of an Identifier
type Config struct {
	Family        polynomial.Family
	Evaluator     polynomial.Evaluator // overrides Family for basis evaluation
	Method        linear.Method
	Epsilon       float64
	MaxIterations int
	SplitLambdas  bool
	Weights       Weights
	LineSearch    linear.LineSearcher // coordinate descent only; nil uses the solver default
	Logger        log.Logger
}

// Option is a function that configures an Identifier
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Family:        polynomial.Chebyshev,
		Method:        linear.MethodDefault,
		Epsilon:       DefaultEpsilon,
		MaxIterations: linear.DefaultMaxIterations,
		Weights:       WeightsPerOutput,
	}
}

// WithPolynomial selects the orthogonal polynomial family
func WithPolynomial(family polynomial.Family) Option {
	return func(c *Config) {
		c.Family = family
	}
}

// WithEvaluator replaces the polynomial evaluator used to build the basis.
// Formula rendering still uses the configured family's symbols.
func WithEvaluator(eval polynomial.Evaluator) Option {
	return func(c *Config) {
		c.Evaluator = eval
	}
}

// WithMethod selects the equation solver used by every regression level
func WithMethod(method linear.Method) Option {
	return func(c *Config) {
		c.Method = method
	}
}

// WithEpsilon sets the solver tolerance; Fit rejects non-finite or
// non-positive values
func WithEpsilon(eps float64) Option {
	return func(c *Config) {
		c.Epsilon = eps
	}
}

// WithMaxIterations caps the iterative solvers
func WithMaxIterations(n int) Option {
	return func(c *Config) {
		c.MaxIterations = n
	}
}

// WithSplitLambdas solves λ per input group instead of jointly
func WithSplitLambdas(split bool) Option {
	return func(c *Config) {
		c.SplitLambdas = split
	}
}

// WithWeights selects how the λ targets are built
func WithWeights(w Weights) Option {
	return func(c *Config) {
		c.Weights = w
	}
}

// WithLineSearcher sets the 1-D minimiser used by coordinate descent
func WithLineSearcher(ls linear.LineSearcher) Option {
	return func(c *Config) {
		c.LineSearch = ls
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// ParseEpsilon parses a tolerance given as text. Unparsable, non-finite and
// non-positive values are a ValidationError; they never fall back to
// DefaultEpsilon.
func ParseEpsilon(s string) (float64, error) {
	eps, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.NewValidationError("epsilon", "not a number", s)
	}
	if err := linear.ValidateEpsilon(eps); err != nil {
		return 0, err
	}
	return eps, nil
}

// validate reports the first invalid setting.
func (c *Config) validate() error {
	if err := linear.ValidateEpsilon(c.Epsilon); err != nil {
		return err
	}
	if !c.Family.Valid() {
		return errors.NewValidationError("polynomial", "unknown polynomial family", int(c.Family))
	}
	if !c.Method.Valid() {
		return errors.NewValidationError("method", "unknown solver method", int(c.Method))
	}
	if c.Weights != WeightsPerOutput && c.Weights != WeightsAverage {
		return errors.NewValidationError("weights", "unknown weighting mode", int(c.Weights))
	}
	if c.MaxIterations <= 0 {
		return errors.NewValidationError("max_iterations", "must be positive", c.MaxIterations)
	}
	return nil
}

// solverOptions translates the configuration into linear.Solver options.
func (c *Config) solverOptions(logger log.Logger) []linear.Option {
	opts := []linear.Option{
		linear.WithMaxIterations(c.MaxIterations),
		linear.WithLogger(logger),
	}
	if c.LineSearch != nil {
		opts = append(opts, linear.WithLineSearcher(c.LineSearch))
	}
	return opts
}

func (c *Config) evaluator() polynomial.Evaluator {
	if c.Evaluator != nil {
		return c.Evaluator
	}
	return c.Family
}
