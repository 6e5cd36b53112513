package linear

import (
	"github.com/YuminosukeSato/structid/pkg/log"
)

// DefaultMaxIterations caps every iterative method. Exceeding it yields a
// ConvergenceError.
const DefaultMaxIterations = 1_000_000

// Config holds the settings shared by every solver method.
type Config struct {
	Epsilon       float64      // convergence tolerance, also the rank cut-off of the direct solve
	MaxIterations int          // iteration cap of the iterative methods
	LineSearch    LineSearcher // 1-D minimiser used by coordinate descent
	Logger        log.Logger
}

// Option is a function that configures a solver
type Option func(*Config)

// WithMaxIterations sets the iteration cap of the iterative methods
func WithMaxIterations(n int) Option {
	return func(c *Config) {
		c.MaxIterations = n
	}
}

// WithLineSearcher replaces the 1-D minimiser used by coordinate descent
func WithLineSearcher(ls LineSearcher) Option {
	return func(c *Config) {
		c.LineSearch = ls
	}
}

// WithLogger sets the logger used for convergence diagnostics
func WithLogger(logger log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
