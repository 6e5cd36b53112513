// Package polynomial evaluates the orthogonal polynomial families used as
// basis functions by the identification pipeline.
//
// The families follow the conventions of the basis expansion on [0,1]:
//
//   - Chebyshev: shifted Chebyshev polynomials of the first kind, T*_p(x) = T_p(2x-1)
//   - Legendre:  shifted Legendre polynomials, P*_p(x) = P_p(2x-1)
//   - Laguerre:  Laguerre polynomials L_p(x)
//   - Hermite:   physicists' Hermite polynomials H_p(x)
//
// Every family is defined by a three-term recurrence
//
//	P_0 = 1
//	P_{k+1} = ((a0_k + a1_k*x)*P_k - beta_k*P_{k-1}) / gamma_k
//
// which is used both for evaluation and for expanding a polynomial into
// power-basis coefficients.
package polynomial

import (
	"fmt"
	"math"
	"strings"

	"github.com/YuminosukeSato/structid/pkg/errors"
)

// Evaluator evaluates the basis polynomial of the given non-negative degree at x.
type Evaluator interface {
	Eval(degree int, x float64) float64
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(degree int, x float64) float64

// Eval implements Evaluator.
func (f EvaluatorFunc) Eval(degree int, x float64) float64 {
	return f(degree, x)
}

// Family selects one of the supported orthogonal polynomial families.
type Family int

const (
	Chebyshev Family = iota
	Legendre
	Laguerre
	Hermite
)

var familyNames = map[Family]string{
	Chebyshev: "chebyshev",
	Legendre:  "legendre",
	Laguerre:  "laguerre",
	Hermite:   "hermite",
}

// String returns the lower-case family name.
func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Valid reports whether f is one of the four supported families.
func (f Family) Valid() bool {
	_, ok := familyNames[f]
	return ok
}

// ParseFamily converts a family name to a Family. The empty string selects
// Chebyshev.
func ParseFamily(name string) (Family, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Chebyshev, nil
	}
	for f, n := range familyNames {
		if n == name {
			return f, nil
		}
	}
	return Chebyshev, errors.NewValidationError("polynomial", "unknown polynomial family", name)
}

// recurrence returns the coefficients of step k -> k+1.
func (f Family) recurrence(k int) (a0, a1, beta, gamma float64) {
	fk := float64(k)
	switch f {
	case Chebyshev:
		if k == 0 {
			return -1, 2, 0, 1
		}
		return -2, 4, 1, 1
	case Legendre:
		return -(2*fk + 1), 2 * (2*fk + 1), fk, fk + 1
	case Laguerre:
		return 2*fk + 1, -1, fk, fk + 1
	case Hermite:
		return 0, 2, 2 * fk, 1
	}
	return math.NaN(), math.NaN(), math.NaN(), 1
}

// Eval implements Evaluator. A negative degree yields NaN.
func (f Family) Eval(degree int, x float64) float64 {
	if degree < 0 {
		return math.NaN()
	}
	prev, cur := 0.0, 1.0
	for k := 0; k < degree; k++ {
		a0, a1, beta, gamma := f.recurrence(k)
		prev, cur = cur, ((a0+a1*x)*cur-beta*prev)/gamma
	}
	return cur
}

// PowerCoefficients expands the polynomial of the given degree into the power
// basis: the result c satisfies Eval(degree, x) = Σ c[k]*x^k.
func (f Family) PowerCoefficients(degree int) []float64 {
	if degree < 0 {
		return nil
	}
	prev := []float64{0}
	cur := []float64{1}
	for k := 0; k < degree; k++ {
		a0, a1, beta, gamma := f.recurrence(k)
		next := make([]float64, len(cur)+1)
		for i, c := range cur {
			next[i] += a0 * c
			next[i+1] += a1 * c
		}
		for i, c := range prev {
			next[i] -= beta * c
		}
		for i := range next {
			next[i] /= gamma
		}
		prev, cur = cur, next
	}
	return cur
}

// Symbol returns the conventional symbol of the degree-p member, e.g. "T*2"
// for the shifted Chebyshev polynomial of degree 2.
func (f Family) Symbol(degree int) string {
	switch f {
	case Chebyshev:
		return fmt.Sprintf("T*%d", degree)
	case Legendre:
		return fmt.Sprintf("P*%d", degree)
	case Laguerre:
		return fmt.Sprintf("L%d", degree)
	case Hermite:
		return fmt.Sprintf("H%d", degree)
	}
	return fmt.Sprintf("?%d", degree)
}
