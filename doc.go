// Package structid identifies additive structural models of multivariate
// data with orthogonal polynomial bases.
//
// Given several groups of input variables and several output variables,
// structid approximates every output as a weighted sum of separable basis
// expansions of the inputs. The fit is built as a cascade of least-squares
// regressions: basis coefficients λ per variable, group coefficients a and
// combination coefficients c.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/structid/identification"
//	    "github.com/YuminosukeSato/structid/polynomial"
//	)
//
//	func main() {
//	    x1 := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
//	    x2 := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3}
//	    y := make([]float64, len(x1))
//	    for k := range y {
//	        y[k] = 2*x1[k] + x2[k]*x2[k]
//	    }
//
//	    id := identification.NewIdentifier(
//	        identification.WithPolynomial(polynomial.Legendre),
//	    )
//	    res, err := id.Fit([][][]float64{{x1}, {x2}}, [][]float64{y}, []int{2, 3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(res.Model)
//	    fmt.Println(res.Report)
//	}
//
// # Packages
//
//   - identification: the fitting pipeline, fitted model and error report
//   - linear: equation solvers (SVD least squares, coordinate descent,
//     Gauss-Seidel, Jacobi)
//   - polynomial: Chebyshev, Legendre, Laguerre and Hermite basis families
//   - preprocessing: min-max normalization with recorded scales
//   - metrics: fit error measures
//   - plotting: observed vs reconstructed plots
//   - core/model: shared model state and interfaces
//   - pkg/errors, pkg/log: typed errors and structured logging
//
// # Solvers
//
// Every regression level uses the same solver, selected with
// identification.WithMethod. The iterative methods stop when two successive
// iterates are closer than the tolerance and fail with a ConvergenceError
// after linear.DefaultMaxIterations sweeps.
package structid
