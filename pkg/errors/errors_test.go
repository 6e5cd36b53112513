package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "structid: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "structid: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("BuildBasis", 10, 9, 0)

	want := "structid: BuildBasis: dimension mismatch on axis 0 (rows). Expected 10, got 9"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 10 || dimErr.Got != 9 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("epsilon", "must be a finite positive number", -1.0)

	want := "structid: validation failed for parameter 'epsilon': must be a finite positive number (got: -1)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestSingularMatrixErrorIsSentinel(t *testing.T) {
	err := NewSingularMatrixError("gauss-seidel", "L")

	if !Is(err, ErrSingularMatrix) {
		t.Error("Expected Is(err, ErrSingularMatrix) to be true")
	}

	var singErr *SingularMatrixError
	if !As(err, &singErr) {
		t.Fatal("Error should be castable to *SingularMatrixError")
	}
	if singErr.Factor != "L" {
		t.Errorf("Factor = %q, want L", singErr.Factor)
	}
}

func TestNewConvergenceError(t *testing.T) {
	err := NewConvergenceError("jacobi", 100, 0.5, 1e-6)

	if !strings.Contains(err.Error(), "jacobi failed to converge after 100 iterations") {
		t.Errorf("unexpected message: %v", err)
	}

	var convErr *ConvergenceError
	if !As(err, &convErr) {
		t.Error("Error should be castable to *ConvergenceError")
	}
}

func TestNewNormalizationError(t *testing.T) {
	err := NewNormalizationError("Normalize", 3, 7)

	want := "structid: Normalize: vector 3 has zero range (constant value 7)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestStageErrorUnwrapsCause(t *testing.T) {
	cause := NewSingularMatrixError("jacobi", "D")
	err := NewStageError("lambda", 1, cause)

	var stageErr *StageError
	if !As(err, &stageErr) {
		t.Fatal("Error should be castable to *StageError")
	}
	if stageErr.Stage != "lambda" || stageErr.Output != 1 {
		t.Errorf("unexpected stage info: %+v", stageErr)
	}

	// ステージで包んでも元のエラー種別を判定できること
	var singErr *SingularMatrixError
	if !As(err, &singErr) {
		t.Error("StageError should expose the wrapped SingularMatrixError")
	}
	if !Is(err, ErrSingularMatrix) {
		t.Error("StageError should unwrap to ErrSingularMatrix")
	}

	if NewStageError("lambda", 0, nil) != nil {
		t.Error("NewStageError(nil) should return nil")
	}
}

func TestStageErrorMessage(t *testing.T) {
	err := NewStageError("normalize", -1, New("boom"))
	if err.Error() != "structid: stage normalize: boom" {
		t.Errorf("Error() = %v", err.Error())
	}

	err = NewStageError("c", 2, New("boom"))
	if err.Error() != "structid: stage c (output 2): boom" {
		t.Errorf("Error() = %v", err.Error())
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("ok", []float64{1, 2, 3}, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := CheckNumericalStability("jacobi", []float64{1, math.NaN(), math.Inf(1)}, 4)
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatal("Expected NumericalInstabilityError")
	}
	if numErr.Iteration != 4 || len(numErr.Values) != 2 {
		t.Errorf("unexpected fields: %+v", numErr)
	}
}

func TestCheckMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if err := CheckMatrix("basis", m, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	m.Set(1, 0, math.Inf(-1))
	if err := CheckMatrix("basis", m, 0); err == nil {
		t.Error("Expected error for Inf entry")
	}
}

func TestRecoverShapePanic(t *testing.T) {
	mul := func() (err error) {
		defer Recover(&err, "mul")
		var c mat.Dense
		c.Mul(mat.NewDense(2, 3, nil), mat.NewDense(2, 3, nil))
		return nil
	}

	err := mul()
	if err == nil {
		t.Fatal("Expected panic to be converted to error")
	}

	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatal("Error should be castable to *PanicError")
	}
	if panicErr.Operation != "mul" {
		t.Errorf("Operation = %q, want mul", panicErr.Operation)
	}
	// gonum のパニック値は errors.Is で判定できること
	if !Is(err, mat.ErrShape) {
		t.Errorf("Expected mat.ErrShape in chain, got %v", panicErr.PanicValue)
	}
}

func TestRecoverKeepsExistingError(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "op")
		err = New("original")
		panic("later")
	}

	err := fn()
	if err == nil || !strings.Contains(err.Error(), "original") {
		t.Errorf("Expected wrapped original error, got %v", err)
	}
}

func TestWrapfAndIs(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Fit", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in Fit: expected 10, got 0") {
		t.Errorf("unexpected message: %v", wrapped)
	}
}

func TestWarnUsesZerologSinkFirst(t *testing.T) {
	var got []error
	SetZerologWarnFunc(func(w error) { got = append(got, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewIllConditionedWarning("gauss-seidel", "L", 1e17))

	if len(got) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(got))
	}
	if !strings.Contains(got[0].Error(), "ill-conditioned") {
		t.Errorf("unexpected warning: %v", got[0])
	}
}
