// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 構造同定パイプラインの各ステージが返すエラーを型で区別できるようにし、
// cockroachdb/errors によるスタックトレースを付与します。
package errors

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("structid-warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// IllConditionedWarning は行列の分解は成功したが条件数が大きすぎる場合の警告です。
type IllConditionedWarning struct {
	Op        string
	Factor    string
	Condition float64
}

func (w *IllConditionedWarning) Error() string {
	return fmt.Sprintf("%s: factor %s is ill-conditioned (cond=%.3g); results may be inaccurate", w.Op, w.Factor, w.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *IllConditionedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Str("factor", w.Factor).
		Float64("condition", w.Condition).
		Str("type", "IllConditionedWarning")
}

// NewIllConditionedWarning は新しいIllConditionedWarningを作成します。
func NewIllConditionedWarning(op, factor string, condition float64) *IllConditionedWarning {
	return &IllConditionedWarning{Op: op, Factor: factor, Condition: condition}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("structid: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
// ステージ間でサンプル数や列ブロック幅が一致しない場合もこのエラーになります。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows/samples, 1 for columns/features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("structid: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName(e.Axis), e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName(e.Axis)).
		Str("type", "DimensionError")
}

func axisName(axis int) string {
	if axis == 0 {
		return "rows"
	}
	return "features"
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータ（設定値）の検証に失敗した場合のエラーです。
// 許容誤差など設定値が不正な場合に、既定値へ黙って置き換えずにこのエラーを返します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("structid: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("structid: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError はモデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("structid: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("structid: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// SingularMatrixError は反復法の分解行列（三角部分・対角部分）が逆行列を持たない場合のエラーです。
// errors.Is(err, ErrSingularMatrix) で判定できます。
type SingularMatrixError struct {
	Op     string
	Factor string
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("structid: %s: factor %s is singular", e.Op, e.Factor)
}

func (e *SingularMatrixError) Unwrap() error {
	return ErrSingularMatrix
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SingularMatrixError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("factor", e.Factor).
		Str("type", "SingularMatrixError")
}

// NewSingularMatrixError は新しいSingularMatrixErrorを作成し、スタックトレースを付与します。
func NewSingularMatrixError(op, factor string) error {
	err := &SingularMatrixError{Op: op, Factor: factor}
	return errors.WithStack(err)
}

// NormalizationError は正規化対象のベクトルが定数（値域ゼロ）の場合のエラーです。
// 各変数ベクトルは少なくとも2つの異なる値を持つ必要があります。
type NormalizationError struct {
	Op    string
	Index int
	Value float64
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("structid: %s: vector %d has zero range (constant value %g)", e.Op, e.Index, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NormalizationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("index", e.Index).
		Float64("value", e.Value).
		Str("type", "NormalizationError")
}

// NewNormalizationError は新しいNormalizationErrorを作成し、スタックトレースを付与します。
func NewNormalizationError(op string, index int, value float64) error {
	err := &NormalizationError{Op: op, Index: index, Value: value}
	return errors.WithStack(err)
}

// ConvergenceError は反復法が最大反復回数以内に収束しなかった場合のエラーです。
type ConvergenceError struct {
	Algorithm  string
	Iterations int
	Difference float64 // 最後の反復での連続差分のユークリッドノルム
	Tolerance  float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("structid: %s failed to converge after %d iterations (difference %.3g > tolerance %.3g)",
		e.Algorithm, e.Iterations, e.Difference, e.Tolerance)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConvergenceError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("algorithm", e.Algorithm).
		Int("iterations", e.Iterations).
		Float64("difference", e.Difference).
		Float64("tolerance", e.Tolerance).
		Str("type", "ConvergenceError")
}

// NewConvergenceError は新しいConvergenceErrorを作成し、スタックトレースを付与します。
func NewConvergenceError(algorithm string, iterations int, difference, tolerance float64) error {
	err := &ConvergenceError{Algorithm: algorithm, Iterations: iterations, Difference: difference, Tolerance: tolerance}
	return errors.WithStack(err)
}

// StageError はパイプラインのどのステージで失敗したかを保持するエラーです。
// Output が負の場合は出力変数に依存しないステージ（正規化、基底行列の構築など）を示します。
type StageError struct {
	Stage  string
	Output int
	Err    error
}

func (e *StageError) Error() string {
	if e.Output < 0 {
		return fmt.Sprintf("structid: stage %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("structid: stage %s (output %d): %v", e.Stage, e.Output, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *StageError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("stage", e.Stage).
		Int("output", e.Output).
		Str("cause", e.Err.Error()).
		Str("type", "StageError")
}

// NewStageError は既存のエラーをステージ情報で包みます。err が nil の場合は nil を返します。
func NewStageError(stage string, output int, err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(&StageError{Stage: stage, Output: output, Err: err})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	数値計算のエラー型
//
// ===========================================================================

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// 反復法の途中で NaN や Inf が現れた場合に返されます。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "gauss-seidel", "jacobi"）
	Values    []float64 // 問題のある値
	Iteration int       // 発生したイテレーション番号
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("structid: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Int("iteration", e.Iteration).
		Floats64("values", e.Values).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	var bad []float64
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, v)
		}
	}
	if len(bad) == 0 {
		bad = values
	}
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    bad,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")
)
