// Package errors はmarginboost全体のエラーハンドリングと警告システムを提供します。
// 設定エラー、ソルバーエラー、収束警告を構造化された型として表現し、
// cockroachdb/errors によるスタックトレースを付与します。
package errors

import (
	"fmt"
	"log"
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
		log.Printf("marginboost-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// ラウンド予算を使い切った場合のConvergenceWarningなどの処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

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

// ConvergenceWarning はブースティングがラウンド予算内に収束証明を得られなかった場合の警告です。
type ConvergenceWarning struct {
	Algorithm string
	Rounds    int
	Gap       float64
	Message   string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s did not converge within %d rounds (gap %.6g): %s", w.Algorithm, w.Rounds, w.Gap, w.Message)
	}
	return fmt.Sprintf("%s did not converge within %d rounds (gap %.6g). Consider increasing the round budget or the tolerance.", w.Algorithm, w.Rounds, w.Gap)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("rounds", w.Rounds).
		Float64("gap", w.Gap).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning は新しいConvergenceWarningを作成します。
func NewConvergenceWarning(algorithm string, rounds int, gap float64, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Rounds: rounds, Gap: gap, Message: message}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ConfigurationError は実行パラメータやサンプルが不正な場合のエラーです。
// 最初のラウンドが実行される前に呼び出し元へ返され、回復されることはありません。
type ConfigurationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("marginboost: invalid configuration for '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError は新しいConfigurationErrorを作成し、スタックトレースを付与します。
func NewConfigurationError(param, reason string, value interface{}) error {
	err := &ConfigurationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// StateError はブースターの状態に対して不正な順序で操作が呼ばれた場合のエラーです。
// 例えば Preprocess() の前に Boost() を呼び出した場合など。
type StateError struct {
	Op       string
	State    string
	Expected string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("marginboost: %s: booster is %s, expected %s", e.Op, e.State, e.Expected)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *StateError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("state", e.State).
		Str("expected", e.Expected).
		Str("type", "StateError")
}

// NewStateError は新しいStateErrorを作成し、スタックトレースを付与します。
func NewStateError(op, state, expected string) error {
	err := &StateError{Op: op, State: state, Expected: expected}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("marginboost: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、結合仮説に負の重みを渡した場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("marginboost: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// OptimizerError は分布更新を担うLP/QPソルバーが失敗した場合のエラーです。
// 正しい設定の下では発生しない内部不変条件の違反として扱い、再試行はしません。
type OptimizerError struct {
	Op     string
	Solver string
	Err    error
}

func (e *OptimizerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("marginboost: %s: %s solver failed: %v", e.Op, e.Solver, e.Err)
	}
	return fmt.Sprintf("marginboost: %s: %s solver failed", e.Op, e.Solver)
}

func (e *OptimizerError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *OptimizerError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("solver", e.Solver).
		Str("type", "OptimizerError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewOptimizerError は新しいOptimizerErrorを作成し、スタックトレースを付与します。
func NewOptimizerError(op, solver string, err error) error {
	optErr := &OptimizerError{Op: op, Solver: solver, Err: err}
	return errors.WithStack(optErr)
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
//	数値計算エラー
//
// ===========================================================================

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// ソルバーが返した分布や境界値に NaN や Inf が含まれる場合に検出します。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "lp_update", "dual_bound"）
	Values    []float64 // 問題のある値
	Round     int       // 発生したラウンド番号
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
	return fmt.Sprintf("marginboost: numerical instability detected in %s at round %d. Values: [%s]",
		e.Operation, e.Round, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, round int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Round:     round,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のサンプルが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrNonBinaryLabel はラベルが {-1, +1} 以外の値を含む場合のエラーです。
	ErrNonBinaryLabel = New("labels must be -1 or +1")

	// ErrInfeasible はLP/QPが実行不能と判定された場合のエラーです。
	ErrInfeasible = New("optimization problem is infeasible")

	// ErrNotConverged はソルバーが反復上限内に要求精度（制限問題の双対ギャップ）へ
	// 到達できなかった場合のエラーです。
	ErrNotConverged = New("optimizer did not reach the requested accuracy")
)
