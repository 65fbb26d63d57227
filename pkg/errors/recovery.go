package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"
)

// PanicError is a panic raised inside a weak learner or distribution
// optimizer, recovered so the booster can move to its failed state.
type PanicError struct {
	PanicValue interface{}
	StackTrace string
	// Operation is the call that panicked, e.g. "oracle.Produce".
	Operation string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// String includes the stack captured at recovery.
func (e *PanicError) String() string {
	return fmt.Sprintf("%s\nStack trace:\n%s", e.Error(), e.StackTrace)
}

func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover must be deferred directly by a function with a named error result:
//
//	func (b *Booster) Boost(...) (err error) {
//	    defer Recover(&err, "Boost")
//	    ...
//	}
//
// An error already set before the panic stays in the chain.
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	if *err != nil {
		*err = errors.Wrapf(*err, "panic in %s: %v", operation, r)
		return
	}
	*err = NewPanicError(operation, r)
}

// SafeExecute calls fn, returning its error unchanged or a PanicError if it
// panicked.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
