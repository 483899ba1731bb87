package graph

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes graph errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the attribute does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeNoValue indicates the attribute exists but has neither data
	// nor an evaluator that produced data.
	ErrCodeNoValue ErrorCode = "NO_VALUE"

	// ErrCodeTypeMismatch indicates a write or read with a type other than
	// the one the attribute is locked to. Rejected writes are dropped.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeCycleDetected indicates an attribute was re-entered while it
	// was still being resolved.
	ErrCodeCycleDetected ErrorCode = "CYCLE_DETECTED"

	// ErrCodeEvaluatorFailed indicates an evaluator returned an error.
	ErrCodeEvaluatorFailed ErrorCode = "EVALUATOR_FAILED"

	// ErrCodeInvalidValue indicates a write of a nil value.
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"
)

// Error is returned by graph operations that fail.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Ref is the attribute the operation targeted.
	Ref Ref

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Ref)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err, or any graph error it wraps, is NOT_FOUND.
func IsNotFound(err error) bool { return HasCode(err, ErrCodeNotFound) }

// IsNoValue reports whether err, or any graph error it wraps, is NO_VALUE.
func IsNoValue(err error) bool { return HasCode(err, ErrCodeNoValue) }

// IsTypeMismatch reports whether err, or any graph error it wraps, is TYPE_MISMATCH.
func IsTypeMismatch(err error) bool { return HasCode(err, ErrCodeTypeMismatch) }

// IsCycleError reports whether err, or any graph error it wraps, is CYCLE_DETECTED.
// Cycles surfacing through an evaluator are wrapped in EVALUATOR_FAILED and
// still match.
func IsCycleError(err error) bool { return HasCode(err, ErrCodeCycleDetected) }

// CodeOf returns the code of the outermost graph error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code, true
	}
	return "", false
}

// HasCode reports whether any graph error in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var ge *Error
		if !errors.As(err, &ge) {
			return false
		}
		if ge.Code == code {
			return true
		}
		err = ge.Err
	}
	return false
}

func notFoundError(ref Ref) *Error {
	return &Error{Code: ErrCodeNotFound, Ref: ref, Message: "no such attribute"}
}

func noValueError(ref Ref) *Error {
	return &Error{Code: ErrCodeNoValue, Ref: ref, Message: "attribute has no value"}
}

func cycleError(ref Ref) *Error {
	return &Error{Code: ErrCodeCycleDetected, Ref: ref, Message: "attribute re-entered while resolving"}
}

func invalidValueError(ref Ref) *Error {
	return &Error{Code: ErrCodeInvalidValue, Ref: ref, Message: "cannot store nil value"}
}

func typeMismatchError(ref Ref, err error) *Error {
	return &Error{Code: ErrCodeTypeMismatch, Ref: ref, Message: "type mismatch", Err: err}
}

func evaluatorError(ref Ref, err error) *Error {
	return &Error{Code: ErrCodeEvaluatorFailed, Ref: ref, Message: "evaluator failed", Err: err}
}
