package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies failures for the HTTP layer.
type Kind string

const (
	KindFetchFailed      Kind = "fetch_failed"
	KindValidationFailed Kind = "validation_failed"
	KindRPCFailed        Kind = "rpc_failed"
)

// Sentinels for errors.Is comparisons; every Error matches the sentinel of its Kind.
var (
	ErrFetchFailed      = errors.New("fetch failed")
	ErrValidationFailed = errors.New("validation failed")
	ErrRPCFailed        = errors.New("rpc failed")
)

// Error carries the operation that failed, its kind and an optional
// machine-readable reason (for example "size_not_selected").
type Error struct {
	Op     string
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Reason != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrValidationFailed) match any validation Error.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFetchFailed:
		return e.Kind == KindFetchFailed
	case ErrValidationFailed:
		return e.Kind == KindValidationFailed
	case ErrRPCFailed:
		return e.Kind == KindRPCFailed
	}
	return false
}

func Fetch(op string, err error) *Error {
	return &Error{Op: op, Kind: KindFetchFailed, Err: err}
}

func Validation(op, reason string) *Error {
	return &Error{Op: op, Kind: KindValidationFailed, Reason: reason}
}

func RPC(op string, err error) *Error {
	return &Error{Op: op, Kind: KindRPCFailed, Err: err}
}

// ReasonOf returns the reason of the first *Error in err's chain.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
