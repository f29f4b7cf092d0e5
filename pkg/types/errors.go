package types

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures of Session operations.
type ErrorCode int

const (
	// CodeMisuse means the caller violated a precondition.
	CodeMisuse ErrorCode = iota + 1
	// CodeEngine means the storage engine rejected the operation.
	CodeEngine
	// CodeAllocation means the engine ran out of memory.
	CodeAllocation
)

func (c ErrorCode) String() string {
	switch c {
	case CodeMisuse:
		return "misuse"
	case CodeEngine:
		return "engine error"
	case CodeAllocation:
		return "allocation error"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Class sentinels; errors.Is(err, ErrMisuse) matches any Error with that code.
var (
	ErrMisuse     = errors.New("misuse")
	ErrEngine     = errors.New("engine error")
	ErrAllocation = errors.New("allocation error")
)

// Misuse causes.
var (
	ErrNoConnection     = errors.New("no active connection")
	ErrNoTable          = errors.New("no table selected")
	ErrEmptyPath        = errors.New("path must not be empty")
	ErrEmptyTableName   = errors.New("table name must not be empty")
	ErrInvalidColumn    = errors.New("invalid column index")
	ErrRowNotInSnapshot = errors.New("row not in snapshot")
)

// Config validation errors.
var (
	ErrRowLimitInvalid    = errors.New("row limit out of range")
	ErrBusyTimeoutInvalid = errors.New("busy timeout must not be negative")
)

// Error is the error type returned by Session operations.
type Error struct {
	Code ErrorCode
	Op   string
	Err  error
}

// NewError wraps err as an Error for operation op.
func NewError(code ErrorCode, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Code.String()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the class sentinel for e.Code.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMisuse:
		return e.Code == CodeMisuse
	case ErrEngine:
		return e.Code == CodeEngine
	case ErrAllocation:
		return e.Code == CodeAllocation
	}
	return false
}

// CodeOf returns the ErrorCode carried by err, or 0 if err is not an Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
