package solver

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode categorizes solver errors. Codes are stable strings so they can
// travel through JSON output and suite files unchanged.
type ErrorCode string

const (
	// CodeInvalidBound indicates a negative coin-count bound.
	CodeInvalidBound ErrorCode = "InvalidBound"

	// CodeOutOfRange indicates a value or DP state space that cannot be
	// represented: a token outside int64, a sum range whose bounds overflow,
	// or a table larger than the configured cell limit.
	CodeOutOfRange ErrorCode = "OutOfRange"

	// CodeTooManyDenominations indicates a coin list above the configured cap.
	CodeTooManyDenominations ErrorCode = "TooManyDenominations"

	// CodeUnboundedDomain indicates a negative coin while negative coins are
	// not enabled.
	CodeUnboundedDomain ErrorCode = "UnboundedDomain"

	// CodeCountOverflow indicates the exact count does not fit in int64.
	CodeCountOverflow ErrorCode = "CountOverflow"

	// CodeNotInitialized indicates a Solver that was not built with New.
	CodeNotInitialized ErrorCode = "NotInitialized"
)

// Codes lists every error code in taxonomy order.
var Codes = []ErrorCode{
	CodeInvalidBound,
	CodeOutOfRange,
	CodeTooManyDenominations,
	CodeUnboundedDomain,
	CodeCountOverflow,
	CodeNotInitialized,
}

// Sentinel values for errors.Is. Any *Error with the same code matches.
//
//	_, err := solver.Solve(10, -1, []int64{1})
//	if errors.Is(err, solver.ErrInvalidBound) {
//	    // fix the bound and retry
//	}
var (
	ErrInvalidBound         = &Error{Code: CodeInvalidBound}
	ErrOutOfRange           = &Error{Code: CodeOutOfRange}
	ErrTooManyDenominations = &Error{Code: CodeTooManyDenominations}
	ErrUnboundedDomain      = &Error{Code: CodeUnboundedDomain}
	ErrCountOverflow        = &Error{Code: CodeCountOverflow}
	ErrNotInitialized       = &Error{Code: CodeNotInitialized}
)

// ErrEnumerationLimit is returned by Enumerate when the search visits more
// nodes than the caller allowed. It is not part of the solve taxonomy.
var ErrEnumerationLimit = errors.New("solver: enumeration limit exceeded")

// Error is a structured solver error.
//
// Input errors (InvalidBound, OutOfRange, TooManyDenominations,
// UnboundedDomain) are raised before any table is allocated and are always
// recoverable by correcting the input. CountOverflow is raised after the DP
// pass instead of returning a wrapped value.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Details carries the offending values, keyed by field name.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + e.Details[k]
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(parts, ", "))
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// IsInput reports whether the error was detected before computation.
func (e *Error) IsInput() bool {
	switch e.Code {
	case CodeInvalidBound, CodeOutOfRange, CodeTooManyDenominations, CodeUnboundedDomain:
		return true
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "" when
// err is nil or not a solver error.
func CodeOf(err error) ErrorCode {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsInputError reports whether err is a recoverable input error.
func IsInputError(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.IsInput()
	}
	return false
}

// ParseErrorCode maps a code string back to an ErrorCode.
func ParseErrorCode(s string) (ErrorCode, error) {
	for _, c := range Codes {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown error code %q", s)
}

func newError(code ErrorCode, message string, details map[string]string) *Error {
	return &Error{Code: code, Message: message, Details: details}
}
