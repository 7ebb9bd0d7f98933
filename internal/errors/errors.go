// Package errors defines the stable error code system for mazegen.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Code is a stable error code string.
type Code string

// Error codes. Printed on stderr and relied on by wrapper scripts.
const (
	EUsage    Code = "E_USAGE"
	EInternal Code = "E_INTERNAL"

	// Materials input
	EParse      Code = "E_PARSE"
	EValidation Code = "E_VALIDATION"
	EReadFailed Code = "E_READ_FAILED"

	// Generation output
	ETemplate    Code = "E_TEMPLATE"
	EWriteFailed Code = "E_WRITE_FAILED"

	// Configuration
	ENoConfig      Code = "E_NO_CONFIG"
	EInvalidConfig Code = "E_INVALID_CONFIG"
	EConfigExists  Code = "E_CONFIG_EXISTS"
)

// GenError is the standard error type for mazegen errors.
type GenError struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *GenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *GenError) Unwrap() error {
	return e.Cause
}

// New creates a new GenError with the given code and message.
func New(code Code, msg string) error {
	return &GenError{Code: code, Msg: msg}
}

// NewWithDetails creates a new GenError with code, message, and details.
// Details map is copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &GenError{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new GenError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &GenError{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new GenError wrapping an underlying error with details.
// Details map is copied (nil if empty).
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &GenError{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// Locate prefixes a coded error's message with "<where>: " and merges details,
// keeping the original code. Uncoded errors are wrapped with fallback.
func Locate(err error, fallback Code, where string, details map[string]string) error {
	if err == nil {
		return nil
	}
	ge, ok := AsGenError(err)
	if !ok {
		return WrapWithDetails(fallback, where+": "+err.Error(), err, details)
	}
	merged := copyDetails(ge.Details)
	if merged == nil && len(details) > 0 {
		merged = make(map[string]string, len(details))
	}
	for k, v := range details {
		merged[k] = v
	}
	return &GenError{Code: ge.Code, Msg: where + ": " + ge.Msg, Cause: err, Details: merged}
}

// GetCode extracts the error code from an error, or empty string if not a GenError.
func GetCode(err error) Code {
	var ge *GenError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}

// AsGenError returns (*GenError, true) if err is or wraps a GenError.
func AsGenError(err error) (*GenError, bool) {
	var ge *GenError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// copyDetails returns a copy of the details map, or nil if empty/nil.
func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the appropriate exit code for an error.
// Returns 0 if err is nil, 2 for E_USAGE, 1 for all other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if GetCode(err) == EUsage {
		return 2
	}
	return 1
}

// Print writes the error to w in the stable stderr format:
//
//	error_code: <CODE>
//	<message>
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	var ge *GenError
	if errors.As(err, &ge) {
		fmt.Fprintf(w, "error_code: %s\n", ge.Code)
		fmt.Fprintln(w, ge.Msg)
	} else {
		fmt.Fprintln(w, err.Error())
	}
}
