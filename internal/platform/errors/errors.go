// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode defines supported error codes used across the toolchain
// Values are stable for wire compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeInput is for malformed flags, enum values, and bad arguments
	ErrorCodeInput

	// ErrorCodeTimezone is for unparseable IANA zone names
	ErrorCodeTimezone

	// ErrorCodeParse is for malformed timestamp text or out-of-range numerics
	ErrorCodeParse

	// ErrorCodePolicy is for ambiguous/nonexistent local times rejected by policy
	ErrorCodePolicy

	// ErrorCodeRuntime is for internal failures: overflow, exhausted search, I/O
	ErrorCodeRuntime
)

// Process exit codes shared by the binaries
const (
	ExitSuccess      = 0
	ExitInputError   = 2
	ExitRuntimeError = 3
)

// ExitCode turns an ErrorCode into a process exit code
func ExitCode(c ErrorCode) int {
	switch c {
	case ErrorCodeInput, ErrorCodeTimezone, ErrorCodeParse, ErrorCodePolicy:
		return ExitInputError
	case ErrorCodeRuntime, ErrorCodeUnknown:
		return ExitRuntimeError
	default:
		return ExitRuntimeError
	}
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// status is optional (policy errors carry "ambiguous"/"nonexistent")
// orig is the wrapped cause
type Error struct {
	orig   error
	msg    string
	code   ErrorCode
	status string
}

// Wire is the JSON-serializable form written to stderr by the CLI
type Wire struct {
	Error    string `json:"error"`
	ExitCode int    `json:"exit_code"`
	Status   string `json:"status,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Status returns the machine-readable status tag, if any
func (e *Error) Status() string { return e.status }

// ToWire converts an *Error to a Wire payload
// The full rendered message (including the cause chain) is user facing here
func (e *Error) ToWire() Wire {
	return Wire{Error: e.Error(), ExitCode: ExitCode(e.code), Status: e.status}
}

// WireFrom converts any error into a Wire payload with best-effort mapping
// If err is nil, returns the zero-value Wire (no error)
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Error: err.Error(), ExitCode: ExitCode(ErrorCodeUnknown)}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// StatusOf extracts the status tag from any error, empty when absent
func StatusOf(err error) string {
	if e, ok := As(err); ok {
		return e.status
	}
	return ""
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// Exit returns the mapped process exit code for any error
func Exit(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitCode(CodeOf(err))
}

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithStatus attaches a status tag to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithStatus(err error, status string) error {
	if e, ok := As(err); ok {
		c := *e
		c.status = status
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// Inputf returns an input error
func Inputf(format string, a ...any) error { return Newf(ErrorCodeInput, format, a...) }

// Timezonef returns an invalid timezone error
func Timezonef(format string, a ...any) error { return Newf(ErrorCodeTimezone, format, a...) }

// Parsef returns a timestamp parse error
func Parsef(format string, a ...any) error { return Newf(ErrorCodeParse, format, a...) }

// Policyf returns a policy error tagged with a status ("ambiguous"/"nonexistent")
func Policyf(status, format string, a ...any) error {
	return &Error{code: ErrorCodePolicy, msg: fmt.Sprintf(format, a...), status: status}
}

// Runtimef returns a runtime error
func Runtimef(format string, a ...any) error { return Newf(ErrorCodeRuntime, format, a...) }
