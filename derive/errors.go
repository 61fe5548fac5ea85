package derive

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRequest is returned (wrapped) when a DerivationRequest fails validation
var ErrInvalidRequest = errors.New("invalid derivation request")

// TimeoutError is returned when the tool did not finish before the deadline.
// The process has been killed and reaped by the time the error is returned.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("derivation tool timed out after %v", e.Timeout)
}

// Temporary reports that the call may be retried.
func (e *TimeoutError) Temporary() bool { return true }

// ExternalToolError is returned when the tool could not be started or exited non-zero.
// Stderr is truncated and redacted.
type ExternalToolError struct {
	ExitCode int // -1 if the process never ran
	Stderr   string
	Err      error
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("derivation tool failed (exit code %d)", e.ExitCode)
	if e.Err != nil && e.ExitCode < 0 {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// MalformedOutputError is returned when stdout is not valid JSON
type MalformedOutputError struct {
	Excerpt string // truncated and redacted
	Err     error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed tool output: %v (output begins %q)", e.Err, e.Excerpt)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// SchemaError is returned when the JSON is valid but not an array of records with the requested columns.
// Index is -1 when the error is about the top level value.
type SchemaError struct {
	Index  int
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("unexpected tool output: %s", e.Reason)
	case e.Field == "":
		return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("record %d: field %q %s", e.Index, e.Field, e.Reason)
	}
}

// IsTimeoutError checks if error is TimeoutError
func IsTimeoutError(err error) bool {
	var e *TimeoutError
	return errors.As(err, &e)
}

// IsExternalToolError checks if error is ExternalToolError
func IsExternalToolError(err error) bool {
	var e *ExternalToolError
	return errors.As(err, &e)
}

// IsMalformedOutputError checks if error is MalformedOutputError
func IsMalformedOutputError(err error) bool {
	var e *MalformedOutputError
	return errors.As(err, &e)
}

// IsSchemaError checks if error is SchemaError
func IsSchemaError(err error) bool {
	var e *SchemaError
	return errors.As(err, &e)
}
