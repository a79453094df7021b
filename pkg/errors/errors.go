package errors

import (
	"errors"
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures suite configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransientError marks a storage fault that is expected to succeed if the
// read is retried, such as a connection reset or a backend-side internal
// error.
type TransientError struct {
	Path string
	Err  error
}

// NewTransientError constructs a TransientError for the given path.
func NewTransientError(path string, err error) error {
	return &TransientError{Path: path, Err: err}
}

func (e *TransientError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("transient read error: %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *TransientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PermanentError marks a storage fault that no amount of retrying will fix,
// such as a missing path or denied access.
type PermanentError struct {
	Path string
	Err  error
}

// NewPermanentError constructs a PermanentError for the given path.
func NewPermanentError(path string, err error) error {
	return &PermanentError{Path: path, Err: err}
}

func (e *PermanentError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("permanent read error: %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *PermanentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RetryExhaustedError wraps the last failure after the retry budget is
// spent. Attempts records how many times the operation was tried.
type RetryExhaustedError struct {
	Attempts int
	Err      error
}

// NewRetryExhaustedError constructs a RetryExhaustedError.
func NewRetryExhaustedError(attempts int, err error) error {
	return &RetryExhaustedError{Attempts: attempts, Err: err}
}

func (e *RetryExhaustedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("retry budget exhausted after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap exposes the last underlying failure.
func (e *RetryExhaustedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsTransient reports whether err (or anything it wraps) is a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsPermanent reports whether err (or anything it wraps) is a PermanentError.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}
