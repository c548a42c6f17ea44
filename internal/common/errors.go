package common

import (
	"errors"
	"fmt"
)

// Error codes reported on the error stream for fatal failures.
const (
	CodeArgument          = "ARGUMENT_ERROR"
	CodeConfig            = "CONFIG_ERROR"
	CodeFileNotFound      = "FILE_NOT_FOUND"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeDecode            = "DECODE_ERROR"
	CodeDocumentOpen      = "DOCUMENT_OPEN_ERROR"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDecode            = errors.New("image decode failed")
	ErrDocumentOpen      = errors.New("document open failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

func ArgumentError(message string) error {
	return NewAppError(CodeArgument, message, ErrInvalidArgument)
}

func ArgumentErrorf(format string, args ...interface{}) error {
	return ArgumentError(fmt.Sprintf(format, args...))
}

// Message returns the human-facing part of err: the AppError message when
// there is one, err.Error() otherwise.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
