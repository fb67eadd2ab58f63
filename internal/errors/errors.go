package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a jot error code.
type ErrorCode string

const (
	ErrInit           ErrorCode = "INIT"
	ErrAdd            ErrorCode = "ADD"
	ErrRemove         ErrorCode = "REMOVE"
	ErrEdit           ErrorCode = "EDIT"
	ErrSearch         ErrorCode = "SEARCH"
	ErrExport         ErrorCode = "EXPORT"
	ErrBackup         ErrorCode = "BACKUP"
	ErrIO             ErrorCode = "IO"
	ErrSerialization  ErrorCode = "SERIALIZATION"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrOther          ErrorCode = "OTHER"
)

// CorruptionHint is attached to IO and serialization failures.
const CorruptionHint = "journal may be corrupted; restore from backup with 'jot backup restore'"

// JotError represents a structured error with code, message and an optional hint.
type JotError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Err     error
}

// Error implements the error interface.
func (e *JotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *JotError) Unwrap() error {
	return e.Err
}

// NewInit creates an error for a failed journal initialization.
func NewInit(err error) *JotError {
	return &JotError{
		Code:    ErrInit,
		Message: fmt.Sprintf("failed to initialize jot: %v", err),
		Err:     err,
	}
}

// NewAdd creates an error for a rejected or failed add.
func NewAdd(msg string) *JotError {
	return &JotError{
		Code:    ErrAdd,
		Message: fmt.Sprintf("failed to add entry: %s", msg),
	}
}

// NewRemove creates an error for a failed removal.
func NewRemove(msg string) *JotError {
	return &JotError{
		Code:    ErrRemove,
		Message: fmt.Sprintf("failed to remove entry: %s", msg),
	}
}

// NewEdit creates an error for a failed edit.
func NewEdit(msg string) *JotError {
	return &JotError{
		Code:    ErrEdit,
		Message: fmt.Sprintf("failed to edit entry: %s", msg),
	}
}

// NewSearch creates an error for invalid search parameters.
func NewSearch(msg string) *JotError {
	return &JotError{
		Code:    ErrSearch,
		Message: fmt.Sprintf("search error: %s", msg),
	}
}

// NewExport creates an error for a failed export.
func NewExport(msg string) *JotError {
	return &JotError{
		Code:    ErrExport,
		Message: fmt.Sprintf("export error: %s", msg),
	}
}

// NewBackup creates an error for a failed backup create or restore.
func NewBackup(msg string) *JotError {
	return &JotError{
		Code:    ErrBackup,
		Message: fmt.Sprintf("backup error: %s", msg),
	}
}

// NewIO wraps a filesystem failure.
func NewIO(op string, err error) *JotError {
	return &JotError{
		Code:    ErrIO,
		Message: fmt.Sprintf("%s: %v", op, err),
		Hint:    CorruptionHint,
		Err:     err,
	}
}

// NewSerialization wraps a JSON or TOML encode/decode failure.
func NewSerialization(what string, err error) *JotError {
	return &JotError{
		Code:    ErrSerialization,
		Message: fmt.Sprintf("malformed %s: %v", what, err),
		Hint:    CorruptionHint,
		Err:     err,
	}
}

// NewNotFound creates an error for an entry id that does not exist.
func NewNotFound(id int) *JotError {
	return &JotError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("entry with ID %d not found", id),
	}
}

// NewInvalidRequest creates an error for invalid input parameters.
func NewInvalidRequest(msg string) *JotError {
	return &JotError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewOther wraps any other underlying cause.
func NewOther(err error) *JotError {
	msg := "unexpected error"
	if err != nil {
		msg = err.Error()
	}
	return &JotError{
		Code:    ErrOther,
		Message: msg,
		Err:     err,
	}
}

// Wrap returns a copy of e carrying err as its cause, with the cause appended to the message.
func (e *JotError) Wrap(err error) *JotError {
	if err == nil {
		return e
	}
	return &JotError{
		Code:    e.Code,
		Message: fmt.Sprintf("%s: %v", e.Message, err),
		Hint:    e.Hint,
		Err:     err,
	}
}

// Is checks if an error is (or wraps) a JotError with the given code.
func Is(err error, code ErrorCode) bool {
	var jErr *JotError
	if stderrors.As(err, &jErr) {
		return jErr.Code == code
	}
	return false
}

// As is a convenience around errors.As for *JotError.
func As(err error) (*JotError, bool) {
	var jErr *JotError
	if stderrors.As(err, &jErr) {
		return jErr, true
	}
	return nil, false
}
