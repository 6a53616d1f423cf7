package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound  = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal  = New("INTERNAL_ERROR", http.StatusInternalServerError, "Internal server error")
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// MissingField reports a required create-field that is absent or blank.
// The machine code mirrors the JSON field name, e.g. facultyName ->
// MISSING_FACULTY_NAME.
func MissingField(field, label string) *Error {
	return New("MISSING_"+FieldCode(field), http.StatusBadRequest, label+" is required")
}

// InvalidField reports a present field that fails a type, range or enum
// check, e.g. totalMarks -> INVALID_TOTAL_MARKS.
func InvalidField(field, message string) *Error {
	return New("INVALID_"+FieldCode(field), http.StatusBadRequest, message)
}

// NotFound reports a lookup miss for the named entity.
func NotFound(display string) *Error {
	return New(ErrNotFound.Code, http.StatusNotFound, display+" not found")
}

// Internal surfaces an unexpected failure, carrying the underlying
// description verbatim.
func Internal(err error) *Error {
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, "Internal server error: "+err.Error())
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// FieldCode converts a camelCase JSON field name into its UPPER_SNAKE
// machine-code fragment.
func FieldCode(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
