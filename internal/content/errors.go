package content

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a recoverable failure of a store, log or backup operation.
//
// Errors include:
//   - Validation: a required field is missing or blank on create
//   - Not found: remove or lookup of an unknown id
//   - Format: a backup or replacement payload has the wrong shape
//   - Parse: a payload (or a persisted value) is not well-formed JSON
//   - Persistence: the key-value backend rejected a read or write
//
// The caller is expected to present Message to the user; none of these are
// fatal to the process.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Fields lists the offending fields for validation errors.
	Fields []string

	// ID identifies the entity for not-found errors.
	ID int64

	// Key identifies the persistence key involved, if any.
	Key string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates missing or blank required fields.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeNotFound indicates no entity has the requested id.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeFormat indicates a payload is missing required keys or is not a sequence.
	ErrCodeFormat ErrorCode = "FORMAT"

	// ErrCodeParse indicates a payload is not well-formed serialized data.
	ErrCodeParse ErrorCode = "PARSE"

	// ErrCodePersistence indicates the key-value backend failed.
	ErrCodePersistence ErrorCode = "PERSISTENCE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	switch {
	case len(e.Fields) > 0:
		msg = fmt.Sprintf("%s (fields=%s)", msg, strings.Join(e.Fields, ","))
	case e.Code == ErrCodeNotFound:
		msg = fmt.Sprintf("%s (id=%d)", msg, e.ID)
	case e.Key != "":
		msg = fmt.Sprintf("%s (key=%s)", msg, e.Key)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates an Error for missing required fields.
func NewValidationError(kind string, fields []string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("%s has missing or invalid fields", kind),
		Fields:  fields,
	}
}

// NewNotFoundError creates an Error for an unknown id.
func NewNotFoundError(kind string, id int64) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("no %s with this id", kind),
		ID:      id,
	}
}

// NewFormatError creates an Error for a payload with the wrong shape.
func NewFormatError(message string) *Error {
	return &Error{Code: ErrCodeFormat, Message: message}
}

// NewParseError creates an Error for malformed serialized data.
func NewParseError(message string, err error) *Error {
	return &Error{Code: ErrCodeParse, Message: message, Err: err}
}

// NewPersistenceError creates an Error for a failed backend read or write.
func NewPersistenceError(key string, err error) *Error {
	return &Error{
		Code:    ErrCodePersistence,
		Message: "persistence failed",
		Key:     key,
		Err:     err,
	}
}

// IsValidation returns true if err is a validation error.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsNotFound returns true if err is a not-found error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsFormat returns true if err is a format error.
func IsFormat(err error) bool {
	return hasCode(err, ErrCodeFormat)
}

// IsParse returns true if err is a parse error.
func IsParse(err error) bool {
	return hasCode(err, ErrCodeParse)
}

// IsPersistence returns true if err is a persistence error.
func IsPersistence(err error) bool {
	return hasCode(err, ErrCodePersistence)
}

func hasCode(err error, code ErrorCode) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}
