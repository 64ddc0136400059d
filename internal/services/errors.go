package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrConflict is returned when a unique operator attribute is already taken.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError lists every failing input field with a readable message.
type ValidationError struct {
	Fields map[string]string `json:"errors"`
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records a message for field, keeping the first one.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// Error joins the messages in field order so the text is stable.
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, " ")
}

// orNil returns e as an error only when it holds messages.
func (e *ValidationError) orNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}
