package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by every lookup that finds no row.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned when a reservation would make stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// notFoundError carries a descriptive message while still matching ErrNotFound.
type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound builds an error that matches ErrNotFound with a message for the client.
func NotFound(format string, args ...any) error {
	return &notFoundError{msg: fmt.Sprintf(format, args...)}
}
