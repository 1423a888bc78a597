package task

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any NotFoundError via errors.Is.
	ErrNotFound = errors.New("task not found")
	// ErrInvalid matches any ValidationError via errors.Is.
	ErrInvalid = errors.New("invalid task input")
)

// NotFoundError reports that no active task carries the given id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task with id %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a client-supplied field that breaks an input rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
