package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced entity id does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError marks structurally invalid input: an empty required field,
// an unknown enum value, or a reference to a nonexistent mentor/opportunity.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

// ConflictError means the target record's state no longer matches the
// precondition the caller assumed (stale client or lost race). Detail names
// the current state so the caller can explain what happened.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }
