package services

import (
	"fmt"

	"vocabulary/internal/validation"
)

// ValidationError reports field rule violations on an inbound request.
type ValidationError struct {
	Violations []validation.FieldViolation
}

func (e *ValidationError) Error() string {
	return validation.Join(e.Violations)
}

// ConflictError reports that a unique field value is already taken. Value is
// empty when the store rejected the write without saying which field
// collided.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s with the given %s already exists", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s with %s %s already exists", e.Entity, e.Field, e.Value)
}

// NotFoundError reports a missing entity, either the target of the operation
// or a referenced parent.
type NotFoundError struct {
	Entity string
	Key    string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No %s found with %s: %s", e.Entity, e.Key, e.ID)
}
