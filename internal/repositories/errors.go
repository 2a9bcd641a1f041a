package repositories

import "errors"

// Sentinel errors returned (wrapped) by every repository implementation.
// Services translate them into domain errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)
