package service

import (
	"errors"
	"fmt"
)

// ErrDuplicateProduct is returned when a product name is already taken,
// compared case-insensitively.
var ErrDuplicateProduct = errors.New("product with this name already exists")

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError reports an unknown id.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}
