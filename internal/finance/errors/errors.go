package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidCategory is the write-path variant of a missing category:
	// creating or updating a transaction against an absent or foreign
	// category is a validation failure, not a 404.
	ErrInvalidCategory          = NewValidationError("Category not found or unauthorized")
	ErrTypeMismatch             = NewValidationError("Category type does not match transaction type")
	ErrDefaultCategoryImmutable = NewValidationError("The default category cannot be modified")
	ErrDefaultCategoryMissing   = NewValidationError("Default category not found")
)
