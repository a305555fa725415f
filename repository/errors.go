package repository

import (
	"errors"

	"github.com/emzola/bookcatalog/internal/validator"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrFailedValidation = errors.New("failed validation")
)

// ValidationError reports the fields that made a document invalid. It
// matches ErrFailedValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrFailedValidation.Error() + ": " + e.Detail()
}

// Detail lists the field errors without the sentinel prefix.
func (e *ValidationError) Detail() string {
	return (&validator.Validator{Errors: e.Fields}).String()
}

func (e *ValidationError) Unwrap() error {
	return ErrFailedValidation
}
