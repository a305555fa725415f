package service

import (
	"errors"
	"fmt"

	"github.com/emzola/bookcatalog/repository"
)

var (
	ErrFailedValidation  = errors.New("failed validation")
	ErrRecordNotFound    = errors.New("record not found")
	ErrMissingSearchTerm = errors.New("search term not found")
)

// translate maps repository errors onto the service's own sentinels. Any
// other error is returned unchanged.
func translate(err error) error {
	var verr *repository.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Errorf("%w: %s", ErrFailedValidation, verr.Detail())
	case errors.Is(err, repository.ErrFailedValidation):
		return ErrFailedValidation
	case errors.Is(err, repository.ErrRecordNotFound):
		return ErrRecordNotFound
	default:
		return err
	}
}
