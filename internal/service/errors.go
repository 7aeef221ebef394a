package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/proposals/internal/repository"
)

var (
	// ErrNotFound marks a lookup of an id or version that is not stored.
	// Load and GetVersionHistory report absence without an error instead.
	ErrNotFound = repository.ErrNotFound

	// ErrConflict is returned when a save raced with another writer or the
	// caller's expected version is no longer current.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput is returned when a record lacks the structure storage
	// depends on.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage wraps failures of the backing store or its transactions.
	ErrStorage = errors.New("storage failure")
)

// opError names the failing operation and classifies err. Errors that are
// not already one of the kinds above are storage failures.
func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
