package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrStaleVersion is returned by a compare-and-set update when the stored
	// version no longer matches the one the caller read.
	ErrStaleVersion = errors.New("stale version")
)
