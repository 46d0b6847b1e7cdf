package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrPersistence marks a single row that could not be stored. Batch
	// operations log it and move on.
	ErrPersistence = errors.New("persistence failure")
)
