package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrServiceUnavailable indicates every (credential, model) combination
	// failed within the configured retry budget
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrEmptyCorpus indicates an index build was attempted with no documents
	ErrEmptyCorpus = errors.New("empty corpus")
)
