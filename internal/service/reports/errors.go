package reports

import "errors"

var (
	// ErrInvalidInput is returned for malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for unexpected failures
	ErrInternal = errors.New("service: internal error")
)
