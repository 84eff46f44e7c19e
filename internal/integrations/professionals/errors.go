package professionals

import "errors"

var (
	// ErrProfessionalNotFound is returned when the directory has no such professional
	ErrProfessionalNotFound = errors.New("professionals client: professional not found")

	// ErrInternal is returned for client-side failures
	ErrInternal = errors.New("professionals client: internal error")

	// ErrInvalidResponse is returned for unexpected directory responses
	ErrInvalidResponse = errors.New("professionals client: invalid response")
)
