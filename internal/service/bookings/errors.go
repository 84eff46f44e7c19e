package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidInput is returned for malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidStatus is returned for a status outside the manual-update set
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition is returned when the booking's current status does
	// not allow the requested one
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInternal is returned for unexpected failures
	ErrInternal = errors.New("service: internal error")
)
