package cancel_booking

import "errors"

var (
	// ErrInvalidInput is returned for malformed input data
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAlreadyCancelled is returned when the booking was cancelled before
	ErrAlreadyCancelled = errors.New("cancel_booking: booking already cancelled")

	// ErrInternal is returned for unexpected failures, including a live
	// booking found without its ledger slot
	ErrInternal = errors.New("cancel_booking: internal error")
)
