package create_booking

import "errors"

var (
	// ErrInvalidInput is returned for malformed input data
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrOutsideServiceWindow is returned when the start instant is not a
	// valid slot boundary inside business hours
	ErrOutsideServiceWindow = errors.New("create_booking: start time outside service window")

	// ErrClosedDay is returned when the start instant falls on the weekly closure day
	ErrClosedDay = errors.New("create_booking: barbershop is closed on this day")

	// ErrProfessionalNotFound is returned when the professional does not exist
	ErrProfessionalNotFound = errors.New("create_booking: professional not found")

	// ErrProfessionalInactive is returned when the professional is not taking bookings
	ErrProfessionalInactive = errors.New("create_booking: professional is inactive")

	// ErrSlotTaken is returned when the requested slot is already reserved
	ErrSlotTaken = errors.New("create_booking: slot already taken")

	// ErrInternal is returned for unexpected failures
	ErrInternal = errors.New("create_booking: internal error")
)
