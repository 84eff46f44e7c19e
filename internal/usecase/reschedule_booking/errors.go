package reschedule_booking

import "errors"

var (
	// ErrInvalidInput is returned for malformed input data
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrOutsideServiceWindow is returned when the new start instant is not
	// a valid slot boundary inside business hours
	ErrOutsideServiceWindow = errors.New("reschedule_booking: start time outside service window")

	// ErrClosedDay is returned when the new start instant falls on the weekly closure day
	ErrClosedDay = errors.New("reschedule_booking: barbershop is closed on this day")

	// ErrCannotReschedule is returned when the booking no longer owns a slot
	// (cancelled or otherwise settled)
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrSlotTaken is returned when the destination slot is already reserved
	ErrSlotTaken = errors.New("reschedule_booking: destination slot already taken")

	// ErrInternal is returned for unexpected failures
	ErrInternal = errors.New("reschedule_booking: internal error")
)
