package schedule

import "errors"

var (
	// ErrInvalidInput is returned for malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrOutsideServiceWindow is returned when the instant is not a valid
	// slot boundary inside business hours
	ErrOutsideServiceWindow = errors.New("start time outside service window")

	// ErrClosedDay is returned when the instant falls on the weekly closure day
	ErrClosedDay = errors.New("barbershop is closed on this day")

	// ErrSlotTaken is returned when the slot is already reserved or blocked
	ErrSlotTaken = errors.New("slot already taken")

	// ErrSlotNotFound is returned when there is nothing to unblock
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotNotBlocked is returned when the slot is held by a booking,
	// which cannot be removed through the schedule API
	ErrSlotNotBlocked = errors.New("slot is held by a booking, not a block")

	// ErrInternal is returned for unexpected failures
	ErrInternal = errors.New("service: internal error")
)
