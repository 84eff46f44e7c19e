package domain

import "time"

// SlotKind distinguishes customer bookings from staff blocks (lunch, day off)
type SlotKind string

const (
	SlotKindBooking SlotKind = "booking"
	SlotKindBlock   SlotKind = "block"
)

// Slot is the unique (professional, time-bucket) reservation unit.
// The existence of the row is the lock: at most one slot row exists per
// (ProfessionalID, SlotID) pair at any time.
type Slot struct {
	ProfessionalID string
	SlotID         string
	DayKey         string
	StartAt        time.Time
	Kind           SlotKind

	// BookingID references the owning booking when Kind is SlotKindBooking
	BookingID *string

	CreatedAt time.Time
}

// IsBlock returns true for staff-blocked slots
func (s *Slot) IsBlock() bool {
	return s.Kind == SlotKindBlock
}
