package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusBooked      BookingStatus = "booked"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusNoShow      BookingStatus = "no_show"
	StatusRescheduled BookingStatus = "rescheduled"
)

// NotificationStatus represents the delivery state of the booking notification
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
)

// Booking represents one customer's appointment with a professional
type Booking struct {
	ID             string
	ProfessionalID string
	CustomerID     string
	ServiceType    string
	StartAt        time.Time
	DayKey         string

	// Customer snapshot taken at booking time
	CustomerFirstName string
	CustomerLastName  string
	CustomerPhone     string

	Status             BookingStatus
	NotificationStatus NotificationStatus

	// RescheduledFrom records the booking id this one was moved away from,
	// forming the reschedule audit trail.
	RescheduledFrom *string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time
}

// HoldsSlot returns true if the booking currently owns a slot in the ledger
func (b *Booking) HoldsSlot() bool {
	return b.Status == StatusBooked || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCancelled
}

// CanBeRescheduled returns true if the booking still owns a slot to move
func (b *Booking) CanBeRescheduled() bool {
	return b.HoldsSlot()
}

// CountsTowardStats returns true if the booking contributes to the
// customer's totalBookings aggregate.
func (b *Booking) CountsTowardStats() bool {
	return b.Status != StatusCancelled
}
