package domain

import "time"

// CustomerStats rolling statistics derived from booking events.
// TotalBookings always equals the number of non-cancelled bookings ever
// created for the customer; it is mutated only inside the same transaction
// that creates or cancels a booking.
type CustomerStats struct {
	TotalBookings  int
	TotalCompleted int
	NoShowCount    int
	FirstBookingAt *time.Time
	LastBookingAt  *time.Time
	LastContactAt  *time.Time
}

// Customer aggregate keyed by the deterministic id derived from the
// canonical phone number. Created on the first booking, never deleted.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Birthday  *time.Time

	MarketingConsent bool
	ReminderConsent  bool

	Stats CustomerStats

	CreatedAt time.Time
	UpdatedAt time.Time
}
