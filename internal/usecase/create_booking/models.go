package create_booking

import "time"

// CustomerInput identity fields supplied by the caller at booking time
type CustomerInput struct {
	FirstName string
	LastName  string
	Phone     string // raw, normalized by the use case
}

// Request model for creating a booking
type Request struct {
	ProfessionalID string
	ServiceType    string
	StartAt        time.Time
	Customer       CustomerInput
}

// Response model with the created booking
type Response struct {
	BookingID  string
	CustomerID string
	SlotID     string
	DayKey     string
	StartAt    time.Time
	Status     string
	CreatedAt  time.Time
}
