package create_booking

import (
	"time"

	"github.com/barberbot-br/BookingCore/internal/timeslot"
	createBooking "github.com/barberbot-br/BookingCore/internal/usecase/create_booking"
)

// CustomerPayload identity fields supplied by the caller
type CustomerPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProfessionalID string          `json:"professionalId"`
	ServiceType    string          `json:"serviceType"`
	StartAt        string          `json:"startAt"` // RFC 3339
	Customer       CustomerPayload `json:"customer"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID  string `json:"bookingId"`
	CustomerID string `json:"customerId"`
	SlotID     string `json:"slotId"`
	DayKey     string `json:"dayKey"`
	StartAt    string `json:"startAt"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startAt, err := timeslot.ParseInstant(r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ProfessionalID: r.ProfessionalID,
		ServiceType:    r.ServiceType,
		StartAt:        startAt,
		Customer: createBooking.CustomerInput{
			FirstName: r.Customer.FirstName,
			LastName:  r.Customer.LastName,
			Phone:     r.Customer.Phone,
		},
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:  resp.BookingID,
		CustomerID: resp.CustomerID,
		SlotID:     resp.SlotID,
		DayKey:     resp.DayKey,
		StartAt:    resp.StartAt.Format(time.RFC3339),
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
