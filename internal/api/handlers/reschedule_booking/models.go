package reschedule_booking

import (
	"time"

	"github.com/barberbot-br/BookingCore/internal/timeslot"
	rescheduleBooking "github.com/barberbot-br/BookingCore/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewStartAt string `json:"newStartAt"` // RFC 3339
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	BookingID string `json:"bookingId"`
	SlotID    string `json:"slotId"`
	DayKey    string `json:"dayKey"`
	StartAt   string `json:"startAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID string) (*rescheduleBooking.Request, error) {
	newStartAt, err := timeslot.ParseInstant(r.NewStartAt)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:  bookingID,
		NewStartAt: newStartAt,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		BookingID: resp.BookingID,
		SlotID:    resp.SlotID,
		DayKey:    resp.DayKey,
		StartAt:   resp.StartAt.Format(time.RFC3339),
	}
}
