package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/barberbot-br/BookingCore/internal/usecase/get_available_slots"
)

// SlotPayload one bookable time bucket
type SlotPayload struct {
	SlotID  string `json:"slotId"`
	StartAt string `json:"startAt"` // RFC 3339
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProfessionalID string        `json:"professionalId"`
	DayKey         string        `json:"dayKey"`
	Slots          []SlotPayload `json:"slots"`
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotPayload, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotPayload{
			SlotID:  s.SlotID,
			StartAt: s.StartAt.Format(time.RFC3339),
		}
	}

	return &AvailableSlotsResponse{
		ProfessionalID: resp.ProfessionalID,
		DayKey:         resp.DayKey,
		Slots:          slots,
	}
}
