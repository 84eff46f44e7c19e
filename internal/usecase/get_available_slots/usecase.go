package get_available_slots

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/barberbot-br/BookingCore/internal/timeslot"
)

// Request model for listing a professional's free slots on one local day
type Request struct {
	ProfessionalID string
	Day            time.Time
}

// Slot one bookable time bucket
type Slot struct {
	SlotID  string
	StartAt time.Time
}

// Response model with the free slots of the day, in start order
type Response struct {
	ProfessionalID string
	DayKey         string
	Slots          []Slot
}

// UseCase lists free slots: the business window's slot grid minus ledger
// rows (bookings and blocks alike) minus slots already in the past.
// Read-only; the listing is advisory and never substitutes for the
// transactional conflict check at creation time.
type UseCase struct {
	slots        SlotLedger
	window       timeslot.Window
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new use case instance
func NewUseCase(slots SlotLedger, window timeslot.Window, logger Logger) *UseCase {
	return &UseCase{
		slots:        slots,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute computes the free slots of the day
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.ProfessionalID) == "" {
		return nil, fmt.Errorf("%w: professionalId is required", ErrInvalidInput)
	}
	if req.Day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}

	dayKey := uc.window.DayKey(req.Day)
	uc.logger.Info("GetAvailableSlots: professional=%s day=%s", req.ProfessionalID, dayKey)

	// Closed day: nothing is bookable
	if uc.window.IsClosedDay(req.Day) {
		return &Response{ProfessionalID: req.ProfessionalID, DayKey: dayKey, Slots: []Slot{}}, nil
	}

	occupied, err := uc.slots.ListByDay(ctx, req.ProfessionalID, dayKey)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list occupied slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list occupied slots: %v", ErrInternal, err)
	}

	taken := make(map[string]struct{}, len(occupied))
	for _, s := range occupied {
		taken[s.SlotID] = struct{}{}
	}

	now := uc.timeProvider.Now()

	free := make([]Slot, 0)
	for _, start := range uc.window.SlotStarts(req.Day) {
		if !start.After(now) {
			continue
		}
		slotID := uc.window.SlotID(start)
		if _, ok := taken[slotID]; ok {
			continue
		}
		free = append(free, Slot{SlotID: slotID, StartAt: start})
	}

	uc.logger.Info("GetAvailableSlots: professional=%s day=%s free=%d/%d",
		req.ProfessionalID, dayKey, len(free), len(uc.window.SlotStarts(req.Day)))

	return &Response{
		ProfessionalID: req.ProfessionalID,
		DayKey:         dayKey,
		Slots:          free,
	}, nil
}
