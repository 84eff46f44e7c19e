package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
)

type fakeSlotLedger struct {
	slots []*domain.Slot
	err   error
}

func (f *fakeSlotLedger) ListByDay(_ context.Context, _, _ string) ([]*domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newUseCase(t *testing.T, ledger *fakeSlotLedger, now time.Time) *UseCase {
	t.Helper()

	window, err := timeslot.NewWindow("America/Sao_Paulo", "08:00", "18:30", 30, 0)
	require.NoError(t, err)

	uc := NewUseCase(ledger, window, noopLogger{})
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func TestExecute_FullyFreeDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// Querying from the day before: every slot is in the future
	now := time.Date(2024, 3, 3, 12, 0, 0, 0, loc)
	uc := newUseCase(t, &fakeSlotLedger{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: "prof-1",
		Day:            time.Date(2024, 3, 4, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-04", resp.DayKey)
	assert.Len(t, resp.Slots, 22)
	assert.Equal(t, "20240304_0800", resp.Slots[0].SlotID)
	assert.Equal(t, "20240304_1830", resp.Slots[len(resp.Slots)-1].SlotID)
}

func TestExecute_ExcludesOccupiedAndPastSlots(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	ledger := &fakeSlotLedger{
		slots: []*domain.Slot{
			{ProfessionalID: "prof-1", SlotID: "20240304_1400", Kind: domain.SlotKindBooking},
			{ProfessionalID: "prof-1", SlotID: "20240304_1500", Kind: domain.SlotKindBlock},
		},
	}

	// Mid-day query: everything up to and including 10:00 has started
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, loc)
	uc := newUseCase(t, ledger, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: "prof-1",
		Day:            now,
	})
	require.NoError(t, err)

	ids := make(map[string]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		ids[s.SlotID] = true
	}

	// 10:30 .. 18:30 is 17 slots, minus a booking and a block
	assert.Len(t, resp.Slots, 15)
	assert.False(t, ids["20240304_1000"], "started slot must be excluded")
	assert.True(t, ids["20240304_1030"])
	assert.False(t, ids["20240304_1400"], "booked slot must be excluded")
	assert.False(t, ids["20240304_1500"], "blocked slot must be excluded")
	assert.True(t, ids["20240304_1830"])
}

func TestExecute_ClosedDayIsEmpty(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	now := time.Date(2024, 3, 2, 12, 0, 0, 0, loc)
	uc := newUseCase(t, &fakeSlotLedger{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: "prof-1",
		Day:            time.Date(2024, 3, 3, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(t, &fakeSlotLedger{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: "", Day: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProfessionalID: "prof-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
