package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbot-br/BookingCore/internal/domain"
	slotRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/slot"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
)

type fakeSlotLedger struct {
	slots map[string]*domain.Slot
}

func newFakeSlotLedger() *fakeSlotLedger {
	return &fakeSlotLedger{slots: make(map[string]*domain.Slot)}
}

func key(professionalID, slotID string) string {
	return professionalID + "/" + slotID
}

func (f *fakeSlotLedger) Reserve(_ context.Context, s *domain.Slot) error {
	k := key(s.ProfessionalID, s.SlotID)
	if _, ok := f.slots[k]; ok {
		return slotRepo.ErrSlotTaken
	}
	f.slots[k] = s
	return nil
}

func (f *fakeSlotLedger) Release(_ context.Context, professionalID, slotID string) error {
	k := key(professionalID, slotID)
	if _, ok := f.slots[k]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(f.slots, k)
	return nil
}

func (f *fakeSlotLedger) Get(_ context.Context, professionalID, slotID string) (*domain.Slot, error) {
	s, ok := f.slots[key(professionalID, slotID)]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService(t *testing.T) (*Service, *fakeSlotLedger, timeslot.Window) {
	t.Helper()

	window, err := timeslot.NewWindow("America/Sao_Paulo", "08:00", "18:30", 30, 0)
	require.NoError(t, err)

	ledger := newFakeSlotLedger()
	return NewService(ledger, fakeTxManager{}, window, noopLogger{}), ledger, window
}

func TestBlockSlot(t *testing.T) {
	svc, ledger, window := newService(t)
	startAt := time.Date(2024, 3, 4, 14, 0, 0, 0, window.Location)

	err := svc.BlockSlot(context.Background(), "prof-1", startAt)
	require.NoError(t, err)

	slot, ok := ledger.slots["prof-1/20240304_1400"]
	require.True(t, ok)
	assert.Equal(t, domain.SlotKindBlock, slot.Kind)
	assert.Nil(t, slot.BookingID)

	// A blocked slot cannot be blocked again
	err = svc.BlockSlot(context.Background(), "prof-1", startAt)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBlockSlot_OutsideWindow(t *testing.T) {
	svc, ledger, window := newService(t)

	err := svc.BlockSlot(context.Background(), "prof-1", time.Date(2024, 3, 4, 20, 0, 0, 0, window.Location))
	assert.ErrorIs(t, err, ErrOutsideServiceWindow)
	assert.Empty(t, ledger.slots)
}

func TestBlockSlot_ClosedDay(t *testing.T) {
	svc, ledger, window := newService(t)

	// 2024-03-03 is a Sunday
	err := svc.BlockSlot(context.Background(), "prof-1", time.Date(2024, 3, 3, 10, 0, 0, 0, window.Location))
	assert.ErrorIs(t, err, ErrClosedDay)
	assert.Empty(t, ledger.slots)
}

func TestUnblockSlot(t *testing.T) {
	svc, ledger, window := newService(t)
	startAt := time.Date(2024, 3, 4, 14, 0, 0, 0, window.Location)

	require.NoError(t, svc.BlockSlot(context.Background(), "prof-1", startAt))

	err := svc.UnblockSlot(context.Background(), "prof-1", startAt)
	require.NoError(t, err)
	assert.Empty(t, ledger.slots)

	// Nothing left to unblock
	err = svc.UnblockSlot(context.Background(), "prof-1", startAt)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestUnblockSlot_BookingHeldSlotIsRejected(t *testing.T) {
	svc, ledger, window := newService(t)
	startAt := time.Date(2024, 3, 4, 14, 0, 0, 0, window.Location)

	bookingID := "bk-1"
	ledger.slots["prof-1/20240304_1400"] = &domain.Slot{
		ProfessionalID: "prof-1",
		SlotID:         "20240304_1400",
		Kind:           domain.SlotKindBooking,
		BookingID:      &bookingID,
	}

	err := svc.UnblockSlot(context.Background(), "prof-1", startAt)
	assert.ErrorIs(t, err, ErrSlotNotBlocked)

	// The booking's slot stays in the ledger
	assert.Len(t, ledger.slots, 1)
}
