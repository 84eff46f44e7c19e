package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/internal/integrations/notify"
	bookingRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/booking"
	slotRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/slot"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
)

// fakeSlotLedger records the interleaving of reserve and release calls so
// the swap ordering can be asserted.
type fakeSlotLedger struct {
	reserveErr error
	ops        []string
	reserved   []*domain.Slot
	released   []string
}

func (f *fakeSlotLedger) Reserve(_ context.Context, s *domain.Slot) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.ops = append(f.ops, "reserve:"+s.SlotID)
	f.reserved = append(f.reserved, s)
	return nil
}

func (f *fakeSlotLedger) Release(_ context.Context, _, slotID string) error {
	f.ops = append(f.ops, "release:"+slotID)
	f.released = append(f.released, slotID)
	return nil
}

type rescheduleCall struct {
	id              string
	startAt         time.Time
	dayKey          string
	rescheduledFrom string
}

type fakeBookingRepo struct {
	booking       *domain.Booking
	reschedules   []rescheduleCall
	rescheduleErr error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *f.booking
	return &cp, nil
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, id string, startAt time.Time, dayKey string, rescheduledFrom string) error {
	if f.rescheduleErr != nil {
		return f.rescheduleErr
	}
	f.reschedules = append(f.reschedules, rescheduleCall{
		id:              id,
		startAt:         startAt,
		dayKey:          dayKey,
		rescheduledFrom: rescheduledFrom,
	})
	return nil
}

type fakeNotifier struct {
	sent []*notify.Message
}

func (f *fakeNotifier) Send(_ context.Context, msg *notify.Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc       *UseCase
	slots    *fakeSlotLedger
	bookings *fakeBookingRepo
	notifier *fakeNotifier
}

func newFixture(t *testing.T, status domain.BookingStatus) *fixture {
	t.Helper()

	window, err := timeslot.NewWindow("America/Sao_Paulo", "08:00", "18:30", 30, 0)
	require.NoError(t, err)

	f := &fixture{
		slots:    &fakeSlotLedger{},
		notifier: &fakeNotifier{},
	}
	f.bookings = &fakeBookingRepo{
		booking: &domain.Booking{
			ID:             "bk-1",
			ProfessionalID: "prof-1",
			CustomerID:     "cus_abc",
			CustomerPhone:  "+5511987654321",
			StartAt:        time.Date(2024, 3, 4, 10, 0, 0, 0, window.Location),
			Status:         status,
		},
	}

	f.uc = NewUseCase(f.slots, f.bookings, f.notifier, fakeTxManager{}, window, noopLogger{})
	return f
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, domain.StatusBooked)
	newStart := time.Date(2024, 3, 5, 14, 0, 0, 0, f.uc.window.Location)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: "bk-1", NewStartAt: newStart})
	require.NoError(t, err)

	assert.Equal(t, "bk-1", resp.BookingID)
	assert.Equal(t, "20240305_1400", resp.SlotID)
	assert.Equal(t, "2024-03-05", resp.DayKey)

	// Destination is reserved before the origin is released: the booking
	// never holds zero slots mid-move.
	assert.Equal(t, []string{"reserve:20240305_1400", "release:20240304_1000"}, f.slots.ops)

	// The new ledger row points back at the booking
	require.Len(t, f.slots.reserved, 1)
	require.NotNil(t, f.slots.reserved[0].BookingID)
	assert.Equal(t, "bk-1", *f.slots.reserved[0].BookingID)
	assert.Equal(t, domain.SlotKindBooking, f.slots.reserved[0].Kind)

	// Same booking id, audit back-reference set
	require.Len(t, f.bookings.reschedules, 1)
	call := f.bookings.reschedules[0]
	assert.Equal(t, "bk-1", call.id)
	assert.Equal(t, "bk-1", call.rescheduledFrom)
	assert.Equal(t, newStart, call.startAt)
	assert.Equal(t, "2024-03-05", call.dayKey)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "rescheduled", f.notifier.sent[0].Event)
}

func TestExecute_DestinationTaken_SwapOrNothing(t *testing.T) {
	f := newFixture(t, domain.StatusBooked)
	f.slots.reserveErr = slotRepo.ErrSlotTaken
	newStart := time.Date(2024, 3, 5, 14, 0, 0, 0, f.uc.window.Location)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: "bk-1", NewStartAt: newStart})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// The origin slot stays untouched when the destination conflicts
	assert.Empty(t, f.slots.released)
	assert.Empty(t, f.bookings.reschedules)
	assert.Empty(t, f.notifier.sent)
}

func TestExecute_CancelledBookingCannotBeRescheduled(t *testing.T) {
	f := newFixture(t, domain.StatusCancelled)
	newStart := time.Date(2024, 3, 5, 14, 0, 0, 0, f.uc.window.Location)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: "bk-1", NewStartAt: newStart})
	assert.ErrorIs(t, err, ErrCannotReschedule)
	assert.Empty(t, f.slots.ops)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(t, domain.StatusBooked)
	newStart := time.Date(2024, 3, 5, 14, 0, 0, 0, f.uc.window.Location)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: "missing", NewStartAt: newStart})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_DestinationValidation(t *testing.T) {
	f := newFixture(t, domain.StatusBooked)
	loc := f.uc.window.Location

	tests := []struct {
		name    string
		startAt time.Time
		wantErr error
	}{
		{"sunday", time.Date(2024, 3, 10, 10, 0, 0, 0, loc), ErrClosedDay},
		{"outside window", time.Date(2024, 3, 5, 20, 0, 0, 0, loc), ErrOutsideServiceWindow},
		{"unaligned", time.Date(2024, 3, 5, 14, 10, 0, 0, loc), ErrOutsideServiceWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &Request{BookingID: "bk-1", NewStartAt: tt.startAt})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.slots.ops)
}

func TestExecute_MissingInput(t *testing.T) {
	f := newFixture(t, domain.StatusBooked)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: "bk-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
