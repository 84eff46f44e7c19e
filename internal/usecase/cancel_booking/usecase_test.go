package cancel_booking

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

type release struct {
	professionalID string
	slotID         string
}

type fakeSlotLedger struct {
	releaseErr error
	released   []release
}

func (f *fakeSlotLedger) Release(_ context.Context, professionalID, slotID string) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.released = append(f.released, release{professionalID: professionalID, slotID: slotID})
	return nil
}

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	cancelled map[string]time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *f.booking
	return &cp, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id string, cancelledAt time.Time) error {
	if f.cancelled == nil {
		f.cancelled = make(map[string]time.Time)
	}
	f.cancelled[id] = cancelledAt
	return nil
}

type fakeCustomerRepo struct {
	decremented []string
}

func (f *fakeCustomerRepo) DecrementBookings(_ context.Context, id string) error {
	f.decremented = append(f.decremented, id)
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

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc        *UseCase
	slots     *fakeSlotLedger
	bookings  *fakeBookingRepo
	customers *fakeCustomerRepo
	notifier  *fakeNotifier
	now       time.Time
}

func newFixture(t *testing.T, status domain.BookingStatus) *fixture {
	t.Helper()

	window, err := timeslot.NewWindow("America/Sao_Paulo", "08:00", "18:30", 30, 0)
	require.NoError(t, err)

	f := &fixture{
		slots:     &fakeSlotLedger{},
		customers: &fakeCustomerRepo{},
		notifier:  &fakeNotifier{},
		now:       time.Date(2024, 3, 4, 9, 0, 0, 0, window.Location),
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

	f.uc = NewUseCase(f.slots, f.bookings, f.customers, f.notifier, fakeTxManager{}, window, noopLogger{})
	f.uc.timeProvider = fixedTime{t: f.now}

	return f
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, domain.StatusBooked)

	err := f.uc.Execute(context.Background(), &Request{BookingID: "bk-1"})
	require.NoError(t, err)

	// Status flipped with the cancellation instant
	assert.Equal(t, f.now, f.bookings.cancelled["bk-1"])

	// Slot released back to the ledger
	require.Len(t, f.slots.released, 1)
	assert.Equal(t, release{professionalID: "prof-1", slotID: "20240304_1000"}, f.slots.released[0])

	// Customer aggregate decremented
	assert.Equal(t, []string{"cus_abc"}, f.customers.decremented)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "cancelled", f.notifier.sent[0].Event)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	f := newFixture(t, domain.StatusCancelled)

	err := f.uc.Execute(context.Background(), &Request{BookingID: "bk-1"})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	// Second cancel is rejected without writes
	assert.Empty(t, f.bookings.cancelled)
	assert.Empty(t, f.slots.released)
	assert.Empty(t, f.customers.decremented)
	assert.Empty(t, f.notifier.sent)
}

func TestExecute_ConfirmedBookingCanBeCancelled(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed)

	err := f.uc.Execute(context.Background(), &Request{BookingID: "bk-1"})
	require.NoError(t, err)
	assert.Len(t, f.slots.released, 1)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(t, domain.StatusBooked)

	err := f.uc.Execute(context.Background(), &Request{BookingID: "missing"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, f.notifier.sent)
}

func TestExecute_MissingSlotIsInternalFault(t *testing.T) {
	f := newFixture(t, domain.StatusBooked)
	f.slots.releaseErr = slotRepo.ErrSlotNotFound

	// A live booking without its ledger row is a broken invariant,
	// not a benign no-op.
	err := f.uc.Execute(context.Background(), &Request{BookingID: "bk-1"})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.customers.decremented)
	assert.Empty(t, f.notifier.sent)
}

func TestExecute_MissingBookingID(t *testing.T) {
	f := newFixture(t, domain.StatusBooked)

	err := f.uc.Execute(context.Background(), &Request{BookingID: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
