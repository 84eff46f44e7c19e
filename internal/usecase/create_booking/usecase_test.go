package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/internal/integrations/notify"
	"github.com/barberbot-br/BookingCore/internal/integrations/professionals"
	slotRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/slot"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
)

type fakeSlotLedger struct {
	reserveErr error
	reserved   []*domain.Slot
}

func (f *fakeSlotLedger) Reserve(_ context.Context, s *domain.Slot) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reserved = append(f.reserved, s)
	return nil
}

type fakeBookingRepo struct {
	createErr error
	created   []*domain.Booking
	notified  map[string]domain.NotificationStatus
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBookingRepo) UpdateNotificationStatus(_ context.Context, id string, status domain.NotificationStatus) error {
	if f.notified == nil {
		f.notified = make(map[string]domain.NotificationStatus)
	}
	f.notified[id] = status
	return nil
}

type customerUpsert struct {
	customer  *domain.Customer
	bookingAt time.Time
}

type fakeCustomerRepo struct {
	upsertErr error
	upserts   []customerUpsert
}

func (f *fakeCustomerRepo) UpsertOnBooking(_ context.Context, c *domain.Customer, bookingAt time.Time) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, customerUpsert{customer: c, bookingAt: bookingAt})
	return nil
}

type fakeDirectory struct {
	professional *professionals.Professional
	err          error
}

func (f *fakeDirectory) GetProfessional(_ context.Context, _ string) (*professionals.Professional, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.professional, nil
}

type fakeNotifier struct {
	sendErr error
	sent    []*notify.Message
}

func (f *fakeNotifier) Send(_ context.Context, msg *notify.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

// fakeTxManager runs the transaction body directly. Atomicity assertions
// rely on the write order inside the body: a failed step must stop the
// steps after it.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
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
	directory *fakeDirectory
	notifier  *fakeNotifier
	tx        *fakeTxManager
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	window, err := timeslot.NewWindow("America/Sao_Paulo", "08:00", "18:30", 30, 0)
	require.NoError(t, err)

	f := &fixture{
		slots:     &fakeSlotLedger{},
		bookings:  &fakeBookingRepo{},
		customers: &fakeCustomerRepo{},
		directory: &fakeDirectory{professional: &professionals.Professional{ID: "prof-1", Name: "Carlos", Active: true}},
		notifier:  &fakeNotifier{},
		tx:        &fakeTxManager{},
		now:       time.Date(2024, 3, 4, 9, 0, 0, 0, window.Location),
	}

	f.uc = NewUseCase(f.slots, f.bookings, f.customers, f.directory, f.notifier, f.tx, window, noopLogger{})
	f.uc.timeProvider = fixedTime{t: f.now}

	return f
}

func validRequest(window timeslot.Window) *Request {
	return &Request{
		ProfessionalID: "prof-1",
		ServiceType:    "corte",
		StartAt:        time.Date(2024, 3, 4, 10, 0, 0, 0, window.Location),
		Customer: CustomerInput{
			FirstName: "João",
			LastName:  "Silva",
			Phone:     "(11) 98765-4321",
		},
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)
	req := validRequest(f.uc.window)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.BookingID)
	assert.Equal(t, "20240304_1000", resp.SlotID)
	assert.Equal(t, "2024-03-04", resp.DayKey)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.True(t, strings.HasPrefix(resp.CustomerID, "cus_"))

	// Slot reserved for this booking
	require.Len(t, f.slots.reserved, 1)
	slot := f.slots.reserved[0]
	assert.Equal(t, "prof-1", slot.ProfessionalID)
	assert.Equal(t, "20240304_1000", slot.SlotID)
	assert.Equal(t, domain.SlotKindBooking, slot.Kind)
	require.NotNil(t, slot.BookingID)
	assert.Equal(t, resp.BookingID, *slot.BookingID)

	// Booking record carries the normalized phone snapshot
	require.Len(t, f.bookings.created, 1)
	booking := f.bookings.created[0]
	assert.Equal(t, "+551187654321", booking.CustomerPhone)
	assert.Equal(t, resp.CustomerID, booking.CustomerID)
	assert.Equal(t, domain.NotificationPending, booking.NotificationStatus)

	// Customer aggregate touched in the same transaction
	require.Len(t, f.customers.upserts, 1)
	assert.Equal(t, resp.CustomerID, f.customers.upserts[0].customer.ID)
	assert.Equal(t, f.now, f.customers.upserts[0].bookingAt)

	assert.Equal(t, 1, f.tx.calls)

	// Post-commit notification sent and recorded
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "created", f.notifier.sent[0].Event)
	assert.Equal(t, domain.NotificationSent, f.bookings.notified[resp.BookingID])
}

func TestExecute_SameIdentityForFormattingVariants(t *testing.T) {
	phones := []string{"(11) 98765-4321", "11 98765 4321", "011987654321"}

	var ids []string
	for _, phone := range phones {
		f := newFixture(t)
		req := validRequest(f.uc.window)
		req.Customer.Phone = phone

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		ids = append(ids, resp.CustomerID)
	}

	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, ids[0], ids[2])
}

func TestExecute_SlotTaken_NoPartialWrites(t *testing.T) {
	f := newFixture(t)
	f.slots.reserveErr = slotRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), validRequest(f.uc.window))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Conflict aborts before the booking and customer writes
	assert.Empty(t, f.bookings.created)
	assert.Empty(t, f.customers.upserts)
	assert.Empty(t, f.notifier.sent)
}

func TestExecute_ValidationFailures(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing professional", func(r *Request) { r.ProfessionalID = " " }},
		{"missing service type", func(r *Request) { r.ServiceType = "" }},
		{"service type too long", func(r *Request) { r.ServiceType = strings.Repeat("x", domain.MaxServiceTypeLen+1) }},
		{"zero start", func(r *Request) { r.StartAt = time.Time{} }},
		{"missing first name", func(r *Request) { r.Customer.FirstName = "" }},
		{"name too long", func(r *Request) { r.Customer.FirstName = strings.Repeat("a", domain.MaxNameLength+1) }},
		{"missing phone", func(r *Request) { r.Customer.Phone = "" }},
		{"unparseable phone", func(r *Request) { r.Customer.Phone = "12345" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(f.uc.window)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Empty(t, f.slots.reserved)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_BusinessHours(t *testing.T) {
	f := newFixture(t)
	loc := f.uc.window.Location

	tests := []struct {
		name    string
		startAt time.Time
		wantErr error
	}{
		{"sunday", time.Date(2024, 3, 3, 10, 0, 0, 0, loc), ErrClosedDay},
		{"before opening", time.Date(2024, 3, 4, 7, 30, 0, 0, loc), ErrOutsideServiceWindow},
		{"after closing boundary", time.Date(2024, 3, 4, 19, 0, 0, 0, loc), ErrOutsideServiceWindow},
		{"unaligned start", time.Date(2024, 3, 4, 10, 15, 0, 0, loc), ErrOutsideServiceWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(f.uc.window)
			req.StartAt = tt.startAt

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.slots.reserved)
}

func TestExecute_ClosingBoundaryIsBookable(t *testing.T) {
	f := newFixture(t)
	req := validRequest(f.uc.window)
	req.StartAt = time.Date(2024, 3, 4, 18, 30, 0, 0, f.uc.window.Location)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "20240304_1830", resp.SlotID)
}

func TestExecute_ProfessionalChecks(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.directory.err = professionals.ErrProfessionalNotFound

		_, err := f.uc.Execute(context.Background(), validRequest(f.uc.window))
		assert.ErrorIs(t, err, ErrProfessionalNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		f := newFixture(t)
		f.directory.professional.Active = false

		_, err := f.uc.Execute(context.Background(), validRequest(f.uc.window))
		assert.ErrorIs(t, err, ErrProfessionalInactive)
		assert.Empty(t, f.slots.reserved)
	})
}

func TestExecute_NotifierFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.notifier.sendErr = errors.New("gateway unavailable")

	resp, err := f.uc.Execute(context.Background(), validRequest(f.uc.window))
	require.NoError(t, err)

	// Booking stands; notification state stays pending
	require.Len(t, f.bookings.created, 1)
	assert.NotContains(t, f.bookings.notified, resp.BookingID)
}
