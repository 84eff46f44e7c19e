package cancel_booking

import (
	"context"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/internal/integrations/notify"
)

// SlotLedger releases slots from the per-professional ledger
type SlotLedger interface {
	Release(ctx context.Context, professionalID, slotID string) error
}

// BookingRepository reads and mutates booking records
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Cancel(ctx context.Context, id string, cancelledAt time.Time) error
}

// CustomerRepository maintains the customer aggregate
type CustomerRepository interface {
	DecrementBookings(ctx context.Context, id string) error
}

// Notifier delivers booking notifications after commit, best-effort
type Notifier interface {
	Send(ctx context.Context, msg *notify.Message) error
}

// TransactionManager runs the cancellation write set atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (overridable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
