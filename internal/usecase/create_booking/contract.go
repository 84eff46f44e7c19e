package create_booking

import (
	"context"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/internal/integrations/notify"
	"github.com/barberbot-br/BookingCore/internal/integrations/professionals"
)

// SlotLedger reserves slots in the per-professional ledger
type SlotLedger interface {
	Reserve(ctx context.Context, s *domain.Slot) error
}

// BookingRepository persists booking records
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	UpdateNotificationStatus(ctx context.Context, id string, status domain.NotificationStatus) error
}

// CustomerRepository maintains the customer aggregate
type CustomerRepository interface {
	UpsertOnBooking(ctx context.Context, c *domain.Customer, bookingAt time.Time) error
}

// ProfessionalDirectory looks up professionals (existence + active flag)
type ProfessionalDirectory interface {
	GetProfessional(ctx context.Context, professionalID string) (*professionals.Professional, error)
}

// Notifier delivers booking notifications after commit, best-effort
type Notifier interface {
	Send(ctx context.Context, msg *notify.Message) error
}

// TransactionManager runs the booking write set atomically
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
