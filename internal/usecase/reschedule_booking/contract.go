package reschedule_booking

import (
	"context"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/internal/integrations/notify"
)

// SlotLedger reserves and releases slots in the per-professional ledger
type SlotLedger interface {
	Reserve(ctx context.Context, s *domain.Slot) error
	Release(ctx context.Context, professionalID, slotID string) error
}

// BookingRepository reads and mutates booking records
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Reschedule(ctx context.Context, id string, startAt time.Time, dayKey string, rescheduledFrom string) error
}

// Notifier delivers booking notifications after commit, best-effort
type Notifier interface {
	Send(ctx context.Context, msg *notify.Message) error
}

// TransactionManager runs the slot move atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
