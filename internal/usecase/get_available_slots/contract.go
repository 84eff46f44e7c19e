package get_available_slots

import (
	"context"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
)

// SlotLedger reads occupied slots from the per-professional ledger
type SlotLedger interface {
	ListByDay(ctx context.Context, professionalID, dayKey string) ([]*domain.Slot, error)
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
