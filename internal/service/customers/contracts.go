package customers

import (
	"context"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
)

// CustomerRepository is the customer aggregate store
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	UpdateConsent(ctx context.Context, id string, marketing, reminder *bool) error
	TouchContact(ctx context.Context, id string, at time.Time) error
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
