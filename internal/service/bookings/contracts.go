package bookings

import (
	"context"

	"github.com/barberbot-br/BookingCore/internal/domain"
)

// BookingRepository is the booking record store
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByProfessionalAndDay(ctx context.Context, professionalID, dayKey string, includeInactive bool) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

// CustomerRepository maintains the customer aggregate counters
type CustomerRepository interface {
	IncrementCompleted(ctx context.Context, id string) error
	IncrementNoShow(ctx context.Context, id string) error
}

// TransactionManager runs the status flip and its counter update atomically
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
