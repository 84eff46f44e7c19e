package schedule

import (
	"context"

	"github.com/barberbot-br/BookingCore/internal/domain"
)

// SlotLedger reserves and releases slots in the per-professional ledger
type SlotLedger interface {
	Reserve(ctx context.Context, s *domain.Slot) error
	Release(ctx context.Context, professionalID, slotID string) error
	Get(ctx context.Context, professionalID, slotID string) (*domain.Slot, error)
}

// TransactionManager makes the read-then-release of an unblock atomic
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
