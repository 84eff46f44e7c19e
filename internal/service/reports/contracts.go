package reports

import (
	"context"
	"time"
)

// BookingRepository aggregates booking rows for reporting
type BookingRepository interface {
	CountServiceTypes(ctx context.Context, fromDayKey, toDayKey string) (map[string]int, error)
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
