package top_services

import (
	"context"

	"github.com/barberbot-br/BookingCore/internal/service/reports"
)

type ReportService interface {
	TopServices(ctx context.Context, fromDayKey, toDayKey string) (*reports.TopServicesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
