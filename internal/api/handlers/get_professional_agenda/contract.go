package get_professional_agenda

import (
	"context"

	"github.com/barberbot-br/BookingCore/internal/service/bookings/models"
)

type BookingService interface {
	GetProfessionalAgenda(ctx context.Context, req *models.GetProfessionalAgendaRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
