package update_consent

import (
	"context"

	"github.com/barberbot-br/BookingCore/internal/service/customers/models"
)

type CustomerService interface {
	UpdateConsent(ctx context.Context, id string, req *models.UpdateConsentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
