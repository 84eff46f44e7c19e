package create_booking

import (
	"fmt"
	"strings"

	"github.com/barberbot-br/BookingCore/internal/domain"
)

// validateRequest checks the structural validity of the request.
// Business-rule checks (window, closed day, conflicts) live in the use case.
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ProfessionalID) == "" {
		return fmt.Errorf("%w: professionalId is required", ErrInvalidInput)
	}

	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}
	if len(serviceType) > domain.MaxServiceTypeLen {
		return fmt.Errorf("%w: serviceType too long", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Customer.FirstName) == "" {
		return fmt.Errorf("%w: customer firstName is required", ErrInvalidInput)
	}
	if len(req.Customer.FirstName) > domain.MaxNameLength || len(req.Customer.LastName) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Customer.Phone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	return nil
}
