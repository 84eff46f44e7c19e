package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	customerRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/customer"
	"github.com/barberbot-br/BookingCore/internal/service/customers/models"
)

// Service handles customer aggregate reads, consent management and contact
// tracking. Booking-driven counter updates live in the transactional flows,
// not here.
type Service struct {
	customerRepo CustomerRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates a new customer service instance
func NewService(customerRepo CustomerRepository, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID fetches the customer aggregate
func (s *Service) GetByID(ctx context.Context, id string) (*models.CustomerResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}

	s.logger.Info("GetByID: fetching customer id=%s", id)

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetByID: customer id=%s not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetByID: repository error for customer id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomer(customer), nil
}

// UpdateConsent partially updates the consent flags. Fields left nil in the
// request keep their stored value.
func (s *Service) UpdateConsent(ctx context.Context, id string, req *models.UpdateConsentRequest) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	if req.MarketingConsent == nil && req.ReminderConsent == nil {
		return fmt.Errorf("%w: at least one consent flag is required", ErrInvalidInput)
	}

	s.logger.Info("UpdateConsent: customer=%s marketing=%v reminder=%v", id, req.MarketingConsent, req.ReminderConsent)

	err := s.customerRepo.UpdateConsent(ctx, id, req.MarketingConsent, req.ReminderConsent)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("UpdateConsent: customer id=%s not found", id)
			return ErrCustomerNotFound
		}
		s.logger.Error("UpdateConsent: repository error for customer id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateConsent - repository error: %v", ErrInternal, err)
	}

	return nil
}

// TouchContact stamps the customer's last contact time with the current
// instant. Called by conversation flows whenever the customer writes in.
func (s *Service) TouchContact(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}

	s.logger.Info("TouchContact: customer=%s", id)

	err := s.customerRepo.TouchContact(ctx, id, s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("TouchContact: customer id=%s not found", id)
			return ErrCustomerNotFound
		}
		s.logger.Error("TouchContact: repository error for customer id=%s: %v", id, err)
		return fmt.Errorf("%w: TouchContact - repository error: %v", ErrInternal, err)
	}

	return nil
}
