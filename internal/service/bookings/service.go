package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/barberbot-br/BookingCore/internal/domain"
	bookingRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/booking"
	"github.com/barberbot-br/BookingCore/internal/service/bookings/models"
)

// Statuses a booking can be moved into through the attendance lifecycle.
// Cancellation and rescheduling have their own transactional flows and are
// not reachable through UpdateStatus.
var manualTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.StatusConfirmed: {domain.StatusBooked},
	domain.StatusCompleted: {domain.StatusBooked, domain.StatusConfirmed},
	domain.StatusNoShow:    {domain.StatusBooked, domain.StatusConfirmed},
}

// Service handles booking reads and attendance status updates
type Service struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService creates a new booking service instance
func NewService(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID fetches a single booking
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings returns a customer's booking history, newest first.
// Optionally filters by status.
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, fmt.Errorf("%w: customerId is required", ErrInvalidInput)
	}

	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%s, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%s", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%s", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProfessionalAgenda returns a professional's bookings for one local day
// in start order. Cancelled and no-show bookings are excluded unless
// includeInactive is set.
func (s *Service) GetProfessionalAgenda(ctx context.Context, req *models.GetProfessionalAgendaRequest) (*models.BookingListResponse, error) {
	if strings.TrimSpace(req.ProfessionalID) == "" {
		return nil, fmt.Errorf("%w: professionalId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.DayKey) == "" {
		return nil, fmt.Errorf("%w: dayKey is required", ErrInvalidInput)
	}

	s.logger.Info("GetProfessionalAgenda: professional=%s day=%s includeInactive=%t",
		req.ProfessionalID, req.DayKey, req.IncludeInactive)

	bookings, err := s.bookingRepo.GetByProfessionalAndDay(ctx, req.ProfessionalID, req.DayKey, req.IncludeInactive)
	if err != nil {
		s.logger.Error("GetProfessionalAgenda: repository error for professional=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: GetProfessionalAgenda - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProfessionalAgenda: fetched %d bookings for professional=%s day=%s",
		len(bookings), req.ProfessionalID, req.DayKey)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus moves a booking through the attendance lifecycle:
// booked -> confirmed -> completed / no_show. A completed visit bumps the
// customer's completed counter, a no-show bumps the no-show counter, both
// in the same transaction as the status flip.
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) error {
	if strings.TrimSpace(bookingID) == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	allowedFrom, ok := manualTransitions[newStatus]
	if !ok {
		s.logger.Warn("UpdateStatus: status=%s is not manually reachable for booking id=%s", newStatus, bookingID)
		return fmt.Errorf("%w: %s is not reachable through a status update", ErrInvalidStatus, newStatus)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if !statusIn(booking.Status, allowedFrom) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		switch newStatus {
		case domain.StatusCompleted:
			if err := s.customerRepo.IncrementCompleted(txCtx, booking.CustomerID); err != nil {
				return fmt.Errorf("%w: UpdateStatus - failed to update customer stats: %v", ErrInternal, err)
			}
		case domain.StatusNoShow:
			if err := s.customerRepo.IncrementNoShow(txCtx, booking.CustomerID); err != nil {
				return fmt.Errorf("%w: UpdateStatus - failed to update customer stats: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: booking id=%s rejected: %v", bookingID, err)
		default:
			s.logger.Error("UpdateStatus: transaction failed for booking id=%s: %v", bookingID, err)
		}
		return err
	}

	s.logger.Info("UpdateStatus: updated booking id=%s to status=%s", bookingID, newStatus)
	return nil
}

func statusIn(status domain.BookingStatus, set []domain.BookingStatus) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}
