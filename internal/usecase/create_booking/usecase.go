package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/internal/identity"
	"github.com/barberbot-br/BookingCore/internal/integrations/notify"
	profClient "github.com/barberbot-br/BookingCore/internal/integrations/professionals"
	slotRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/slot"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
	"github.com/barberbot-br/BookingCore/pkg/ptr"
)

// UseCase creates a booking: slot reservation, booking record and customer
// aggregate update as one atomic unit.
type UseCase struct {
	slots        SlotLedger
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	directory    ProfessionalDirectory
	notifier     Notifier
	txManager    TransactionManager
	window       timeslot.Window
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new use case instance
func NewUseCase(
	slots SlotLedger,
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	directory ProfessionalDirectory,
	notifier Notifier,
	txManager TransactionManager,
	window timeslot.Window,
	logger Logger,
) *UseCase {
	return &UseCase{
		slots:        slots,
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		directory:    directory,
		notifier:     notifier,
		txManager:    txManager,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the create-booking transaction.
// The slot reservation is the conflict check: if another booking owns the
// (professional, slot) pair the whole transaction aborts with ErrSlotTaken
// and no partial writes remain.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: professional=%s, service=%s, start=%s",
		req.ProfessionalID, req.ServiceType, req.StartAt.Format(time.RFC3339))

	// 1. Structural validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Normalize the phone and derive the customer identity
	phone, err := identity.NormalizePhone(req.Customer.Phone)
	if err != nil {
		uc.logger.Warn("CreateBooking: phone normalization failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	customerID := identity.CustomerID(phone)

	// 3. Business-hours validation
	if uc.window.IsClosedDay(req.StartAt) {
		uc.logger.Warn("CreateBooking: closed day %s", uc.window.DayKey(req.StartAt))
		return nil, ErrClosedDay
	}
	if !uc.window.IsWithinServiceWindow(req.StartAt) {
		uc.logger.Warn("CreateBooking: start %s outside service window", req.StartAt.Format(time.RFC3339))
		return nil, ErrOutsideServiceWindow
	}

	// 4. Professional must exist and be active
	professional, err := uc.directory.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, profClient.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateBooking: professional %s not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateBooking: failed to get professional %s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if !professional.Active {
		uc.logger.Warn("CreateBooking: professional %s is inactive", req.ProfessionalID)
		return nil, ErrProfessionalInactive
	}

	// 5. Derive the slot coordinates
	slotID := uc.window.SlotID(req.StartAt)
	dayKey := uc.window.DayKey(req.StartAt)
	bookingID := uuid.NewString()

	booking := &domain.Booking{
		ID:                 bookingID,
		ProfessionalID:     req.ProfessionalID,
		CustomerID:         customerID,
		ServiceType:        strings.TrimSpace(req.ServiceType),
		StartAt:            req.StartAt,
		DayKey:             dayKey,
		CustomerFirstName:  strings.TrimSpace(req.Customer.FirstName),
		CustomerLastName:   strings.TrimSpace(req.Customer.LastName),
		CustomerPhone:      phone,
		Status:             domain.StatusBooked,
		NotificationStatus: domain.NotificationPending,
	}

	// 6. Slot + booking + customer as one atomic unit
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation := &domain.Slot{
			ProfessionalID: req.ProfessionalID,
			SlotID:         slotID,
			DayKey:         dayKey,
			StartAt:        req.StartAt,
			Kind:           domain.SlotKindBooking,
			BookingID:      ptr.Ptr(bookingID),
		}
		if err := uc.slots.Reserve(txCtx, reservation); err != nil {
			if errors.Is(err, slotRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		customer := &domain.Customer{
			ID:        customerID,
			FirstName: booking.CustomerFirstName,
			LastName:  booking.CustomerLastName,
			Phone:     phone,
		}
		if err := uc.customerRepo.UpsertOnBooking(txCtx, customer, uc.timeProvider.Now()); err != nil {
			return fmt.Errorf("%w: failed to upsert customer: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot %s/%s already taken", req.ProfessionalID, slotID)
		} else {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%s slot=%s/%s customer=%s",
		bookingID, req.ProfessionalID, slotID, customerID)

	// 7. Post-commit notification, best-effort
	uc.dispatchNotification(ctx, booking)

	return &Response{
		BookingID:  bookingID,
		CustomerID: customerID,
		SlotID:     slotID,
		DayKey:     dayKey,
		StartAt:    booking.StartAt,
		Status:     string(booking.Status),
		CreatedAt:  booking.CreatedAt,
	}, nil
}

// dispatchNotification sends the created event outside the transaction.
// Failures are logged and leave the booking in notification state pending.
func (uc *UseCase) dispatchNotification(ctx context.Context, booking *domain.Booking) {
	msg := &notify.Message{
		BookingID: booking.ID,
		Phone:     booking.CustomerPhone,
		Event:     "created",
		StartAt:   booking.StartAt.Format(time.RFC3339),
	}
	if err := uc.notifier.Send(ctx, msg); err != nil {
		uc.logger.Warn("CreateBooking: notification for booking %s not delivered: %v", booking.ID, err)
		return
	}
	if err := uc.bookingRepo.UpdateNotificationStatus(ctx, booking.ID, domain.NotificationSent); err != nil {
		uc.logger.Warn("CreateBooking: failed to mark notification sent for booking %s: %v", booking.ID, err)
	}
}
