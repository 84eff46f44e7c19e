package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/internal/integrations/notify"
	bookingRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/booking"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
)

// Request model for cancelling a booking
type Request struct {
	BookingID string
}

// UseCase cancels a booking: status flip, slot release and customer stats
// decrement as one atomic unit.
type UseCase struct {
	slots        SlotLedger
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
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
	notifier Notifier,
	txManager TransactionManager,
	window timeslot.Window,
	logger Logger,
) *UseCase {
	return &UseCase{
		slots:        slots,
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		txManager:    txManager,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the cancellation transaction. Re-cancelling an already
// cancelled booking fails with ErrAlreadyCancelled and performs no writes.
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	uc.logger.Info("CancelBooking: booking=%s", req.BookingID)

	var cancelled *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			return ErrAlreadyCancelled
		}

		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, uc.timeProvider.Now()); err != nil {
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// The slot must exist for any non-cancelled booking; a missing row
		// here is a ledger invariant violation, not a benign no-op.
		slotID := uc.window.SlotID(booking.StartAt)
		if err := uc.slots.Release(txCtx, booking.ProfessionalID, slotID); err != nil {
			return fmt.Errorf("%w: failed to release slot %s/%s: %v",
				ErrInternal, booking.ProfessionalID, slotID, err)
		}

		if err := uc.customerRepo.DecrementBookings(txCtx, booking.CustomerID); err != nil {
			return fmt.Errorf("%w: failed to update customer stats: %v", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrAlreadyCancelled):
			uc.logger.Warn("CancelBooking: booking=%s rejected: %v", req.BookingID, err)
		default:
			uc.logger.Error("CancelBooking: transaction failed for booking=%s: %v", req.BookingID, err)
		}
		return err
	}

	uc.logger.Info("CancelBooking: cancelled booking=%s professional=%s slot=%s",
		cancelled.ID, cancelled.ProfessionalID, uc.window.SlotID(cancelled.StartAt))

	// Post-commit notification, best-effort
	msg := &notify.Message{
		BookingID: cancelled.ID,
		Phone:     cancelled.CustomerPhone,
		Event:     "cancelled",
		StartAt:   cancelled.StartAt.Format(time.RFC3339),
	}
	if err := uc.notifier.Send(ctx, msg); err != nil {
		uc.logger.Warn("CancelBooking: notification for booking %s not delivered: %v", cancelled.ID, err)
	}

	return nil
}
