package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/internal/integrations/notify"
	bookingRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/booking"
	slotRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/slot"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
	"github.com/barberbot-br/BookingCore/pkg/ptr"
)

// Request model for rescheduling a booking
type Request struct {
	BookingID  string
	NewStartAt time.Time
}

// Response model with the moved booking
type Response struct {
	BookingID string
	SlotID    string
	DayKey    string
	StartAt   time.Time
}

// UseCase moves a booking to a new slot. The move is an atomic swap:
// reserve the destination first, then release the origin, so the booking
// never holds zero slots mid-transaction, and a destination conflict rolls
// everything back leaving the original reservation untouched.
type UseCase struct {
	slots       SlotLedger
	bookingRepo BookingRepository
	notifier    Notifier
	txManager   TransactionManager
	window      timeslot.Window
	logger      Logger
}

// NewUseCase creates a new use case instance
func NewUseCase(
	slots SlotLedger,
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	window timeslot.Window,
	logger Logger,
) *UseCase {
	return &UseCase{
		slots:       slots,
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txManager:   txManager,
		window:      window,
		logger:      logger,
	}
}

// Execute runs the reschedule transaction
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if req.NewStartAt.IsZero() {
		return nil, fmt.Errorf("%w: newStartAt is required", ErrInvalidInput)
	}

	uc.logger.Info("RescheduleBooking: booking=%s newStart=%s",
		req.BookingID, req.NewStartAt.Format(time.RFC3339))

	// The destination passes the same business-hours validation as creation
	if uc.window.IsClosedDay(req.NewStartAt) {
		uc.logger.Warn("RescheduleBooking: closed day %s", uc.window.DayKey(req.NewStartAt))
		return nil, ErrClosedDay
	}
	if !uc.window.IsWithinServiceWindow(req.NewStartAt) {
		uc.logger.Warn("RescheduleBooking: start %s outside service window", req.NewStartAt.Format(time.RFC3339))
		return nil, ErrOutsideServiceWindow
	}

	newSlotID := uc.window.SlotID(req.NewStartAt)
	newDayKey := uc.window.DayKey(req.NewStartAt)

	var moved *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			return ErrCannotReschedule
		}

		oldSlotID := uc.window.SlotID(booking.StartAt)

		// Reserve before release: the conflict check runs against the
		// destination while the origin is still held.
		reservation := &domain.Slot{
			ProfessionalID: booking.ProfessionalID,
			SlotID:         newSlotID,
			DayKey:         newDayKey,
			StartAt:        req.NewStartAt,
			Kind:           domain.SlotKindBooking,
			BookingID:      ptr.Ptr(booking.ID),
		}
		if err := uc.slots.Reserve(txCtx, reservation); err != nil {
			if errors.Is(err, slotRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to reserve destination slot: %v", ErrInternal, err)
		}

		if err := uc.slots.Release(txCtx, booking.ProfessionalID, oldSlotID); err != nil {
			return fmt.Errorf("%w: failed to release origin slot %s/%s: %v",
				ErrInternal, booking.ProfessionalID, oldSlotID, err)
		}

		// Same booking id, with the audit back-reference recording what it
		// was rescheduled from.
		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.NewStartAt, newDayKey, booking.ID); err != nil {
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		moved = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrCannotReschedule),
			errors.Is(err, ErrSlotTaken):
			uc.logger.Warn("RescheduleBooking: booking=%s rejected: %v", req.BookingID, err)
		default:
			uc.logger.Error("RescheduleBooking: transaction failed for booking=%s: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: moved booking=%s to slot=%s/%s",
		moved.ID, moved.ProfessionalID, newSlotID)

	// Post-commit notification, best-effort
	msg := &notify.Message{
		BookingID: moved.ID,
		Phone:     moved.CustomerPhone,
		Event:     "rescheduled",
		StartAt:   req.NewStartAt.Format(time.RFC3339),
	}
	if err := uc.notifier.Send(ctx, msg); err != nil {
		uc.logger.Warn("RescheduleBooking: notification for booking %s not delivered: %v", moved.ID, err)
	}

	return &Response{
		BookingID: moved.ID,
		SlotID:    newSlotID,
		DayKey:    newDayKey,
		StartAt:   req.NewStartAt,
	}, nil
}
