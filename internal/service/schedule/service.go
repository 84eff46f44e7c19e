package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
	slotRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/slot"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
)

// Service manages manual schedule blocks. A block occupies a ledger slot
// exactly like a booking does, so blocked time can never be double-sold,
// but it carries no booking record and no customer.
type Service struct {
	slots     SlotLedger
	txManager TransactionManager
	window    timeslot.Window
	logger    Logger
}

// NewService creates a new schedule service instance
func NewService(slots SlotLedger, txManager TransactionManager, window timeslot.Window, logger Logger) *Service {
	return &Service{
		slots:     slots,
		txManager: txManager,
		window:    window,
		logger:    logger,
	}
}

// BlockSlot takes a slot out of sale for the professional. Blocking a slot
// that is already booked or blocked fails with ErrSlotTaken.
func (s *Service) BlockSlot(ctx context.Context, professionalID string, startAt time.Time) error {
	if strings.TrimSpace(professionalID) == "" {
		return fmt.Errorf("%w: professionalId is required", ErrInvalidInput)
	}
	if startAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}
	if s.window.IsClosedDay(startAt) {
		return ErrClosedDay
	}
	if !s.window.IsWithinServiceWindow(startAt) {
		return ErrOutsideServiceWindow
	}

	slotID := s.window.SlotID(startAt)
	s.logger.Info("BlockSlot: professional=%s slot=%s", professionalID, slotID)

	block := &domain.Slot{
		ProfessionalID: professionalID,
		SlotID:         slotID,
		DayKey:         s.window.DayKey(startAt),
		StartAt:        startAt,
		Kind:           domain.SlotKindBlock,
	}
	if err := s.slots.Reserve(ctx, block); err != nil {
		if errors.Is(err, slotRepo.ErrSlotTaken) {
			s.logger.Warn("BlockSlot: slot %s/%s already taken", professionalID, slotID)
			return ErrSlotTaken
		}
		s.logger.Error("BlockSlot: failed to reserve slot %s/%s: %v", professionalID, slotID, err)
		return fmt.Errorf("%w: BlockSlot - failed to reserve slot: %v", ErrInternal, err)
	}

	s.logger.Info("BlockSlot: blocked slot %s/%s", professionalID, slotID)
	return nil
}

// UnblockSlot puts a blocked slot back on sale. Slots held by bookings are
// rejected: cancelling the booking is the only way to free those.
func (s *Service) UnblockSlot(ctx context.Context, professionalID string, startAt time.Time) error {
	if strings.TrimSpace(professionalID) == "" {
		return fmt.Errorf("%w: professionalId is required", ErrInvalidInput)
	}
	if startAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	slotID := s.window.SlotID(startAt)
	s.logger.Info("UnblockSlot: professional=%s slot=%s", professionalID, slotID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slots.Get(txCtx, professionalID, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: UnblockSlot - failed to get slot: %v", ErrInternal, err)
		}

		if !slot.IsBlock() {
			return ErrSlotNotBlocked
		}

		if err := s.slots.Release(txCtx, professionalID, slotID); err != nil {
			return fmt.Errorf("%w: UnblockSlot - failed to release slot: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrSlotNotBlocked):
			s.logger.Warn("UnblockSlot: slot %s/%s rejected: %v", professionalID, slotID, err)
		default:
			s.logger.Error("UnblockSlot: transaction failed for slot %s/%s: %v", professionalID, slotID, err)
		}
		return err
	}

	s.logger.Info("UnblockSlot: unblocked slot %s/%s", professionalID, slotID)
	return nil
}
