package unblock_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/barberbot-br/BookingCore/internal/api/handlers"
	"github.com/barberbot-br/BookingCore/internal/service/schedule"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
)

const (
	msgInvalidStartAt = "invalid startAt, expected RFC 3339 timestamp"
	msgSlotNotFound   = "no slot to unblock"
	msgSlotNotBlocked = "the slot is held by a booking"
	msgInvalidInput   = "invalid request parameters"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/professionals/{professionalId}/blocks?startAt=RFC3339
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID := mux.Vars(r)["professionalId"]

	startAtParam := r.URL.Query().Get("startAt")
	startAt, err := timeslot.ParseInstant(startAtParam)
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/blocks - Failed to parse startAt %q: %v", startAtParam, err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	if err := h.service.UnblockSlot(r.Context(), professionalID, startAt); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotNotFound):
			h.logger.Warn("DELETE /professionals/{id}/blocks - Slot not found: professional=%s start=%s",
				professionalID, startAtParam)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, schedule.ErrSlotNotBlocked):
			h.logger.Warn("DELETE /professionals/{id}/blocks - Slot held by booking: professional=%s start=%s",
				professionalID, startAtParam)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgSlotNotBlocked)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /professionals/{id}/blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("DELETE /professionals/{id}/blocks - Failed: professional=%s, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /professionals/{id}/blocks - Slot unblocked: professional=%s start=%s",
		professionalID, startAtParam)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
