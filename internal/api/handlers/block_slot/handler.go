package block_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/barberbot-br/BookingCore/internal/api/handlers"
	"github.com/barberbot-br/BookingCore/internal/service/schedule"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStartAt     = "invalid startAt, expected RFC 3339 timestamp"
	msgSlotTaken          = "the slot is already taken"
	msgOutsideWindow      = "start time is outside business hours"
	msgClosedDay          = "the barbershop is closed on this day"
	msgInvalidInput       = "invalid request parameters"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	StartAt string `json:"startAt"` // RFC 3339
}

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

// Handle POST /api/v1/professionals/{professionalId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID := mux.Vars(r)["professionalId"]

	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	startAt, err := timeslot.ParseInstant(req.StartAt)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/blocks - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	if err := h.service.BlockSlot(r.Context(), professionalID, startAt); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotTaken):
			h.logger.Warn("POST /professionals/{id}/blocks - Slot taken: professional=%s start=%s",
				professionalID, req.StartAt)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, schedule.ErrClosedDay):
			h.logger.Warn("POST /professionals/{id}/blocks - Closed day: professional=%s start=%s",
				professionalID, req.StartAt)
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, schedule.ErrOutsideServiceWindow):
			h.logger.Warn("POST /professionals/{id}/blocks - Outside service window: professional=%s start=%s",
				professionalID, req.StartAt)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /professionals/{id}/blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /professionals/{id}/blocks - Failed: professional=%s, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /professionals/{id}/blocks - Slot blocked: professional=%s start=%s", professionalID, req.StartAt)
	handlers.RespondJSON(w, http.StatusCreated, nil)
}
