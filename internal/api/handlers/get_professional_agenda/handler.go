package get_professional_agenda

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/barberbot-br/BookingCore/internal/api/handlers"
	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/internal/service/bookings"
	"github.com/barberbot-br/BookingCore/internal/service/bookings/models"
)

const (
	msgInvalidDate  = "invalid date, expected YYYY-MM-DD"
	msgInvalidInput = "invalid request parameters"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/agenda?date=YYYY-MM-DD&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID := mux.Vars(r)["professionalId"]

	dateParam := r.URL.Query().Get("date")
	if _, err := time.Parse(domain.DateFormat, dateParam); err != nil {
		h.logger.Warn("GET /professionals/{id}/agenda - Invalid date %q: %v", dateParam, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetProfessionalAgenda(r.Context(), &models.GetProfessionalAgendaRequest{
		ProfessionalID:  professionalID,
		DayKey:          dateParam,
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/agenda - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /professionals/{id}/agenda - Failed: professional=%s, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
