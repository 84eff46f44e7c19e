package create_booking

import (
	"errors"
	"net/http"

	"github.com/barberbot-br/BookingCore/internal/api/handlers"
	createBooking "github.com/barberbot-br/BookingCore/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidStartAt       = "invalid startAt, expected RFC 3339 timestamp"
	msgInvalidInput         = "invalid booking data"
	msgSlotTaken            = "the requested slot is already taken"
	msgClosedDay            = "the barbershop is closed on this day"
	msgOutsideWindow        = "start time is outside business hours"
	msgProfessionalNotFound = "professional not found"
	msgProfessionalInactive = "professional is not taking bookings"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: professional=%s start=%s", req.ProfessionalID, req.StartAt)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrProfessionalNotFound):
			h.logger.Warn("POST /bookings - Professional not found: professional=%s", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createBooking.ErrProfessionalInactive):
			h.logger.Warn("POST /bookings - Professional inactive: professional=%s", req.ProfessionalID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgProfessionalInactive)

		case errors.Is(err, createBooking.ErrClosedDay):
			h.logger.Warn("POST /bookings - Closed day: professional=%s start=%s", req.ProfessionalID, req.StartAt)
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, createBooking.ErrOutsideServiceWindow):
			h.logger.Warn("POST /bookings - Outside service window: professional=%s start=%s", req.ProfessionalID, req.StartAt)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: professional=%s, error=%v", req.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, professional=%s, slot=%s",
		result.BookingID, req.ProfessionalID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
