package models

import (
	"errors"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unrecognized status string
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// GetCustomerBookingsRequest lists a customer's booking history
type GetCustomerBookingsRequest struct {
	CustomerID string  `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetProfessionalAgendaRequest lists a professional's bookings for one day
type GetProfessionalAgendaRequest struct {
	ProfessionalID  string `json:"professionalId"`
	DayKey          string `json:"dayKey"`
	IncludeInactive bool   `json:"includeInactive,omitempty"`
}

// UpdateStatusRequest moves a booking through its attendance lifecycle
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response models

// BookingResponse is the booking DTO
type BookingResponse struct {
	ID             string `json:"id"`
	ProfessionalID string `json:"professionalId"`
	CustomerID     string `json:"customerId"`
	ServiceType    string `json:"serviceType"`
	StartAt        string `json:"startAt"` // RFC 3339
	DayKey         string `json:"dayKey"`  // "2025-10-15"
	Status         string `json:"status"`

	// Customer snapshot taken at booking time
	CustomerFirstName string `json:"customerFirstName"`
	CustomerLastName  string `json:"customerLastName"`
	CustomerPhone     string `json:"customerPhone"`

	NotificationStatus string  `json:"notificationStatus"`
	RescheduledFrom    *string `json:"rescheduledFrom,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // RFC 3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse is the booking list DTO
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Conversion helpers

// FromDomainBooking converts the domain model into the DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ProfessionalID:     b.ProfessionalID,
		CustomerID:         b.CustomerID,
		ServiceType:        b.ServiceType,
		StartAt:            b.StartAt.Format(time.RFC3339),
		DayKey:             b.DayKey,
		Status:             string(b.Status),
		CustomerFirstName:  b.CustomerFirstName,
		CustomerLastName:   b.CustomerLastName,
		CustomerPhone:      b.CustomerPhone,
		NotificationStatus: string(b.NotificationStatus),
		RescheduledFrom:    b.RescheduledFrom,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList converts a list of domain models into the DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus validates and converts a status string
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusBooked,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
		domain.StatusRescheduled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
