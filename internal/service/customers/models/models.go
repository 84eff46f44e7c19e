package models

import (
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
)

// Request models

// UpdateConsentRequest partially updates the customer's consent flags.
// Nil fields are left untouched.
type UpdateConsentRequest struct {
	MarketingConsent *bool `json:"marketingConsent,omitempty"`
	ReminderConsent  *bool `json:"reminderConsent,omitempty"`
}

// Response models

// CustomerStatsResponse is the rolling statistics DTO
type CustomerStatsResponse struct {
	TotalBookings  int     `json:"totalBookings"`
	TotalCompleted int     `json:"totalCompleted"`
	NoShowCount    int     `json:"noShowCount"`
	FirstBookingAt *string `json:"firstBookingAt,omitempty"` // RFC 3339
	LastBookingAt  *string `json:"lastBookingAt,omitempty"`
	LastContactAt  *string `json:"lastContactAt,omitempty"`
}

// CustomerResponse is the customer aggregate DTO
type CustomerResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	Birthday  *string `json:"birthday,omitempty"` // "1990-04-23"

	MarketingConsent bool `json:"marketingConsent"`
	ReminderConsent  bool `json:"reminderConsent"`

	Stats CustomerStatsResponse `json:"stats"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainCustomer converts the domain model into the DTO
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}

	resp := &CustomerResponse{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Phone:            c.Phone,
		MarketingConsent: c.MarketingConsent,
		ReminderConsent:  c.ReminderConsent,
		Stats: CustomerStatsResponse{
			TotalBookings:  c.Stats.TotalBookings,
			TotalCompleted: c.Stats.TotalCompleted,
			NoShowCount:    c.Stats.NoShowCount,
			FirstBookingAt: formatTime(c.Stats.FirstBookingAt),
			LastBookingAt:  formatTime(c.Stats.LastBookingAt),
			LastContactAt:  formatTime(c.Stats.LastContactAt),
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if c.Birthday != nil {
		birthday := c.Birthday.Format(domain.DateFormat)
		resp.Birthday = &birthday
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
