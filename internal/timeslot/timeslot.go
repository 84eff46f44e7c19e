package timeslot

import (
	"errors"
	"fmt"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/pkg/types"
)

var (
	// ErrInvalidTimestamp is returned for malformed timestamp input
	ErrInvalidTimestamp = errors.New("timeslot: invalid timestamp")

	// ErrInvalidWindow is returned when the window configuration is inconsistent
	ErrInvalidWindow = errors.New("timeslot: invalid business window")
)

// Window holds the static business-hours configuration: timezone, opening
// hours, slot granularity and the weekly closure day. All slot and day keys
// are derived in the window's timezone.
type Window struct {
	Location      *time.Location
	OpenTime      types.TimeString
	CloseTime     types.TimeString
	SlotMinutes   int
	ClosedWeekday time.Weekday
}

// NewWindow validates and builds a Window from raw configuration values
func NewWindow(timezone, openTime, closeTime string, slotMinutes, closedWeekday int) (Window, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Window{}, fmt.Errorf("%w: timezone %q: %v", ErrInvalidWindow, timezone, err)
	}

	open, err := types.NewTimeStringFromString(openTime)
	if err != nil {
		return Window{}, fmt.Errorf("%w: open_time: %v", ErrInvalidWindow, err)
	}
	close, err := types.NewTimeStringFromString(closeTime)
	if err != nil {
		return Window{}, fmt.Errorf("%w: close_time: %v", ErrInvalidWindow, err)
	}
	if !open.IsBefore(close) {
		return Window{}, fmt.Errorf("%w: open_time %s must precede close_time %s", ErrInvalidWindow, open, close)
	}

	if slotMinutes <= 0 || 24*60%slotMinutes != 0 {
		return Window{}, fmt.Errorf("%w: slot_minutes %d must evenly divide the day", ErrInvalidWindow, slotMinutes)
	}
	if closedWeekday < 0 || closedWeekday > 6 {
		return Window{}, fmt.Errorf("%w: closed_weekday %d out of range", ErrInvalidWindow, closedWeekday)
	}

	return Window{
		Location:      loc,
		OpenTime:      open,
		CloseTime:     close,
		SlotMinutes:   slotMinutes,
		ClosedWeekday: time.Weekday(closedWeekday),
	}, nil
}

// Canonicalize projects an instant into the business timezone
func (w Window) Canonicalize(t time.Time) time.Time {
	return t.In(w.Location)
}

// SlotID returns the canonical slot key for an instant: local date and time
// encoded as YYYYMMDD_HHMM. Injective over slot boundaries and stable
// across recomputation.
func (w Window) SlotID(t time.Time) string {
	return w.Canonicalize(t).Format(domain.SlotIDFormat)
}

// DayKey returns the local calendar day of an instant as YYYY-MM-DD
func (w Window) DayKey(t time.Time) string {
	return w.Canonicalize(t).Format(domain.DateFormat)
}

// IsClosedDay reports whether the instant falls on the weekly closure day
func (w Window) IsClosedDay(t time.Time) bool {
	return w.Canonicalize(t).Weekday() == w.ClosedWeekday
}

// IsWithinServiceWindow reports whether the instant is a valid slot start:
// aligned to the slot granularity and inside [open, close], the closing
// boundary included. Sub-minute components disqualify the instant.
func (w Window) IsWithinServiceWindow(t time.Time) bool {
	local := w.Canonicalize(t)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return false
	}

	minutes := local.Hour()*60 + local.Minute()
	if minutes%w.SlotMinutes != 0 {
		return false
	}

	openMin, err := w.OpenTime.Minutes()
	if err != nil {
		return false
	}
	closeMin, err := w.CloseTime.Minutes()
	if err != nil {
		return false
	}

	return minutes >= openMin && minutes <= closeMin
}

// SlotStarts lists every slot start instant of the given local day,
// from opening to the closing boundary inclusive. The day is taken from
// the instant's local date in the business timezone.
func (w Window) SlotStarts(day time.Time) []time.Time {
	local := w.Canonicalize(day)

	openMin, err := w.OpenTime.Minutes()
	if err != nil {
		return nil
	}
	closeMin, err := w.CloseTime.Minutes()
	if err != nil {
		return nil
	}

	starts := make([]time.Time, 0, (closeMin-openMin)/w.SlotMinutes+1)
	for m := openMin; m <= closeMin; m += w.SlotMinutes {
		starts = append(starts, time.Date(
			local.Year(), local.Month(), local.Day(),
			m/60, m%60, 0, 0, w.Location,
		))
	}
	return starts
}

// ParseInstant parses an RFC3339 timestamp. Malformed input is an
// invalid-argument fault.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return t, nil
}
