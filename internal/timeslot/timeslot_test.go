package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow(t *testing.T) Window {
	t.Helper()
	w, err := NewWindow("America/Sao_Paulo", "08:00", "18:30", 30, 0)
	require.NoError(t, err)
	return w
}

func TestNewWindow_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		timezone      string
		open, close   string
		slotMinutes   int
		closedWeekday int
	}{
		{"unknown timezone", "Mars/Olympus", "08:00", "18:30", 30, 0},
		{"malformed open time", "America/Sao_Paulo", "8h00", "18:30", 30, 0},
		{"open after close", "America/Sao_Paulo", "19:00", "18:30", 30, 0},
		{"zero granularity", "America/Sao_Paulo", "08:00", "18:30", 0, 0},
		{"granularity not dividing day", "America/Sao_Paulo", "08:00", "18:30", 7, 0},
		{"weekday out of range", "America/Sao_Paulo", "08:00", "18:30", 30, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWindow(tt.timezone, tt.open, tt.close, tt.slotMinutes, tt.closedWeekday)
			assert.Error(t, err)
		})
	}
}

func TestSlotID_StableAcrossZones(t *testing.T) {
	w := testWindow(t)

	// Same instant expressed in different zones must map to the same slot.
	saoPaulo := time.Date(2024, 3, 4, 10, 0, 0, 0, w.Location)
	utc := saoPaulo.UTC()

	assert.Equal(t, "20240304_1000", w.SlotID(saoPaulo))
	assert.Equal(t, w.SlotID(saoPaulo), w.SlotID(utc))
}

func TestDayKey(t *testing.T) {
	w := testWindow(t)

	// 01:00 UTC is still the previous day in Sao Paulo (UTC-3).
	utc := time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-04", w.DayKey(utc))
}

func TestIsClosedDay(t *testing.T) {
	w := testWindow(t)

	sunday := time.Date(2024, 3, 3, 10, 0, 0, 0, w.Location)
	monday := time.Date(2024, 3, 4, 10, 0, 0, 0, w.Location)

	assert.True(t, w.IsClosedDay(sunday))
	assert.False(t, w.IsClosedDay(monday))
}

func TestIsWithinServiceWindow(t *testing.T) {
	w := testWindow(t)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, w.Location)

	at := func(hour, min, sec int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, min, sec, 0, w.Location)
	}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"opening slot", at(8, 0, 0), true},
		{"midday slot", at(10, 30, 0), true},
		{"closing boundary is bookable", at(18, 30, 0), true},
		{"minute after closing boundary", at(18, 31, 0), false},
		{"next slot after closing", at(19, 0, 0), false},
		{"before opening", at(7, 30, 0), false},
		{"unaligned minute", at(10, 15, 0), false},
		{"sub-minute component", at(10, 0, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.IsWithinServiceWindow(tt.t))
		})
	}
}

func TestIsWithinServiceWindow_ForeignZoneInput(t *testing.T) {
	w := testWindow(t)

	// 13:00 UTC == 10:00 in Sao Paulo: inside the window.
	assert.True(t, w.IsWithinServiceWindow(time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC)))
	// 23:00 UTC == 20:00 local: outside.
	assert.False(t, w.IsWithinServiceWindow(time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC)))
}

func TestSlotStarts(t *testing.T) {
	w := testWindow(t)
	day := time.Date(2024, 3, 4, 12, 0, 0, 0, w.Location)

	starts := w.SlotStarts(day)
	require.NotEmpty(t, starts)

	// 08:00 through 18:30 at 30-minute steps = 22 slots.
	assert.Len(t, starts, 22)
	assert.Equal(t, "20240304_0800", w.SlotID(starts[0]))
	assert.Equal(t, "20240304_1830", w.SlotID(starts[len(starts)-1]))

	for _, s := range starts {
		assert.True(t, w.IsWithinServiceWindow(s), "slot %s should be valid", w.SlotID(s))
	}
}

func TestParseInstant(t *testing.T) {
	got, err := ParseInstant("2024-03-04T10:00:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, 13, got.UTC().Hour())

	_, err = ParseInstant("04/03/2024 10:00")
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}
