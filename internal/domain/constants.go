package domain

// Time format constants
const (
	TimeFormat   = "15:04"         // HH:MM
	DateFormat   = "2006-01-02"    // day key, YYYY-MM-DD
	SlotIDFormat = "20060102_1504" // slot id, local date and time at slot granularity
)

// Default business window values
const (
	DefaultSlotMinutes = 30
	MaxNameLength      = 120
	MaxServiceTypeLen  = 60
)

// LiveStatuses are the booking statuses that own a slot in the ledger
var LiveStatuses = []BookingStatus{
	StatusBooked,
	StatusConfirmed,
}

// InactiveStatuses are the statuses excluded from agenda views by default
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
