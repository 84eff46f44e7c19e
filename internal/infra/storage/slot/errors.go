package slot

import "errors"

var (
	// ErrSlotTaken is returned when the (professional, slot) pair is already reserved
	ErrSlotTaken = errors.New("slot.repository: slot already reserved")

	// ErrSlotNotFound is returned when no slot row exists for the given key
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow is returned when scanning the query result fails
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
