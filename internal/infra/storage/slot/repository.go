package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/pkg/dbmetrics"
	"github.com/barberbot-br/BookingCore/pkg/psqlbuilder"
)

// Repository is the slot ledger: one row per occupied (professional, slot)
// pair. The row's existence is the reservation, backed by the table's
// composite primary key.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new slot ledger repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve writes a new slot row for the given key. Intended to run inside
// the enclosing serializable transaction: the existence check establishes
// the conflict against the transaction snapshot, and the primary key is the
// storage-level backstop should two transactions race past it.
// Returns ErrSlotTaken when the slot is already occupied.
func (r *Repository) Reserve(ctx context.Context, s *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	existsQuery, existsArgs, err := psqlbuilder.Select("1").
		From("slots").
		Where(squirrel.Eq{"professional_id": s.ProfessionalID, "slot_id": s.SlotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reserve - build exists query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&one)
	if err == nil {
		return ErrSlotTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: Reserve - check existing slot: %v", ErrExecQuery, err)
	}

	insertQuery, insertArgs, err := psqlbuilder.Insert("slots").
		Columns("professional_id", "slot_id", "day_key", "start_at", "kind", "booking_id").
		Values(s.ProfessionalID, s.SlotID, s.DayKey, s.StartAt, s.Kind, s.BookingID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reserve - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Reserve - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Release deletes the slot row for the given key. A missing row at release
// time means a live booking held no slot, which violates the ledger
// invariant; ErrSlotNotFound is returned so the caller can fail loudly.
func (r *Repository) Release(ctx context.Context, professionalID, slotID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"professional_id": professionalID, "slot_id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Get fetches a single slot row by key
func (r *Repository) Get(ctx context.Context, professionalID, slotID string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"professional_id", "slot_id", "day_key", "start_at", "kind", "booking_id", "created_at",
	).
		From("slots").
		Where(squirrel.Eq{"professional_id": professionalID, "slot_id": slotID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ProfessionalID, &s.SlotID, &s.DayKey, &s.StartAt, &s.Kind, &s.BookingID, &s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListByDay returns every occupied slot of a professional on the given
// local day, ordered by start instant.
func (r *Repository) ListByDay(ctx context.Context, professionalID, dayKey string) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"professional_id", "slot_id", "day_key", "start_at", "kind", "booking_id", "created_at",
	).
		From("slots").
		Where(squirrel.Eq{"professional_id": professionalID, "day_key": dayKey}).
		OrderBy("slot_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(
			&s.ProfessionalID, &s.SlotID, &s.DayKey, &s.StartAt, &s.Kind, &s.BookingID, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByDay - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDay - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// isUniqueViolation detects a primary key conflict (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
