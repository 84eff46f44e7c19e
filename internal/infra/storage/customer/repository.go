package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberbot-br/BookingCore/internal/domain"
	"github.com/barberbot-br/BookingCore/pkg/dbmetrics"
	"github.com/barberbot-br/BookingCore/pkg/psqlbuilder"
)

// Repository is the customer aggregate store
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new customer repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertOnBooking creates the customer on their first booking or refreshes
// identity fields and increments totalBookings on subsequent ones. Runs
// inside the same transaction that creates the booking so the aggregate
// stays consistent with the ledger.
func (r *Repository) UpsertOnBooking(ctx context.Context, c *domain.Customer, bookingAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns(
			"id",
			"first_name",
			"last_name",
			"phone",
			"total_bookings",
			"first_booking_at",
			"last_booking_at",
			"last_contact_at",
		).
		Values(c.ID, c.FirstName, c.LastName, c.Phone, 1, bookingAt, bookingAt, bookingAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			total_bookings = customers.total_bookings + 1,
			first_booking_at = COALESCE(customers.first_booking_at, EXCLUDED.first_booking_at),
			last_booking_at = EXCLUDED.last_booking_at,
			last_contact_at = EXCLUDED.last_contact_at,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertOnBooking - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertOnBooking - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DecrementBookings takes one booking back out of the aggregate.
// Runs inside the cancellation transaction.
func (r *Repository) DecrementBookings(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("total_bookings", squirrel.Expr("total_bookings - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DecrementBookings - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "DecrementBookings")
}

// IncrementCompleted bumps the completed-visits counter
func (r *Repository) IncrementCompleted(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("total_completed", squirrel.Expr("total_completed + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementCompleted - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "IncrementCompleted")
}

// IncrementNoShow bumps the no-show counter
func (r *Repository) IncrementNoShow(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("no_show_count", squirrel.Expr("no_show_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementNoShow - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "IncrementNoShow")
}

// UpdateConsent partially updates the consent flags
func (r *Repository) UpdateConsent(ctx context.Context, id string, marketing, reminder *bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("customers").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if marketing != nil {
		updateBuilder = updateBuilder.Set("marketing_consent", *marketing)
	}
	if reminder != nil {
		updateBuilder = updateBuilder.Set("reminder_consent", *reminder)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateConsent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateConsent")
}

// TouchContact stamps the last contact timestamp
func (r *Repository) TouchContact(ctx context.Context, id string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("last_contact_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: TouchContact - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "TouchContact")
}

// GetByID fetches a customer aggregate by id
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"phone",
		"birthday",
		"marketing_consent",
		"reminder_consent",
		"total_bookings",
		"total_completed",
		"no_show_count",
		"first_booking_at",
		"last_booking_at",
		"last_contact_at",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.Birthday,
		&c.MarketingConsent,
		&c.ReminderConsent,
		&c.Stats.TotalBookings,
		&c.Stats.TotalCompleted,
		&c.Stats.NoShowCount,
		&c.Stats.FirstBookingAt,
		&c.Stats.LastBookingAt,
		&c.Stats.LastContactAt,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}
