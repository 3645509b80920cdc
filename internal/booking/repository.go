package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Names of the constraints the ledger translates into domain errors.
const (
	activeSlotConstraint = "bookings_active_slot_uniq"
	workerFKConstraint   = "bookings_worker_id_fkey"
	salonFKConstraint    = "bookings_salon_id_fkey"
)

type Repository interface {
	// Insert stores b. The uniqueness of active (worker, date, slot) triples is
	// checked by the database in the same statement; a clash is ErrSlotAlreadyBooked.
	Insert(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	FindByWorkerAndDateRange(ctx context.Context, workerID string, start, end time.Time, filter StatusFilter) ([]*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, error)

	// Cancel marks the booking cancelled. changed is false when it already was.
	Cancel(ctx context.Context, id string) (b *Booking, changed bool, err error)
	// Complete moves a confirmed booking to completed.
	Complete(ctx context.Context, id string) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"id", "user_id", "salon_id", "worker_id", "service", "date", "time_slot", "status",
	"client_name", "client_email", "client_phone", "created_at", "updated_at",
}

const bookingReturning = "RETURNING id, user_id, salon_id, worker_id, service, date, time_slot, status, " +
	"client_name, client_email, client_phone, created_at, updated_at"

func (r *pgxRepository) Insert(ctx context.Context, b *Booking) error {
	if b.Status == "" {
		b.Status = StatusConfirmed
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"user_id", "salon_id", "worker_id", "service", "date", "time_slot", "status",
			"client_name", "client_email", "client_phone",
		).
		Values(
			b.UserID, b.SalonID, b.WorkerID, b.Service, b.Date, b.TimeSlot, b.Status,
			b.Client.Name, b.Client.Email, b.Client.Phone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == activeSlotConstraint:
				return ErrSlotAlreadyBooked
			case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == workerFKConstraint:
				return ErrWorkerNotFound
			case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == salonFKConstraint:
				return ErrSalonNotFound
			}
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) FindByWorkerAndDateRange(ctx context.Context, workerID string, start, end time.Time, filter StatusFilter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"worker_id": workerID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.Lt{"date": end})
	query = applyStatusFilter(query, filter).OrderBy("date ASC", "time_slot ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, sql, args)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns...).From("public.bookings")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.SalonID != "" {
		query = query.Where(squirrel.Eq{"salon_id": filter.SalonID})
	}
	if filter.WorkerID != "" {
		query = query.Where(squirrel.Eq{"worker_id": filter.WorkerID})
	}
	query = applyStatusFilter(query, filter.Status).
		OrderBy("date DESC", "time_slot ASC", "created_at ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, sql, args)
}

func (r *pgxRepository) Cancel(ctx context.Context, id string) (*Booking, bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", StatusCancelled).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Suffix(bookingReturning).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build cancel booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err == nil {
		return b, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("cancel booking failed: %w", err)
	}

	// Nothing updated: either missing or already cancelled.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *pgxRepository) Complete(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", StatusCompleted).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": StatusConfirmed}).
		Suffix(bookingReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build complete booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("complete booking failed: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrInvalidTransition
}

func (r *pgxRepository) queryBookings(ctx context.Context, sql string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings failed: %w", err)
	}
	return bookings, nil
}

func applyStatusFilter(q squirrel.SelectBuilder, f StatusFilter) squirrel.SelectBuilder {
	if len(f.Only) > 0 {
		q = q.Where(squirrel.Eq{"status": f.Only})
	}
	if len(f.Exclude) > 0 {
		q = q.Where(squirrel.NotEq{"status": f.Exclude})
	}
	return q
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.UserID, &b.SalonID, &b.WorkerID, &b.Service, &b.Date, &b.TimeSlot, &b.Status,
		&b.Client.Name, &b.Client.Email, &b.Client.Phone, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
