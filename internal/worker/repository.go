package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for workers.
type Repository interface {
	Create(ctx context.Context, w *Worker) error
	GetByID(ctx context.Context, id string) (*Worker, error)
	ListBySalon(ctx context.Context, salonID string) ([]*Worker, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var workerColumns = []string{
	"id", "salon_id", "name", "surname", "email", "phone_number", "services", "availability", "created_at",
}

func (r *pgxRepository) Create(ctx context.Context, w *Worker) error {
	availability, err := json.Marshal(w.Availability)
	if err != nil {
		return fmt.Errorf("encode availability failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.workers").
		Columns("salon_id", "name", "surname", "email", "phone_number", "services", "availability").
		Values(w.SalonID, w.Name, w.Surname, w.Email, w.PhoneNumber, w.Services, availability).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create worker query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&w.ID, &w.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrEmailAlreadyUsed
			case pgerrcode.ForeignKeyViolation:
				return ErrSalonNotFound
			}
		}
		return fmt.Errorf("create worker failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Worker, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(workerColumns...).
		From("public.workers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get worker query failed: %w", err)
	}

	w, err := scanWorker(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get worker failed: %w", err)
	}
	return w, nil
}

func (r *pgxRepository) ListBySalon(ctx context.Context, salonID string) ([]*Worker, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(workerColumns...).
		From("public.workers").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("surname ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list workers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workers failed: %w", err)
	}
	defer rows.Close()

	var workers []*Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("scan worker failed: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workers failed: %w", err)
	}
	return workers, nil
}

func scanWorker(row pgx.Row) (*Worker, error) {
	var w Worker
	var availability []byte
	if err := row.Scan(
		&w.ID, &w.SalonID, &w.Name, &w.Surname, &w.Email, &w.PhoneNumber,
		&w.Services, &availability, &w.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &w.Availability); err != nil {
			return nil, fmt.Errorf("decode availability failed: %w", err)
		}
	}
	return &w, nil
}
