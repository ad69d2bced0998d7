package treatments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type treatmentsDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores the treatment catalog in the relational database.
type PostgresRepository struct {
	db treatmentsDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("treatments: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db treatmentsDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new catalog entry.
func (r *PostgresRepository) Create(ctx context.Context, treatment Treatment) (Treatment, error) {
	if err := treatment.Validate(); err != nil {
		return Treatment{}, err
	}

	query := `
		INSERT INTO treatments (name, price_net)
		VALUES ($1, $2)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query, treatment.Name, treatment.PriceNet).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Treatment{}, ErrDuplicateName
		}
		return Treatment{}, fmt.Errorf("treatments: insert failed: %w", err)
	}

	treatment.CreatedAt = createdAt
	return treatment, nil
}

// List returns the full catalog.
func (r *PostgresRepository) List(ctx context.Context) ([]Treatment, error) {
	query := `
		SELECT name, price_net, created_at
		FROM treatments
		ORDER BY created_at, name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("treatments: select failed: %w", err)
	}
	defer rows.Close()

	var out []Treatment
	for rows.Next() {
		var treatment Treatment
		if err := rows.Scan(&treatment.Name, &treatment.PriceNet, &treatment.CreatedAt); err != nil {
			return nil, fmt.Errorf("treatments: scan failed: %w", err)
		}
		out = append(out, treatment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("treatments: select failed: %w", err)
	}
	return out, nil
}

// GetByName fetches one catalog entry.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (Treatment, error) {
	query := `
		SELECT name, price_net, created_at
		FROM treatments
		WHERE LOWER(name) = LOWER($1)
	`
	var treatment Treatment
	if err := r.db.QueryRow(ctx, query, name).Scan(&treatment.Name, &treatment.PriceNet, &treatment.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Treatment{}, ErrTreatmentNotFound
		}
		return Treatment{}, fmt.Errorf("treatments: select failed: %w", err)
	}
	return treatment, nil
}

// DeleteByName removes one catalog entry.
func (r *PostgresRepository) DeleteByName(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM treatments WHERE LOWER(name) = LOWER($1)`, name)
	if err != nil {
		return fmt.Errorf("treatments: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTreatmentNotFound
	}
	return nil
}
