package owners

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ownersDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores owners in the relational database.
type PostgresRepository struct {
	db ownersDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("owners: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db ownersDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, owner Owner) (Owner, error) {
	if err := owner.Validate(); err != nil {
		return Owner{}, err
	}

	query := `
		INSERT INTO owners (dni, name, phone, email, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		owner.DNI,
		owner.Name,
		owner.Phone,
		owner.Email,
		owner.Address,
	).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Owner{}, ErrDuplicateDNI
		}
		return Owner{}, fmt.Errorf("owners: insert failed: %w", err)
	}

	owner.CreatedAt = createdAt
	return owner, nil
}

// List returns all owners in registration order.
func (r *PostgresRepository) List(ctx context.Context) ([]Owner, error) {
	query := `
		SELECT dni, name, phone, email, address, created_at
		FROM owners
		ORDER BY created_at, dni
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("owners: select failed: %w", err)
	}
	defer rows.Close()

	var out []Owner
	for rows.Next() {
		var owner Owner
		if err := rows.Scan(&owner.DNI, &owner.Name, &owner.Phone, &owner.Email, &owner.Address, &owner.CreatedAt); err != nil {
			return nil, fmt.Errorf("owners: scan failed: %w", err)
		}
		out = append(out, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("owners: select failed: %w", err)
	}
	return out, nil
}

// GetByDNI fetches one owner.
func (r *PostgresRepository) GetByDNI(ctx context.Context, dni string) (Owner, error) {
	query := `
		SELECT dni, name, phone, email, address, created_at
		FROM owners
		WHERE dni = $1
	`
	var owner Owner
	if err := r.db.QueryRow(ctx, query, dni).Scan(
		&owner.DNI,
		&owner.Name,
		&owner.Phone,
		&owner.Email,
		&owner.Address,
		&owner.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Owner{}, ErrOwnerNotFound
		}
		return Owner{}, fmt.Errorf("owners: select failed: %w", err)
	}
	return owner, nil
}

// DeleteByDNI removes one owner.
func (r *PostgresRepository) DeleteByDNI(ctx context.Context, dni string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM owners WHERE dni = $1`, dni)
	if err != nil {
		return fmt.Errorf("owners: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOwnerNotFound
	}
	return nil
}

// OwnerExists reports whether an owner with the given name is on file.
func (r *PostgresRepository) OwnerExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM owners WHERE LOWER(name) = LOWER($1))`
	if err := r.db.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("owners: exists failed: %w", err)
	}
	return exists, nil
}
