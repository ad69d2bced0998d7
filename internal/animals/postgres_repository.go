package animals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type animalsDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores animals in the relational database.
type PostgresRepository struct {
	db animalsDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("animals: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db animalsDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, animal Animal) (Animal, error) {
	if err := animal.Validate(); err != nil {
		return Animal{}, err
	}

	query := `
		INSERT INTO animals (chip, name, species, birth_date, sex, owner_dni)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		animal.Chip,
		animal.Name,
		animal.Species,
		animal.BirthDate,
		animal.Sex,
		animal.OwnerDNI,
	).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Animal{}, ErrDuplicateChip
		}
		return Animal{}, fmt.Errorf("animals: insert failed: %w", err)
	}

	animal.CreatedAt = createdAt
	return animal, nil
}

// List returns all animals in registration order.
func (r *PostgresRepository) List(ctx context.Context) ([]Animal, error) {
	query := `
		SELECT chip, name, species, birth_date, sex, owner_dni, created_at
		FROM animals
		ORDER BY created_at, chip
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("animals: select failed: %w", err)
	}
	defer rows.Close()

	var out []Animal
	for rows.Next() {
		var animal Animal
		if err := rows.Scan(&animal.Chip, &animal.Name, &animal.Species, &animal.BirthDate, &animal.Sex, &animal.OwnerDNI, &animal.CreatedAt); err != nil {
			return nil, fmt.Errorf("animals: scan failed: %w", err)
		}
		out = append(out, animal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("animals: select failed: %w", err)
	}
	return out, nil
}

// GetByChip fetches one animal.
func (r *PostgresRepository) GetByChip(ctx context.Context, chip string) (Animal, error) {
	query := `
		SELECT chip, name, species, birth_date, sex, owner_dni, created_at
		FROM animals
		WHERE chip = $1
	`
	var animal Animal
	if err := r.db.QueryRow(ctx, query, chip).Scan(
		&animal.Chip,
		&animal.Name,
		&animal.Species,
		&animal.BirthDate,
		&animal.Sex,
		&animal.OwnerDNI,
		&animal.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Animal{}, ErrAnimalNotFound
		}
		return Animal{}, fmt.Errorf("animals: select failed: %w", err)
	}
	return animal, nil
}

// DeleteByChip removes one animal.
func (r *PostgresRepository) DeleteByChip(ctx context.Context, chip string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM animals WHERE chip = $1`, chip)
	if err != nil {
		return fmt.Errorf("animals: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAnimalNotFound
	}
	return nil
}

// AnimalExists reports whether an animal with the given name is on file.
func (r *PostgresRepository) AnimalExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM animals WHERE LOWER(name) = LOWER($1))`
	if err := r.db.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("animals: exists failed: %w", err)
	}
	return exists, nil
}
