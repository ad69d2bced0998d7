package scheduling

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// archiveDB defines the database interface needed by PostgresArchive.
type archiveDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresArchive writes appointments through to the appointments table.
type PostgresArchive struct {
	db archiveDB
}

// NewPostgresArchive initializes an archive backed by pgxpool.
func NewPostgresArchive(pool *pgxpool.Pool) *PostgresArchive {
	if pool == nil {
		panic("scheduling: pgx pool required")
	}
	return &PostgresArchive{db: pool}
}

// NewPostgresArchiveWithDB allows injecting a mock database for testing.
func NewPostgresArchiveWithDB(db archiveDB) *PostgresArchive {
	return &PostgresArchive{db: db}
}

// Load returns all archived appointments ordered by id.
func (a *PostgresArchive) Load(ctx context.Context) ([]Appointment, error) {
	query := `
		SELECT id, owner_name, animal_name, treatment, start_at, end_at, room
		FROM appointments
		ORDER BY id
	`
	rows, err := a.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scheduling: load appointments: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		var appt Appointment
		if err := rows.Scan(
			&appt.ID,
			&appt.Owner,
			&appt.Animal,
			&appt.Treatment,
			&appt.Start,
			&appt.End,
			&appt.Room,
		); err != nil {
			return nil, fmt.Errorf("scheduling: scan appointment: %w", err)
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scheduling: load appointments: %w", err)
	}
	return out, nil
}

// Insert writes a new row.
func (a *PostgresArchive) Insert(ctx context.Context, appt Appointment) error {
	query := `
		INSERT INTO appointments (id, owner_name, animal_name, treatment, start_at, end_at, room)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := a.db.Exec(ctx, query,
		appt.ID,
		appt.Owner,
		appt.Animal,
		appt.Treatment,
		appt.Start,
		appt.End,
		appt.Room,
	); err != nil {
		return fmt.Errorf("scheduling: insert appointment: %w", err)
	}
	return nil
}

// Update replaces the mutable columns of an existing row.
func (a *PostgresArchive) Update(ctx context.Context, appt Appointment) error {
	query := `
		UPDATE appointments
		SET owner_name = $2, animal_name = $3, treatment = $4, start_at = $5, end_at = $6, room = $7
		WHERE id = $1
	`
	tag, err := a.db.Exec(ctx, query,
		appt.ID,
		appt.Owner,
		appt.Animal,
		appt.Treatment,
		appt.Start,
		appt.End,
		appt.Room,
	)
	if err != nil {
		return fmt.Errorf("scheduling: update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scheduling: update appointment %d: no such row", appt.ID)
	}
	return nil
}

// Delete removes a row.
func (a *PostgresArchive) Delete(ctx context.Context, id int64) error {
	tag, err := a.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("scheduling: delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scheduling: delete appointment %d: no such row", id)
	}
	return nil
}
