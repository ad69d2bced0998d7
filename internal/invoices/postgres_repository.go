package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type invoicesDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores invoices in the relational database.
type PostgresRepository struct {
	db invoicesDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("invoices: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db invoicesDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create issues a new invoice. The invoice number comes from the table
// sequence so numbers are never reused.
func (r *PostgresRepository) Create(ctx context.Context, invoice Invoice) (Invoice, error) {
	if err := invoice.Validate(); err != nil {
		return Invoice{}, err
	}
	if invoice.PriceGross == 0 {
		invoice.PriceGross = GrossFromNet(invoice.PriceNet)
	}

	query := `
		INSERT INTO invoices (owner_dni, animal_chip, treatment, invoice_date, price_net, price_gross)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	var (
		id        int64
		createdAt time.Time
	)
	if err := r.db.QueryRow(ctx, query,
		invoice.OwnerDNI,
		invoice.AnimalChip,
		invoice.Treatment,
		invoice.Date,
		invoice.PriceNet,
		invoice.PriceGross,
	).Scan(&id, &createdAt); err != nil {
		return Invoice{}, fmt.Errorf("invoices: insert failed: %w", err)
	}

	invoice.ID = id
	invoice.CreatedAt = createdAt
	return invoice, nil
}

// List returns all invoices in issue order.
func (r *PostgresRepository) List(ctx context.Context) ([]Invoice, error) {
	query := `
		SELECT id, owner_dni, animal_chip, treatment, invoice_date, price_net, price_gross, created_at
		FROM invoices
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("invoices: select failed: %w", err)
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		var invoice Invoice
		if err := rows.Scan(
			&invoice.ID,
			&invoice.OwnerDNI,
			&invoice.AnimalChip,
			&invoice.Treatment,
			&invoice.Date,
			&invoice.PriceNet,
			&invoice.PriceGross,
			&invoice.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("invoices: scan failed: %w", err)
		}
		out = append(out, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("invoices: select failed: %w", err)
	}
	return out, nil
}

// GetByID fetches one invoice.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (Invoice, error) {
	query := `
		SELECT id, owner_dni, animal_chip, treatment, invoice_date, price_net, price_gross, created_at
		FROM invoices
		WHERE id = $1
	`
	var invoice Invoice
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.OwnerDNI,
		&invoice.AnimalChip,
		&invoice.Treatment,
		&invoice.Date,
		&invoice.PriceNet,
		&invoice.PriceGross,
		&invoice.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, ErrInvoiceNotFound
		}
		return Invoice{}, fmt.Errorf("invoices: select failed: %w", err)
	}
	return invoice, nil
}

// DeleteByID voids one invoice.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("invoices: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// RevenueTotal sums the gross amount across all invoices on file.
func (r *PostgresRepository) RevenueTotal(ctx context.Context) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(price_gross), 0) FROM invoices`
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("invoices: revenue query failed: %w", err)
	}
	return total, nil
}
