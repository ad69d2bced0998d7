package invoices

import (
	"context"
	"sync"
	"time"
)

// Repository defines the interface for invoice storage
type Repository interface {
	Create(ctx context.Context, invoice Invoice) (Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	GetByID(ctx context.Context, id int64) (Invoice, error)
	DeleteByID(ctx context.Context, id int64) error
	RevenueTotal(ctx context.Context) (float64, error)
}

// InMemoryRepository is an implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu       sync.RWMutex
	invoices map[int64]Invoice
	order    []int64
	nextID   int64
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		invoices: make(map[int64]Invoice),
	}
}

// Create issues a new invoice. Invoice numbers increase monotonically and are
// never reused. A missing gross price is derived from the net price by
// applying VAT.
func (r *InMemoryRepository) Create(ctx context.Context, invoice Invoice) (Invoice, error) {
	if err := invoice.Validate(); err != nil {
		return Invoice{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if invoice.PriceGross == 0 {
		invoice.PriceGross = GrossFromNet(invoice.PriceNet)
	}
	r.nextID++
	invoice.ID = r.nextID
	invoice.CreatedAt = time.Now().UTC()
	r.invoices[invoice.ID] = invoice
	r.order = append(r.order, invoice.ID)
	return invoice, nil
}

// List returns all invoices in issue order
func (r *InMemoryRepository) List(ctx context.Context) ([]Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Invoice, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.invoices[id])
	}
	return out, nil
}

// GetByID retrieves an invoice by number
func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoice, ok := r.invoices[id]
	if !ok {
		return Invoice{}, ErrInvoiceNotFound
	}
	return invoice, nil
}

// DeleteByID voids an invoice by number
func (r *InMemoryRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.invoices[id]; !ok {
		return ErrInvoiceNotFound
	}
	delete(r.invoices, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// RevenueTotal sums the gross amount across all invoices on file.
func (r *InMemoryRepository) RevenueTotal(ctx context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	for _, invoice := range r.invoices {
		total += invoice.PriceGross
	}
	return total, nil
}
