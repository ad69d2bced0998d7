package treatments

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Repository defines the interface for the treatment catalog
type Repository interface {
	Create(ctx context.Context, treatment Treatment) (Treatment, error)
	List(ctx context.Context) ([]Treatment, error)
	GetByName(ctx context.Context, name string) (Treatment, error)
	DeleteByName(ctx context.Context, name string) error
}

// InMemoryRepository is an implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu         sync.RWMutex
	treatments map[string]Treatment
	order      []string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		treatments: make(map[string]Treatment),
	}
}

// NewDefaultCatalog returns an in-memory repository seeded with the standard
// services offered at the front desk.
func NewDefaultCatalog() *InMemoryRepository {
	repo := NewInMemoryRepository()
	defaults := []Treatment{
		{Name: "Consulta general", PriceNet: 30},
		{Name: "Vacunación", PriceNet: 25},
		{Name: "Cirugía", PriceNet: 250},
		{Name: "Control", PriceNet: 20},
		{Name: "Urgencia", PriceNet: 60},
	}
	for _, t := range defaults {
		repo.Create(context.Background(), t)
	}
	return repo
}

// Create stores a new catalog entry keyed by name
func (r *InMemoryRepository) Create(ctx context.Context, treatment Treatment) (Treatment, error) {
	if err := treatment.Validate(); err != nil {
		return Treatment{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(treatment.Name)
	if _, exists := r.treatments[key]; exists {
		return Treatment{}, ErrDuplicateName
	}
	treatment.CreatedAt = time.Now().UTC()
	r.treatments[key] = treatment
	r.order = append(r.order, key)
	return treatment, nil
}

// List returns the catalog in insertion order
func (r *InMemoryRepository) List(ctx context.Context) ([]Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Treatment, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.treatments[key])
	}
	return out, nil
}

// GetByName retrieves one catalog entry, matched case-insensitively
func (r *InMemoryRepository) GetByName(ctx context.Context, name string) (Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	treatment, ok := r.treatments[strings.ToLower(name)]
	if !ok {
		return Treatment{}, ErrTreatmentNotFound
	}
	return treatment, nil
}

// DeleteByName removes one catalog entry
func (r *InMemoryRepository) DeleteByName(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := r.treatments[key]; !ok {
		return ErrTreatmentNotFound
	}
	delete(r.treatments, key)
	for i, existing := range r.order {
		if existing == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
