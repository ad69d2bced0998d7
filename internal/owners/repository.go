package owners

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Repository defines the interface for owner storage
type Repository interface {
	Create(ctx context.Context, owner Owner) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
	GetByDNI(ctx context.Context, dni string) (Owner, error)
	DeleteByDNI(ctx context.Context, dni string) error
	OwnerExists(ctx context.Context, name string) (bool, error)
}

// InMemoryRepository is an implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu     sync.RWMutex
	owners map[string]Owner
	order  []string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		owners: make(map[string]Owner),
	}
}

// Create stores a new owner keyed by DNI
func (r *InMemoryRepository) Create(ctx context.Context, owner Owner) (Owner, error) {
	if err := owner.Validate(); err != nil {
		return Owner{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[owner.DNI]; exists {
		return Owner{}, ErrDuplicateDNI
	}
	owner.CreatedAt = time.Now().UTC()
	r.owners[owner.DNI] = owner
	r.order = append(r.order, owner.DNI)
	return owner, nil
}

// List returns all owners in registration order
func (r *InMemoryRepository) List(ctx context.Context) ([]Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Owner, 0, len(r.order))
	for _, dni := range r.order {
		out = append(out, r.owners[dni])
	}
	return out, nil
}

// GetByDNI retrieves an owner by DNI
func (r *InMemoryRepository) GetByDNI(ctx context.Context, dni string) (Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[dni]
	if !ok {
		return Owner{}, ErrOwnerNotFound
	}
	return owner, nil
}

// DeleteByDNI removes an owner by DNI
func (r *InMemoryRepository) DeleteByDNI(ctx context.Context, dni string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owners[dni]; !ok {
		return ErrOwnerNotFound
	}
	delete(r.owners, dni)
	for i, existing := range r.order {
		if existing == dni {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// OwnerExists reports whether an owner with the given name is on file. Names
// are compared case-insensitively, matching how the calendar form submits
// them.
func (r *InMemoryRepository) OwnerExists(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, owner := range r.owners {
		if strings.EqualFold(owner.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
