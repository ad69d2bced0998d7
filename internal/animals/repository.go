package animals

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Repository defines the interface for animal storage
type Repository interface {
	Create(ctx context.Context, animal Animal) (Animal, error)
	List(ctx context.Context) ([]Animal, error)
	GetByChip(ctx context.Context, chip string) (Animal, error)
	DeleteByChip(ctx context.Context, chip string) error
	AnimalExists(ctx context.Context, name string) (bool, error)
}

// InMemoryRepository is an implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu      sync.RWMutex
	animals map[string]Animal
	order   []string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		animals: make(map[string]Animal),
	}
}

// Create stores a new animal keyed by chip number
func (r *InMemoryRepository) Create(ctx context.Context, animal Animal) (Animal, error) {
	if err := animal.Validate(); err != nil {
		return Animal{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.animals[animal.Chip]; exists {
		return Animal{}, ErrDuplicateChip
	}
	animal.CreatedAt = time.Now().UTC()
	r.animals[animal.Chip] = animal
	r.order = append(r.order, animal.Chip)
	return animal, nil
}

// List returns all animals in registration order
func (r *InMemoryRepository) List(ctx context.Context) ([]Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Animal, 0, len(r.order))
	for _, chip := range r.order {
		out = append(out, r.animals[chip])
	}
	return out, nil
}

// GetByChip retrieves an animal by chip number
func (r *InMemoryRepository) GetByChip(ctx context.Context, chip string) (Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	animal, ok := r.animals[chip]
	if !ok {
		return Animal{}, ErrAnimalNotFound
	}
	return animal, nil
}

// DeleteByChip removes an animal by chip number
func (r *InMemoryRepository) DeleteByChip(ctx context.Context, chip string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.animals[chip]; !ok {
		return ErrAnimalNotFound
	}
	delete(r.animals, chip)
	for i, existing := range r.order {
		if existing == chip {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// AnimalExists reports whether an animal with the given name is on file.
// Names are compared case-insensitively, matching how the calendar form
// submits them.
func (r *InMemoryRepository) AnimalExists(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, animal := range r.animals {
		if strings.EqualFold(animal.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
