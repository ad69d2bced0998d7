package scheduling

import (
	"context"
	"sync"
)

// Archive is the persistence collaborator behind the store. Every mutation is
// written through synchronously; Load replays the archived records at startup.
type Archive interface {
	Load(ctx context.Context) ([]Appointment, error)
	Insert(ctx context.Context, appt Appointment) error
	Update(ctx context.Context, appt Appointment) error
	Delete(ctx context.Context, id int64) error
}

// AppointmentStore is the authoritative collection of appointment records.
type AppointmentStore interface {
	Insert(ctx context.Context, appt Appointment) (Appointment, error)
	Update(ctx context.Context, appt Appointment) (Appointment, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (Appointment, error)
	List(ctx context.Context) ([]Appointment, error)
}

// MemoryStore keeps the live appointment set in memory and writes every
// mutation through to an optional archive. Ids are assigned monotonically and
// never reused, even after deletion.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int64]Appointment
	order   []int64
	nextID  int64
	archive Archive
}

// NewMemoryStore creates an empty store. archive may be nil for a purely
// in-memory store (tests, no persistence configured).
func NewMemoryStore(archive Archive) *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]Appointment),
		archive: archive,
	}
}

// Restore replays the archive into memory and advances the id counter past
// the highest archived id. Call once at startup, before serving requests.
func (s *MemoryStore) Restore(ctx context.Context) error {
	if s.archive == nil {
		return nil
	}
	archived, err := s.archive.Load(ctx)
	if err != nil {
		return &StorageError{Op: "load", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, appt := range archived {
		if _, dup := s.records[appt.ID]; dup {
			continue
		}
		s.records[appt.ID] = appt
		s.order = append(s.order, appt.ID)
		if appt.ID > s.nextID {
			s.nextID = appt.ID
		}
	}
	return nil
}

// Insert assigns a fresh id, writes through to the archive and stores the
// record. A failed write-through leaves no trace in memory.
func (s *MemoryStore) Insert(ctx context.Context, appt Appointment) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt.ID = s.nextID + 1
	if s.archive != nil {
		if err := s.archive.Insert(ctx, appt); err != nil {
			return Appointment{}, &StorageError{Op: "insert", Err: err}
		}
	}
	s.nextID = appt.ID
	s.records[appt.ID] = appt
	s.order = append(s.order, appt.ID)
	return appt, nil
}

// Update replaces the stored record for appt.ID.
func (s *MemoryStore) Update(ctx context.Context, appt Appointment) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[appt.ID]; !ok {
		return Appointment{}, ErrAppointmentNotFound
	}
	if s.archive != nil {
		if err := s.archive.Update(ctx, appt); err != nil {
			return Appointment{}, &StorageError{Op: "update", Err: err}
		}
	}
	s.records[appt.ID] = appt
	return appt, nil
}

// Delete removes the record. Deleting an absent id fails with
// ErrAppointmentNotFound, repeatedly and without side effects.
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrAppointmentNotFound
	}
	if s.archive != nil {
		if err := s.archive.Delete(ctx, id); err != nil {
			return &StorageError{Op: "delete", Err: err}
		}
	}
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the record for id.
func (s *MemoryStore) Get(ctx context.Context, id int64) (Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	appt, ok := s.records[id]
	if !ok {
		return Appointment{}, ErrAppointmentNotFound
	}
	return appt, nil
}

// List returns all live appointments in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Appointment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out, nil
}
