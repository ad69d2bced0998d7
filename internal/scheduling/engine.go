package scheduling

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vetnova/vetclinic-platform/internal/observability/metrics"
	"github.com/vetnova/vetclinic-platform/pkg/logging"
)

// OwnerDirectory answers whether a referenced owner exists. Owners are owned
// by an external collaborator; the engine only checks references.
type OwnerDirectory interface {
	OwnerExists(ctx context.Context, name string) (bool, error)
}

// AnimalDirectory answers whether a referenced animal exists.
type AnimalDirectory interface {
	AnimalExists(ctx context.Context, name string) (bool, error)
}

// EngineConfig carries the scheduling rules the engine consumes but does not
// define: the bookable window and the minimum slot length used to derive a
// missing end time.
type EngineConfig struct {
	Hours   BusinessHours
	MinSlot time.Duration
}

// DefaultMinSlot is used when no minimum slot duration is configured.
const DefaultMinSlot = 30 * time.Minute

// Engine orchestrates appointment scheduling: validation, conflict checking,
// room assignment and the commit to the store. All mutating operations are
// serialized under one mutex because they are read-check-then-write sequences;
// concurrent Get/List calls proceed freely against the store.
type Engine struct {
	mu      sync.Mutex
	store   AppointmentStore
	policy  RoomAssignmentPolicy
	owners  OwnerDirectory
	animals AnimalDirectory
	hours   BusinessHours
	minSlot time.Duration
	logger  *logging.Logger
	metrics *metrics.SchedulingMetrics
}

// NewEngine wires the scheduling engine. owners, animals and m may be nil to
// disable reference validation and metrics respectively.
func NewEngine(store AppointmentStore, policy RoomAssignmentPolicy, owners OwnerDirectory, animals AnimalDirectory, cfg EngineConfig, logger *logging.Logger, m *metrics.SchedulingMetrics) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	minSlot := cfg.MinSlot
	if minSlot <= 0 {
		minSlot = DefaultMinSlot
	}
	return &Engine{
		store:   store,
		policy:  policy,
		owners:  owners,
		animals: animals,
		hours:   cfg.Hours,
		minSlot: minSlot,
		logger:  logger,
		metrics: m,
	}
}

// CreateAppointment validates the request, picks a free room and commits the
// new appointment. The returned record carries the assigned id and room.
func (e *Engine) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (Appointment, error) {
	owner := strings.TrimSpace(req.Owner)
	animal := strings.TrimSpace(req.Animal)
	treatment := strings.TrimSpace(req.Treatment)
	if owner == "" {
		return Appointment{}, invalidField("owner", "required")
	}
	if animal == "" {
		return Appointment{}, invalidField("animal", "required")
	}
	if treatment == "" {
		return Appointment{}, invalidField("treatment", "required")
	}
	if req.Start.IsZero() {
		return Appointment{}, invalidField("start", "required")
	}

	start := req.Start
	end := start.Add(e.minSlot)
	if req.End != nil && !req.End.IsZero() {
		end = *req.End
	}
	if !start.Before(end) {
		return Appointment{}, invalidField("end", "must be after start")
	}
	if !e.hours.Covers(start, end) {
		return Appointment{}, invalidField("start", "outside clinic business hours")
	}

	if err := e.checkReferences(ctx, owner, animal); err != nil {
		return Appointment{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	existing, err := e.store.List(ctx)
	if err != nil {
		return Appointment{}, err
	}
	room, err := e.policy.AssignRoom(start, end, existing)
	if err != nil {
		e.metrics.ObserveConflict()
		e.logger.Info("appointment rejected, rooms exhausted",
			"owner", owner,
			"start", start,
			"end", end,
		)
		return Appointment{}, err
	}

	created, err := e.store.Insert(ctx, Appointment{
		Owner:     owner,
		Animal:    animal,
		Treatment: treatment,
		Start:     start,
		End:       end,
		Room:      room,
	})
	if err != nil {
		return Appointment{}, err
	}

	e.metrics.ObserveScheduled(room)
	e.logger.Info("appointment scheduled",
		"id", created.ID,
		"room", created.Room,
		"owner", created.Owner,
		"animal", created.Animal,
		"start", created.Start,
	)
	return created, nil
}

// UpdateAppointment merges the partial update into the stored record and
// re-runs conflict checking as if the appointment were new, excluding the
// appointment itself from the occupancy it is checked against. The current
// room is kept when it still fits; otherwise first-fit assignment runs again.
func (e *Engine) UpdateAppointment(ctx context.Context, id int64, req UpdateAppointmentRequest) (Appointment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.store.Get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	next := current
	if req.Owner != nil {
		next.Owner = strings.TrimSpace(*req.Owner)
		if next.Owner == "" {
			return Appointment{}, invalidField("owner", "required")
		}
	}
	if req.Animal != nil {
		next.Animal = strings.TrimSpace(*req.Animal)
		if next.Animal == "" {
			return Appointment{}, invalidField("animal", "required")
		}
	}
	if req.Treatment != nil {
		next.Treatment = strings.TrimSpace(*req.Treatment)
		if next.Treatment == "" {
			return Appointment{}, invalidField("treatment", "required")
		}
	}
	if req.Start != nil {
		next.Start = *req.Start
	}
	if req.End != nil {
		next.End = *req.End
	}
	if !next.Start.Before(next.End) {
		return Appointment{}, invalidField("end", "must be after start")
	}
	if !e.hours.Covers(next.Start, next.End) {
		return Appointment{}, invalidField("start", "outside clinic business hours")
	}

	if req.Owner != nil || req.Animal != nil {
		if err := e.checkReferences(ctx, next.Owner, next.Animal); err != nil {
			return Appointment{}, err
		}
	}

	all, err := e.store.List(ctx)
	if err != nil {
		return Appointment{}, err
	}
	others := make([]Appointment, 0, len(all))
	for _, appt := range all {
		if appt.ID != id {
			others = append(others, appt)
		}
	}

	if !e.policy.Contains(next.Room) || !roomFree(next.Room, next.Start, next.End, others) {
		room, err := e.policy.AssignRoom(next.Start, next.End, others)
		if err != nil {
			e.metrics.ObserveConflict()
			return Appointment{}, err
		}
		next.Room = room
	}

	updated, err := e.store.Update(ctx, next)
	if err != nil {
		return Appointment{}, err
	}

	e.metrics.ObserveRescheduled(updated.Room)
	e.logger.Info("appointment rescheduled",
		"id", updated.ID,
		"room", updated.Room,
		"start", updated.Start,
	)
	return updated, nil
}

// CancelAppointment removes the appointment, freeing its room and interval.
func (e *Engine) CancelAppointment(ctx context.Context, id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Delete(ctx, id); err != nil {
		return err
	}
	e.metrics.ObserveCancelled()
	e.logger.Info("appointment cancelled", "id", id)
	return nil
}

// GetAppointment returns one appointment by id.
func (e *Engine) GetAppointment(ctx context.Context, id int64) (Appointment, error) {
	return e.store.Get(ctx, id)
}

// ListAppointments returns all live appointments for calendar rendering.
func (e *Engine) ListAppointments(ctx context.Context) ([]Appointment, error) {
	return e.store.List(ctx)
}

// Rooms exposes the configured room set when the policy carries one.
func (e *Engine) Rooms() []Room {
	if p, ok := e.policy.(*FirstFitPolicy); ok {
		return p.Rooms()
	}
	return nil
}

func (e *Engine) checkReferences(ctx context.Context, owner, animal string) error {
	if e.owners != nil {
		exists, err := e.owners.OwnerExists(ctx, owner)
		if err != nil {
			return &StorageError{Op: "owner lookup", Err: err}
		}
		if !exists {
			return invalidField("owner", "unknown owner")
		}
	}
	if e.animals != nil {
		exists, err := e.animals.AnimalExists(ctx, animal)
		if err != nil {
			return &StorageError{Op: "animal lookup", Err: err}
		}
		if !exists {
			return invalidField("animal", "unknown animal")
		}
	}
	return nil
}
