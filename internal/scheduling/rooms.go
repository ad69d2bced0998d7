package scheduling

import "time"

// RoomAssignmentPolicy selects a room for a requested interval given the
// currently booked appointments.
type RoomAssignmentPolicy interface {
	AssignRoom(start, end time.Time, existing []Appointment) (string, error)
	Contains(roomID string) bool
}

// FirstFitPolicy scans the configured rooms in order and returns the first
// one with no conflicting booking. The configured order is the deterministic
// tie-break; the policy never balances load across rooms.
type FirstFitPolicy struct {
	rooms []Room
}

// NewFirstFitPolicy builds a policy over the configured room set.
func NewFirstFitPolicy(rooms []Room) *FirstFitPolicy {
	return &FirstFitPolicy{rooms: rooms}
}

// AssignRoom returns the first free room id, or ErrNoRoomAvailable when every
// room (or an empty room set) conflicts with [start, end).
func (p *FirstFitPolicy) AssignRoom(start, end time.Time, existing []Appointment) (string, error) {
	for _, room := range p.rooms {
		if roomFree(room.ID, start, end, existing) {
			return room.ID, nil
		}
	}
	return "", ErrNoRoomAvailable
}

// Contains reports whether roomID belongs to the configured room set.
func (p *FirstFitPolicy) Contains(roomID string) bool {
	for _, room := range p.rooms {
		if room.ID == roomID {
			return true
		}
	}
	return false
}

// Rooms returns the configured room set in assignment order.
func (p *FirstFitPolicy) Rooms() []Room {
	out := make([]Room, len(p.rooms))
	copy(out, p.rooms)
	return out
}

func roomFree(roomID string, start, end time.Time, existing []Appointment) bool {
	for _, appt := range existing {
		if appt.Room != roomID {
			continue
		}
		if Overlaps(start, end, appt.Start, appt.End) {
			return false
		}
	}
	return true
}
