package scheduling

import (
	"errors"
	"testing"
	"time"
)

var testRooms = []Room{
	{ID: "A", Label: "Consulta A"},
	{ID: "B", Label: "Consulta B"},
}

func slot(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2025, time.March, 3, hour, min, 0, 0, time.UTC)
}

func TestAssignRoomPrefersFirstConfigured(t *testing.T) {
	policy := NewFirstFitPolicy(testRooms)

	room, err := policy.AssignRoom(slot(t, 10, 0), slot(t, 11, 0), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if room != "A" {
		t.Errorf("room = %q, want A (first configured)", room)
	}
}

func TestAssignRoomSkipsBookedRoom(t *testing.T) {
	policy := NewFirstFitPolicy(testRooms)
	existing := []Appointment{
		{ID: 1, Room: "A", Start: slot(t, 10, 0), End: slot(t, 11, 0)},
	}

	room, err := policy.AssignRoom(slot(t, 10, 30), slot(t, 10, 45), existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if room != "B" {
		t.Errorf("room = %q, want B", room)
	}
}

func TestAssignRoomExhausted(t *testing.T) {
	policy := NewFirstFitPolicy(testRooms)
	existing := []Appointment{
		{ID: 1, Room: "A", Start: slot(t, 10, 0), End: slot(t, 11, 0)},
		{ID: 2, Room: "B", Start: slot(t, 10, 0), End: slot(t, 11, 0)},
	}

	if _, err := policy.AssignRoom(slot(t, 10, 30), slot(t, 10, 45), existing); !errors.Is(err, ErrNoRoomAvailable) {
		t.Fatalf("err = %v, want ErrNoRoomAvailable", err)
	}

	// Half-open intervals: a booking starting exactly at 11:00 is not a
	// conflict with [10:00, 11:00).
	room, err := policy.AssignRoom(slot(t, 11, 0), slot(t, 11, 30), existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if room != "A" {
		t.Errorf("room = %q, want A", room)
	}
}

func TestAssignRoomEmptyRoomSet(t *testing.T) {
	policy := NewFirstFitPolicy(nil)

	if _, err := policy.AssignRoom(slot(t, 10, 0), slot(t, 11, 0), nil); !errors.Is(err, ErrNoRoomAvailable) {
		t.Fatalf("err = %v, want ErrNoRoomAvailable", err)
	}
}

func TestContains(t *testing.T) {
	policy := NewFirstFitPolicy(testRooms)
	if !policy.Contains("A") || !policy.Contains("B") {
		t.Error("expected configured rooms to be contained")
	}
	if policy.Contains("C") {
		t.Error("room C is not configured")
	}
}

func TestRoomsReturnsCopy(t *testing.T) {
	policy := NewFirstFitPolicy(testRooms)
	rooms := policy.Rooms()
	rooms[0].ID = "mutated"
	if policy.Rooms()[0].ID != "A" {
		t.Error("Rooms() must not expose internal state")
	}
}
