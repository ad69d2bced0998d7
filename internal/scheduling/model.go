package scheduling

import "time"

// Room is one physical consultation room. The room set is small, static and
// comes from configuration; rooms have no lifecycle of their own.
type Room struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Appointment is the central scheduling record. The interval is half-open:
// an appointment occupies [Start, End), so adjacent appointments may share an
// endpoint without conflicting.
type Appointment struct {
	ID        int64     `json:"id"`
	Owner     string    `json:"owner"`
	Animal    string    `json:"animal"`
	Treatment string    `json:"treatment"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Room      string    `json:"room"`
}

// CreateAppointmentRequest carries caller-supplied attributes for a new
// appointment. End is optional; a missing end is derived as Start plus the
// configured minimum slot duration. Room is never caller-supplied.
type CreateAppointmentRequest struct {
	Owner     string     `json:"owner"`
	Animal    string     `json:"animal"`
	Treatment string     `json:"treatment"`
	Start     time.Time  `json:"start"`
	End       *time.Time `json:"end,omitempty"`
}

// UpdateAppointmentRequest carries a partial update; nil fields keep their
// current value.
type UpdateAppointmentRequest struct {
	Owner     *string    `json:"owner,omitempty"`
	Animal    *string    `json:"animal,omitempty"`
	Treatment *string    `json:"treatment,omitempty"`
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
}

// BusinessHours is the clinic's bookable window. The zero value disables the
// check entirely.
type BusinessHours struct {
	Opening  time.Duration // offset from midnight
	Closing  time.Duration // offset from midnight
	Weekdays []time.Weekday
}

// Enabled reports whether the window is configured.
func (h BusinessHours) Enabled() bool {
	return h.Closing > h.Opening && len(h.Weekdays) > 0
}

// Covers reports whether [start, end) falls on a bookable weekday inside the
// daily window. Multi-day intervals are never covered.
func (h BusinessHours) Covers(start, end time.Time) bool {
	if !h.Enabled() {
		return true
	}
	bookable := false
	for _, day := range h.Weekdays {
		if start.Weekday() == day {
			bookable = true
			break
		}
	}
	if !bookable {
		return false
	}
	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	if start.Sub(midnight) < h.Opening {
		return false
	}
	if end.Sub(midnight) > h.Closing {
		return false
	}
	return true
}
