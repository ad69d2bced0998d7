package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrAppointmentNotFound is returned when an operation references an
	// appointment id that does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrNoRoomAvailable is returned when every configured room conflicts
	// with the requested interval.
	ErrNoRoomAvailable = errors.New("no consultation room available for the requested time")
)

// ValidationError reports a missing or malformed request field. Callers can
// discriminate on the type with errors.As.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError reports that the backing persistence collaborator could not
// complete a read or write. The in-memory state is never left half-committed
// when one of these surfaces.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("appointment storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
