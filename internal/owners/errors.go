package owners

import "errors"

var (
	// ErrMissingName is returned when the owner name is empty
	ErrMissingName = errors.New("owner name is required")

	// ErrMissingEmail is returned when the email is empty
	ErrMissingEmail = errors.New("owner email is required")

	// ErrMissingDNI is returned when the DNI is empty
	ErrMissingDNI = errors.New("owner dni is required")

	// ErrMissingAddress is returned when the address is empty
	ErrMissingAddress = errors.New("owner address is required")

	// ErrOwnerNotFound is returned when no owner matches the given DNI
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrDuplicateDNI is returned when an owner with the same DNI already exists
	ErrDuplicateDNI = errors.New("owner with this dni already registered")
)
