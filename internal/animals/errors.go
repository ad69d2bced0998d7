package animals

import "errors"

var (
	ErrMissingName     = errors.New("animal name is required")
	ErrMissingChip     = errors.New("chip number is required")
	ErrMissingSpecies  = errors.New("species is required")
	ErrMissingOwnerDNI = errors.New("owner dni is required")
	ErrAnimalNotFound  = errors.New("animal not found")
	ErrDuplicateChip   = errors.New("an animal with this chip number already exists")
)
