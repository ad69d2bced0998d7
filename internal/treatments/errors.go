package treatments

import "errors"

var (
	ErrMissingName       = errors.New("treatment name is required")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrTreatmentNotFound = errors.New("treatment not found")
	ErrDuplicateName     = errors.New("a treatment with this name already exists")
)
