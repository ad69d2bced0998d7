package invoices

import "errors"

var (
	ErrMissingOwnerDNI   = errors.New("owner dni is required")
	ErrMissingAnimalChip = errors.New("animal chip is required")
	ErrMissingTreatment  = errors.New("treatment is required")
	ErrMissingDate       = errors.New("invoice date is required")
	ErrInvalidDate       = errors.New("invoice date must be YYYY-MM-DD")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrInvoiceNotFound   = errors.New("invoice not found")
)
