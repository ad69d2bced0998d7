package animals

import (
	"strings"
	"time"
)

// Animal is a patient registered at the clinic. The microchip number is the
// natural key used for lookups and deletion.
type Animal struct {
	Name      string    `json:"name"`
	Chip      string    `json:"chip"`
	Species   string    `json:"species"`
	BirthDate string    `json:"birth_date,omitempty"`
	Sex       string    `json:"sex,omitempty"`
	OwnerDNI  string    `json:"owner_dni"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the required fields before the record is stored. BirthDate
// and Sex are optional.
func (a *Animal) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(a.Chip) == "" {
		return ErrMissingChip
	}
	if strings.TrimSpace(a.Species) == "" {
		return ErrMissingSpecies
	}
	if strings.TrimSpace(a.OwnerDNI) == "" {
		return ErrMissingOwnerDNI
	}
	return nil
}
