package owners

import (
	"strings"
	"time"
)

// Owner represents a pet owner on file. The DNI is the natural key used for
// lookups and deletion.
type Owner struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email"`
	DNI       string    `json:"dni"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the required fields before the record is stored. Phone is
// the only optional field.
func (o *Owner) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(o.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(o.DNI) == "" {
		return ErrMissingDNI
	}
	if strings.TrimSpace(o.Address) == "" {
		return ErrMissingAddress
	}
	return nil
}
