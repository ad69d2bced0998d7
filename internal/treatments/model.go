package treatments

import (
	"strings"
	"time"
)

// Treatment is a catalog entry for a service the clinic offers, priced
// before tax.
type Treatment struct {
	Name      string    `json:"name"`
	PriceNet  float64   `json:"price_net"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the catalog entry before it is stored.
func (t *Treatment) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrMissingName
	}
	if t.PriceNet < 0 {
		return ErrNegativePrice
	}
	return nil
}
