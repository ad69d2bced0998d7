package invoices

import (
	"math"
	"strings"
	"time"
)

// VATRate is the standard Spanish VAT applied to veterinary services.
const VATRate = 0.21

// Invoice is a bill issued for a treatment performed on an animal.
type Invoice struct {
	ID         int64     `json:"id"`
	OwnerDNI   string    `json:"owner_dni"`
	AnimalChip string    `json:"animal_chip"`
	Treatment  string    `json:"treatment"`
	Date       string    `json:"date"`
	PriceNet   float64   `json:"price_net"`
	PriceGross float64   `json:"price_gross"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the billing fields before the invoice is issued.
func (i *Invoice) Validate() error {
	if strings.TrimSpace(i.OwnerDNI) == "" {
		return ErrMissingOwnerDNI
	}
	if strings.TrimSpace(i.AnimalChip) == "" {
		return ErrMissingAnimalChip
	}
	if strings.TrimSpace(i.Treatment) == "" {
		return ErrMissingTreatment
	}
	if strings.TrimSpace(i.Date) == "" {
		return ErrMissingDate
	}
	if _, err := time.Parse("2006-01-02", i.Date); err != nil {
		return ErrInvalidDate
	}
	if i.PriceNet < 0 {
		return ErrNegativePrice
	}
	return nil
}

// GrossFromNet applies VAT to a net price, rounded to cents.
func GrossFromNet(net float64) float64 {
	return math.Round(net*(1+VATRate)*100) / 100
}
