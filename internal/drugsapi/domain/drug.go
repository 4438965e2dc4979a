package domain

import "time"

// Drug is one catalog entry. Ingredients are modeled as a list and stored
// by the persistence adapter as a JSON-encoded column.
type Drug struct {
	ID                int64     `json:"id"`
	BrandName         string    `json:"brandName"`
	Manufacturer      string    `json:"manufacturer"`
	Ingredients       []string  `json:"ingredients"`
	DosageInstruction string    `json:"dosageInstruction"`
	ManufacturedDate  time.Time `json:"manufacturedDate"`
	ExpiryDate        time.Time `json:"expiryDate"`
	Price             float64   `json:"price"`
}
