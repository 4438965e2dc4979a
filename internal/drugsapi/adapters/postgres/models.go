package postgres

import (
	"encoding/json"
	"time"

	"github.com/smartrx/smartrx/internal/drugsapi/domain"
)

type drugModel struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	BrandName         string    `gorm:"column:brand_name"`
	Manufacturer      string    `gorm:"column:manufacturer"`
	Ingredients       string    `gorm:"column:ingredients"`
	DosageInstruction string    `gorm:"column:dosage_instruction"`
	ManufacturedDate  time.Time `gorm:"column:manufactured_date"`
	ExpiryDate        time.Time `gorm:"column:expiry_date"`
	Price             float64   `gorm:"column:price"`
}

func (drugModel) TableName() string { return "drugs" }

func toDrugModel(d domain.Drug) drugModel {
	ingredients, _ := json.Marshal(d.Ingredients)
	return drugModel{
		ID:                d.ID,
		BrandName:         d.BrandName,
		Manufacturer:      d.Manufacturer,
		Ingredients:       string(ingredients),
		DosageInstruction: d.DosageInstruction,
		ManufacturedDate:  d.ManufacturedDate,
		ExpiryDate:        d.ExpiryDate,
		Price:             d.Price,
	}
}

func toDomainDrug(m drugModel) domain.Drug {
	var ingredients []string
	if m.Ingredients != "" {
		_ = json.Unmarshal([]byte(m.Ingredients), &ingredients)
	}
	return domain.Drug{
		ID:                m.ID,
		BrandName:         m.BrandName,
		Manufacturer:      m.Manufacturer,
		Ingredients:       ingredients,
		DosageInstruction: m.DosageInstruction,
		ManufacturedDate:  m.ManufacturedDate,
		ExpiryDate:        m.ExpiryDate,
		Price:             m.Price,
	}
}
