// Package postgres stores the drug catalog.
package postgres

import (
	"context"
	"embed"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/smartrx/smartrx/internal/drugsapi/domain"
	platformpg "github.com/smartrx/smartrx/internal/platform/postgres"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies the catalog schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return platformpg.RunMigrations(ctx, db, migrationFS, "migrations")
}

type DrugRepository struct {
	db *gorm.DB
}

func NewDrugRepository(db *gorm.DB) *DrugRepository {
	return &DrugRepository{db: db}
}

func (r *DrugRepository) List(ctx context.Context) ([]domain.Drug, error) {
	var recs []drugModel
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	return toDomainDrugs(recs), nil
}

func (r *DrugRepository) GetByID(ctx context.Context, id int64) (domain.Drug, error) {
	var rec drugModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Drug{}, domain.ErrNotFound
		}
		return domain.Drug{}, err
	}
	return toDomainDrug(rec), nil
}

func (r *DrugRepository) Search(ctx context.Context, query string) ([]domain.Drug, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.List(ctx)
	}
	like := "%" + strings.ToLower(query) + "%"
	var recs []drugModel
	err := r.db.WithContext(ctx).
		Where("lower(brand_name) LIKE ? OR lower(manufacturer) LIKE ?", like, like).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toDomainDrugs(recs), nil
}

func (r *DrugRepository) Create(ctx context.Context, drug domain.Drug) (domain.Drug, error) {
	rec := toDrugModel(drug)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Drug{}, err
	}
	return toDomainDrug(rec), nil
}

func (r *DrugRepository) Update(ctx context.Context, drug domain.Drug) error {
	rec := toDrugModel(drug)
	res := r.db.WithContext(ctx).Model(&drugModel{}).Where("id = ?", drug.ID).Updates(map[string]any{
		"brand_name":         rec.BrandName,
		"manufacturer":       rec.Manufacturer,
		"ingredients":        rec.Ingredients,
		"dosage_instruction": rec.DosageInstruction,
		"manufactured_date":  rec.ManufacturedDate,
		"expiry_date":        rec.ExpiryDate,
		"price":              rec.Price,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DrugRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&drugModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDomainDrugs(recs []drugModel) []domain.Drug {
	drugs := make([]domain.Drug, 0, len(recs))
	for _, rec := range recs {
		drugs = append(drugs, toDomainDrug(rec))
	}
	return drugs
}
