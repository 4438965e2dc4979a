// Package postgres is the durable credential store. Username uniqueness is
// enforced by the unique index at insert time, not by a read-then-write
// check, so concurrent duplicate registrations cannot both succeed.
package postgres

import (
	"context"
	"embed"
	"errors"

	"gorm.io/gorm"

	"github.com/smartrx/smartrx/internal/authapi/domain"
	platformpg "github.com/smartrx/smartrx/internal/platform/postgres"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies the auth schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return platformpg.RunMigrations(ctx, db, migrationFS, "migrations")
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	rec := toAccountModel(account)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Account{}, domain.ErrConflict
		}
		return domain.Account{}, err
	}
	return toDomainAccount(rec), nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	var rec accountModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, err
	}
	return toDomainAccount(rec), nil
}
