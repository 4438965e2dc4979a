package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartrx/smartrx/internal/authapi/domain"
)

type accountModel struct {
	AccountID      uuid.UUID `gorm:"column:account_id;type:uuid;primaryKey"`
	Username       string    `gorm:"column:username"`
	Salt           []byte    `gorm:"column:salt"`
	PasswordDigest []byte    `gorm:"column:password_digest"`
	Role           string    `gorm:"column:role"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (accountModel) TableName() string { return "accounts" }

func toAccountModel(a domain.Account) accountModel {
	return accountModel{
		AccountID:      a.ID,
		Username:       a.Username,
		Salt:           a.Salt,
		PasswordDigest: a.PasswordDigest,
		Role:           a.Role,
		CreatedAt:      a.CreatedAt,
	}
}

func toDomainAccount(m accountModel) domain.Account {
	return domain.Account{
		ID:             m.AccountID,
		Username:       m.Username,
		Salt:           m.Salt,
		PasswordDigest: m.PasswordDigest,
		Role:           m.Role,
		CreatedAt:      m.CreatedAt,
	}
}
