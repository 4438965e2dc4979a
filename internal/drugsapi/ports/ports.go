// Package ports defines the storage interface consumed by the drugs
// application layer.
package ports

import (
	"context"

	"github.com/smartrx/smartrx/internal/drugsapi/domain"
)

// DrugRepository persists catalog entries. Search matches the query as a
// case-insensitive substring of brand name or manufacturer; a blank query
// returns the full catalog.
type DrugRepository interface {
	List(ctx context.Context) ([]domain.Drug, error)
	GetByID(ctx context.Context, id int64) (domain.Drug, error)
	Search(ctx context.Context, query string) ([]domain.Drug, error)
	Create(ctx context.Context, drug domain.Drug) (domain.Drug, error)
	Update(ctx context.Context, drug domain.Drug) error
	Delete(ctx context.Context, id int64) error
}
