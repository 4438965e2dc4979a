// Package application holds the drug-catalog use-cases. Authorization is
// not decided here; the HTTP adapter's gate has already run by the time
// these methods execute.
package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartrx/smartrx/internal/drugsapi/domain"
	"github.com/smartrx/smartrx/internal/drugsapi/ports"
)

type Service struct {
	drugs ports.DrugRepository
}

func NewService(drugs ports.DrugRepository) *Service {
	return &Service{drugs: drugs}
}

func (s *Service) List(ctx context.Context) ([]domain.Drug, error) {
	return s.drugs.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Drug, error) {
	return s.drugs.GetByID(ctx, id)
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Drug, error) {
	return s.drugs.Search(ctx, query)
}

func (s *Service) Create(ctx context.Context, drug domain.Drug) (domain.Drug, error) {
	if err := validate(drug); err != nil {
		return domain.Drug{}, err
	}
	return s.drugs.Create(ctx, drug)
}

func (s *Service) Update(ctx context.Context, drug domain.Drug) error {
	if err := validate(drug); err != nil {
		return err
	}
	return s.drugs.Update(ctx, drug)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.drugs.Delete(ctx, id)
}

func validate(drug domain.Drug) error {
	if strings.TrimSpace(drug.BrandName) == "" {
		return fmt.Errorf("%w: brand name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(drug.Manufacturer) == "" {
		return fmt.Errorf("%w: manufacturer is required", domain.ErrInvalidInput)
	}
	return nil
}
