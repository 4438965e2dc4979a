// Package memory is an in-process drug store for local runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/smartrx/smartrx/internal/drugsapi/domain"
)

type DrugStore struct {
	mu     sync.Mutex
	nextID int64
	drugs  map[int64]domain.Drug
}

func NewDrugStore() *DrugStore {
	return &DrugStore{nextID: 1, drugs: make(map[int64]domain.Drug)}
}

func (s *DrugStore) List(context.Context) ([]domain.Drug, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(func(domain.Drug) bool { return true }), nil
}

func (s *DrugStore) GetByID(_ context.Context, id int64) (domain.Drug, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drug, ok := s.drugs[id]
	if !ok {
		return domain.Drug{}, domain.ErrNotFound
	}
	return drug, nil
}

func (s *DrugStore) Search(_ context.Context, query string) ([]domain.Drug, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	s.mu.Lock()
	defer s.mu.Unlock()
	if query == "" {
		return s.snapshot(func(domain.Drug) bool { return true }), nil
	}
	return s.snapshot(func(d domain.Drug) bool {
		return strings.Contains(strings.ToLower(d.BrandName), query) ||
			strings.Contains(strings.ToLower(d.Manufacturer), query)
	}), nil
}

func (s *DrugStore) Create(_ context.Context, drug domain.Drug) (domain.Drug, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drug.ID = s.nextID
	s.nextID++
	s.drugs[drug.ID] = drug
	return drug, nil
}

func (s *DrugStore) Update(_ context.Context, drug domain.Drug) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drugs[drug.ID]; !ok {
		return domain.ErrNotFound
	}
	s.drugs[drug.ID] = drug
	return nil
}

func (s *DrugStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drugs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.drugs, id)
	return nil
}

func (s *DrugStore) snapshot(keep func(domain.Drug) bool) []domain.Drug {
	out := make([]domain.Drug, 0, len(s.drugs))
	for _, d := range s.drugs {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
