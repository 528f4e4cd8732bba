package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vendaflow/app-inventario-search/internal/models"
)

// MemoryStore guarda os descriptors em memória. Usado quando
// DATABASE_URL não está configurada e nos testes.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*models.IntegrationDescriptor // chave: companyID + "/" + id
}

// NewMemoryStore cria um novo store em memória
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*models.IntegrationDescriptor),
	}
}

func memKey(companyID, id string) string {
	return companyID + "/" + id
}

func (s *MemoryStore) Create(ctx context.Context, d *models.IntegrationDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	clone := *d
	s.items[memKey(d.CompanyID, d.ID)] = &clone
	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, companyID, id string) (*models.IntegrationDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.items[memKey(companyID, id)]
	if !ok {
		return nil, models.ErrIntegrationNotFound
	}
	clone := *d
	return &clone, nil
}

func (s *MemoryStore) ListByCompany(ctx context.Context, companyID string, onlyActive bool) ([]*models.IntegrationDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.IntegrationDescriptor
	for _, d := range s.items {
		if d.CompanyID != companyID {
			continue
		}
		if onlyActive && !d.Ativo {
			continue
		}
		clone := *d
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Update(ctx context.Context, d *models.IntegrationDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memKey(d.CompanyID, d.ID)
	existing, ok := s.items[key]
	if !ok {
		return models.ErrIntegrationNotFound
	}

	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = time.Now().UTC()
	clone := *d
	s.items[key] = &clone
	return nil
}
