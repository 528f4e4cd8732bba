// Package store persiste os descriptors de integração. Há duas
// implementações: Postgres (produção) e memória (desenvolvimento e
// testes).
package store

import (
	"context"

	"github.com/vendaflow/app-inventario-search/internal/models"
)

// IntegrationStore é o contrato de persistência dos descriptors
type IntegrationStore interface {
	// Create persiste um descriptor novo
	Create(ctx context.Context, d *models.IntegrationDescriptor) error

	// GetByID busca um descriptor pelo id dentro da empresa.
	// Retorna models.ErrIntegrationNotFound quando não existe.
	GetByID(ctx context.Context, companyID, id string) (*models.IntegrationDescriptor, error)

	// ListByCompany lista os descriptors da empresa. Com onlyActive,
	// apenas os ativos.
	ListByCompany(ctx context.Context, companyID string, onlyActive bool) ([]*models.IntegrationDescriptor, error)

	// Update sobrescreve um descriptor existente. O ciclo de vida é
	// soft: integrações são desativadas via flag ativo, nunca removidas.
	// Retorna models.ErrIntegrationNotFound quando não existe.
	Update(ctx context.Context, d *models.IntegrationDescriptor) error
}
