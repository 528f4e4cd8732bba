package models

import (
	"errors"
	"fmt"
)

var (
	ErrIntegrationNotFound = errors.New("integração não encontrada")
	ErrCompanyRequired     = errors.New("companyId é obrigatório")
)

// ConfigurationError indica descriptor inválido (endpoint/url ausente).
// Surge na criação ou na busca; nunca é silenciosamente defaultado.
type ConfigurationError struct {
	Field  string
	Motivo string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuração inválida em %s: %s", e.Field, e.Motivo)
}

// ProviderRequestError indica falha de transporte ou resposta não-2xx
// do provedor externo. Carrega status e corpo quando disponíveis; a
// mensagem nunca inclui credenciais.
type ProviderRequestError struct {
	IntegrationID string
	Status        int
	Body          string
	Err           error
}

func (e *ProviderRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("falha na chamada ao provedor (integração %s): %v", e.IntegrationID, e.Err)
	}
	return fmt.Sprintf("provedor retornou status %d (integração %s)", e.Status, e.IntegrationID)
}

func (e *ProviderRequestError) Unwrap() error {
	return e.Err
}
