package inference

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/search/adapter"
	"github.com/vendaflow/app-inventario-search/internal/search/jsonpath"
)

// totalPathCandidates são os caminhos comuns de contagem total,
// em ordem de prioridade
var totalPathCandidates = []string{
	"data.total",
	"total",
	"data.totalCount",
	"totalCount",
	"meta.total",
	"count",
}

// SchemaResult é o resultado da inferência de schema de uma integração
type SchemaResult struct {
	Samples             []any             `json:"samples"`
	Skeleton            any               `json:"skeleton"`
	ItemsPathGuess      string            `json:"itemsPathGuess,omitempty"`
	TotalPathCandidates []string          `json:"totalPathCandidates"`
	SampleItem          any               `json:"sampleItem,omitempty"`
	PaginationSuggest   models.Pagination `json:"paginationSuggest"`
}

// SchemaInferencer amostra o endpoint configurado e deriva o formato
// da resposta
type SchemaInferencer struct {
	provider *adapter.ProviderClient
}

// NewSchemaInferencer cria um novo inferidor de schema
func NewSchemaInferencer(provider *adapter.ProviderClient) *SchemaInferencer {
	return &SchemaInferencer{provider: provider}
}

// InferSchema amostra 1-2 páginas do endpoint e deriva esqueleto,
// caminho da lista, candidatos a total e sugestão de paginação.
// Falha da primeira requisição propaga; a segunda página é best-effort.
func (s *SchemaInferencer) InferSchema(ctx context.Context, d *models.IntegrationDescriptor) (*SchemaResult, error) {
	if d.Endpoint.URL == "" {
		return nil, &models.ConfigurationError{Field: "endpoint.url", Motivo: "obrigatório para inferência"}
	}

	first, err := s.sample(ctx, d, 1)
	if err != nil {
		return nil, &models.ProviderRequestError{IntegrationID: d.ID, Err: err}
	}

	result := &SchemaResult{Samples: []any{first}}

	// Segunda página apenas quando a paginação configurada é page;
	// falha aqui não é fatal
	if d.Pagination.Type == models.PaginationPage {
		if second, err := s.sample(ctx, d, 2); err != nil {
			log.Printf("Aviso: falha ao amostrar página 2 da integração %s: %v", d.ID, err)
		} else {
			result.Samples = append(result.Samples, second)
		}
	}

	result.Skeleton = buildSkeleton(first)
	result.ItemsPathGuess = guessItemsPath(first)
	result.TotalPathCandidates = probeTotalPaths(first)
	result.PaginationSuggest = suggestPagination(first)

	if result.ItemsPathGuess != "" {
		items := jsonpath.GetListByPath(first, result.ItemsPathGuess)
		if len(items) > 0 {
			result.SampleItem = items[0]
		}
	}

	return result, nil
}

// sample executa uma requisição de amostragem contra o endpoint
func (s *SchemaInferencer) sample(ctx context.Context, d *models.IntegrationDescriptor, page int) (any, error) {
	req := &adapter.ProviderRequest{
		Method:  d.Endpoint.EffectiveMethod(),
		URL:     d.Endpoint.URL,
		Headers: make(map[string]string),
		Query:   url.Values{},
	}
	for k, v := range d.Endpoint.Headers {
		req.Headers[k] = v
	}
	if d.Endpoint.TimeoutSeconds > 0 {
		req.Timeout = time.Duration(d.Endpoint.TimeoutSeconds) * time.Second
	}

	if req.Method == "GET" {
		for k, v := range d.Endpoint.DefaultQuery {
			req.Query.Set(k, fmt.Sprint(v))
		}
		if page > 1 {
			req.Query.Set(d.Pagination.EffectivePageParam(), fmt.Sprint(page))
		}
	} else {
		body := make(map[string]any)
		for k, v := range d.Endpoint.DefaultBody {
			body[k] = v
		}
		if page > 1 {
			body[d.Pagination.EffectivePageParam()] = page
		}
		req.Body = body
	}

	adapter.ApplyAuth(req, d.Auth)

	resp, err := s.provider.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.JSON == nil {
		return nil, fmt.Errorf("resposta do provedor não é JSON (status %d)", resp.Status)
	}
	return resp.JSON, nil
}

// buildSkeleton produz o esqueleto de tipos recursivo usado para
// exibição/debug na UI de administração
func buildSkeleton(v any) any {
	switch t := v.(type) {
	case map[string]any:
		props := make(map[string]any, len(t))
		for k, child := range t {
			props[k] = buildSkeleton(child)
		}
		return map[string]any{"type": "object", "properties": props}
	case []any:
		var items any
		if len(t) > 0 {
			items = buildSkeleton(t[0])
		}
		return map[string]any{"type": "array", "items": items}
	case string:
		return map[string]any{"type": "string"}
	case float64:
		return map[string]any{"type": "number"}
	case bool:
		return map[string]any{"type": "boolean"}
	case nil:
		return map[string]any{"type": "null"}
	default:
		return map[string]any{"type": fmt.Sprintf("%T", v)}
	}
}

// guessItemsPath localiza o caminho mais provável da lista de itens.
// Prefere procurar sob "data"; aceita arrays em qualquer lugar.
func guessItemsPath(sample any) string {
	root, ok := sample.(map[string]any)
	if !ok {
		if _, isArr := sample.([]any); isArr {
			// resposta raiz já é a lista
			return ""
		}
		return ""
	}

	if data, ok := root["data"]; ok {
		if _, isArr := data.([]any); isArr {
			return "data"
		}
		if path, _, ok := jsonpath.FindFirstArray(data); ok {
			return "data." + path
		}
	}

	if path, _, ok := jsonpath.FindFirstArray(root); ok {
		return path
	}
	return ""
}

// probeTotalPaths mantém os candidatos cujo valor resolvido é numérico
func probeTotalPaths(sample any) []string {
	found := make([]string, 0, len(totalPathCandidates))
	for _, path := range totalPathCandidates {
		if _, ok := jsonpath.GetByPath(sample, path).(float64); ok {
			found = append(found, path)
		}
	}
	return found
}

// suggestPagination deriva a estratégia de paginação a partir da
// coexistência de chaves conhecidas na raiz da resposta
func suggestPagination(sample any) models.Pagination {
	root, ok := sample.(map[string]any)
	if !ok {
		return models.Pagination{Type: models.PaginationNone}
	}

	has := func(keys ...string) bool {
		for _, k := range keys {
			if _, ok := root[k]; ok {
				return true
			}
		}
		return false
	}

	switch {
	case has("page") && has("pageSize", "pagesize", "page_size", "per_page"):
		return models.Pagination{Type: models.PaginationPage}
	case has("offset") && has("limit", "pageSize"):
		return models.Pagination{Type: models.PaginationOffset}
	case has("cursor", "nextCursor", "next_cursor"):
		return models.Pagination{Type: models.PaginationCursor}
	}
	return models.Pagination{Type: models.PaginationNone}
}
