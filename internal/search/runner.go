package search

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/search/adapter"
	"github.com/vendaflow/app-inventario-search/internal/search/jsonpath"
	"github.com/vendaflow/app-inventario-search/internal/search/query"
)

const maxErrorBodyLen = 512

// Runner executa buscas contra o provedor de uma integração e
// normaliza a resposta
type Runner struct {
	client      *adapter.ProviderClient
	maxPageSize int
}

// NewRunner cria um novo runner de buscas. maxPageSize não positivo
// usa models.DefaultMaxPageSize.
func NewRunner(client *adapter.ProviderClient, maxPageSize int) *Runner {
	return &Runner{client: client, maxPageSize: maxPageSize}
}

// RunSearch traduz os filtros, chama o provedor e normaliza a
// resposta. A precedência dos parâmetros é crescente: defaults do
// endpoint, params brutos do chamador, filtros traduzidos. A paginação
// entra por último, sobre o saco já mesclado.
func (r *Runner) RunSearch(ctx context.Context, d *models.IntegrationDescriptor, input models.SearchInput) (*models.RunSearchOutput, error) {
	if d.Endpoint.URL == "" {
		return nil, &models.ConfigurationError{Field: "endpoint.url", Motivo: "não pode ser vazio"}
	}
	input.ApplyDefaults(r.maxPageSize)

	// 1. Monta os parâmetros efetivos
	params := make(map[string]any)
	for k, v := range d.Endpoint.DefaultQuery {
		params[k] = v
	}
	for k, v := range input.Params {
		params[k] = v
	}
	for k, v := range query.BuildProviderParams(d, input.Filtros, input.Page, input.PageSize) {
		params[k] = v
	}
	params = query.SerializeObjectParams(params)

	// 2. Monta a requisição conforme o método
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

	if req.Method == "GET" || req.Method == "DELETE" {
		for k, v := range params {
			req.Query.Set(k, paramString(v))
		}
	} else {
		body := make(map[string]any)
		for k, v := range d.Endpoint.DefaultBody {
			body[k] = v
		}
		for k, v := range params {
			body[k] = v
		}
		req.Body = body
	}

	adapter.ApplyAuth(req, d.Auth)

	// 3. Chama o provedor
	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return nil, &models.ProviderRequestError{IntegrationID: d.ID, Err: err}
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return nil, &models.ProviderRequestError{
			IntegrationID: d.ID,
			Status:        resp.Status,
			Body:          truncate(string(resp.Body), maxErrorBodyLen),
		}
	}
	if resp.JSON == nil {
		return nil, &models.ProviderRequestError{
			IntegrationID: d.ID,
			Status:        resp.Status,
			Body:          "resposta do provedor não é JSON",
		}
	}

	// 4. Extrai e normaliza os itens
	rawItems := extractItems(resp.JSON, d)
	items := make([]models.NormalizedItem, 0, len(rawItems))
	for _, raw := range rawItems {
		items = append(items, normalizeItem(raw, d.Rolemap))
	}

	return &models.RunSearchOutput{
		Items:    items,
		Total:    extractTotal(resp.JSON, d),
		Page:     input.Page,
		PageSize: input.PageSize,
		Raw:      resp.JSON,
	}, nil
}

// extractItems localiza a lista de itens na resposta: o listPath do
// rolemap tem prioridade, depois o itemsPath do schema, depois a
// descoberta heurística
func extractItems(doc any, d *models.IntegrationDescriptor) []any {
	if lp := strings.TrimSpace(d.Rolemap.ListPath); lp != "" {
		return resolveListPath(doc, lp)
	}

	path := d.Schema.ItemsPath
	if path == "" {
		path = "data.items"
	}
	// itemsPath também aceita o dialeto com raiz "$"
	if strings.HasPrefix(path, "$") {
		return resolveListPath(doc, path)
	}
	items := jsonpath.GetListByPath(doc, path)
	if len(items) == 0 && d.Schema.ItemsPath == "" {
		// default não resolveu: primeiro array da resposta
		items = jsonpath.GetListByPath(doc, "")
	}
	return items
}

// resolveListPath resolve um listPath no dialeto com raiz "$".
// "$.*" e caminhos terminados em ".*" são o curinga de dicionário:
// array é usado direto; objeto com chaves numéricas vira a lista dos
// valores em ordem de chave.
func resolveListPath(doc any, lp string) []any {
	if lp == "$" {
		return wildcardValues(doc)
	}
	if strings.HasSuffix(lp, ".*") {
		prefix := strings.TrimSuffix(lp, ".*")
		prefix = strings.TrimPrefix(prefix, "$")
		prefix = strings.TrimPrefix(prefix, ".")
		return wildcardValues(jsonpath.GetByPath(doc, prefix))
	}

	path := strings.TrimPrefix(lp, "$")
	path = strings.TrimPrefix(path, ".")
	path = strings.ReplaceAll(path, "[*]", "[]")
	return jsonpath.GetListByPath(doc, path)
}

func wildcardValues(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		type entry struct {
			n int
			v any
		}
		entries := make([]entry, 0, len(t))
		for k, val := range t {
			n, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			entries = append(entries, entry{n, val})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].n < entries[j].n })
		out := make([]any, len(entries))
		for i, e := range entries {
			out[i] = e.v
		}
		return out
	}
	return []any{}
}

// normalizeItem aplica os campos do rolemap sobre um item bruto.
// Quando nenhum campo declarado resolve, o item bruto passa intacto;
// a normalização nunca descarta dados que não consegue mapear.
func normalizeItem(raw any, rm models.Rolemap) models.NormalizedItem {
	rawMap, isMap := raw.(map[string]any)

	if len(rm.Fields) > 0 {
		out := make(models.NormalizedItem, len(rm.Fields))
		for canonical, fieldPath := range rm.Fields {
			path := strings.TrimPrefix(strings.TrimSpace(fieldPath), "$")
			path = strings.TrimPrefix(path, ".")
			if v := jsonpath.GetByPath(raw, path); v != nil {
				out[canonical] = v
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	if isMap {
		return rawMap
	}
	return models.NormalizedItem{"valor": raw}
}

// extractTotal lê o total declarado pelo provedor; ausência não é erro
func extractTotal(doc any, d *models.IntegrationDescriptor) *int {
	paths := []string{d.Schema.TotalPath}
	if d.Schema.TotalPath == "" {
		paths = []string{"data.total", "total"}
	}
	for _, path := range paths {
		if f, ok := jsonpath.GetByPath(doc, path).(float64); ok {
			n := int(f)
			return &n
		}
	}
	return nil
}

func paramString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
