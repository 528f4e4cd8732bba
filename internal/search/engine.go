package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vendaflow/app-inventario-search/internal/cache"
	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/search/adapter"
	"github.com/vendaflow/app-inventario-search/internal/search/inference"
	"github.com/vendaflow/app-inventario-search/internal/search/query"
	"github.com/vendaflow/app-inventario-search/internal/search/ranking"
	"github.com/vendaflow/app-inventario-search/internal/store"
	"github.com/vendaflow/app-inventario-search/internal/utils"
)

// DefaultResolveCacheTTL é o TTL do cache de respostas do fluxo
// conversacional
const DefaultResolveCacheTTL = 2 * time.Minute

// fator de superamostragem quando a busca tem texto livre: o filtro
// local precisa de material além da janela pedida
const textFetchFactor = 5

// Engine orquestra o ciclo de vida das integrações: cadastro,
// inferência, busca e o fluxo conversacional
type Engine struct {
	store       store.IntegrationStore
	runner      *Runner
	schema      *inference.SchemaInferencer
	rolemap     *inference.RolemapGenerator
	parser      *query.Parser
	ranker      *ranking.Ranker
	cache       cache.Cache
	cacheTTL    time.Duration
	maxPageSize int
}

// NewEngine cria o engine com as dependências injetadas. Cache nil
// desliga o cache de respostas; cacheTTL e maxPageSize não positivos
// usam os defaults.
func NewEngine(st store.IntegrationStore, client *adapter.ProviderClient, llm inference.TextGenerator, c cache.Cache, cacheTTL time.Duration, maxPageSize int) *Engine {
	if cacheTTL <= 0 {
		cacheTTL = DefaultResolveCacheTTL
	}
	if maxPageSize < 1 {
		maxPageSize = models.DefaultMaxPageSize
	}
	return &Engine{
		store:       st,
		runner:      NewRunner(client, maxPageSize),
		schema:      inference.NewSchemaInferencer(client),
		rolemap:     inference.NewRolemapGenerator(llm),
		parser:      query.NewParser(),
		ranker:      ranking.NewRanker(),
		cache:       c,
		cacheTTL:    cacheTTL,
		maxPageSize: maxPageSize,
	}
}

// CreateIntegration valida e persiste um descriptor novo
func (e *Engine) CreateIntegration(ctx context.Context, d *models.IntegrationDescriptor) error {
	if strings.TrimSpace(d.CompanyID) == "" {
		return models.ErrCompanyRequired
	}
	if strings.TrimSpace(d.Endpoint.URL) == "" {
		return &models.ConfigurationError{Field: "endpoint.url", Motivo: "não pode ser vazio"}
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.Auth = d.Auth.Normalized()
	return e.store.Create(ctx, d)
}

// GetIntegration busca um descriptor da empresa
func (e *Engine) GetIntegration(ctx context.Context, companyID, id string) (*models.IntegrationDescriptor, error) {
	if strings.TrimSpace(companyID) == "" {
		return nil, models.ErrCompanyRequired
	}
	return e.store.GetByID(ctx, companyID, id)
}

// ListIntegrations lista os descriptors da empresa
func (e *Engine) ListIntegrations(ctx context.Context, companyID string, onlyActive bool) ([]*models.IntegrationDescriptor, error) {
	if strings.TrimSpace(companyID) == "" {
		return nil, models.ErrCompanyRequired
	}
	return e.store.ListByCompany(ctx, companyID, onlyActive)
}

// UpdateIntegration valida e sobrescreve um descriptor existente
func (e *Engine) UpdateIntegration(ctx context.Context, d *models.IntegrationDescriptor) error {
	if strings.TrimSpace(d.CompanyID) == "" {
		return models.ErrCompanyRequired
	}
	if strings.TrimSpace(d.Endpoint.URL) == "" {
		return &models.ConfigurationError{Field: "endpoint.url", Motivo: "não pode ser vazio"}
	}
	d.Auth = d.Auth.Normalized()
	return e.store.Update(ctx, d)
}

// BootstrapResult é o resultado da inferência de schema + rolemap
type BootstrapResult struct {
	Schema    *inference.SchemaResult  `json:"schema"`
	Rolemap   *inference.RolemapResult `json:"rolemap"`
	Persisted bool                     `json:"persisted"`
}

// InferSchemaAndRolemap amostra o endpoint da integração, deriva o
// schema e pede o rolemap ao LLM (com reparo estrutural). Com persist,
// grava o resultado no descriptor.
func (e *Engine) InferSchemaAndRolemap(ctx context.Context, companyID, id string, persist bool) (*BootstrapResult, error) {
	d, err := e.GetIntegration(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	schemaResult, err := e.schema.InferSchema(ctx, d)
	if err != nil {
		return nil, err
	}

	rolemapResult := e.rolemap.Infer(ctx, schemaResult.Samples[0], d.CategoryHint)

	result := &BootstrapResult{Schema: schemaResult, Rolemap: rolemapResult}
	if !persist {
		return result, nil
	}

	d.Schema.ItemsPath = schemaResult.ItemsPathGuess
	if len(schemaResult.TotalPathCandidates) > 0 {
		d.Schema.TotalPath = schemaResult.TotalPathCandidates[0]
	}
	d.Rolemap = rolemapResult.Rolemap
	if d.Pagination.IsZero() && !schemaResult.PaginationSuggest.IsZero() {
		d.Pagination = schemaResult.PaginationSuggest
	}

	if err := e.store.Update(ctx, d); err != nil {
		return nil, err
	}
	result.Persisted = true
	log.Printf("Inferência persistida na integração %s (rolemap via %s)", d.ID, rolemapResult.Source)
	return result, nil
}

// Search executa uma busca numa integração específica. Com texto
// livre, os critérios extraídos viram filtros e o resultado passa pelo
// filtro local com ranking; sem texto, a paginação é delegada ao
// provedor.
func (e *Engine) Search(ctx context.Context, companyID, id string, input models.SearchInput) (*models.RunSearchOutput, error) {
	d, err := e.GetIntegration(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	input.ApplyDefaults(e.maxPageSize)

	if strings.TrimSpace(input.Text) == "" {
		return e.runner.RunSearch(ctx, d, input)
	}

	criteria := e.parser.Parse(input.Text)

	// Filtros explícitos do chamador têm precedência sobre os extraídos
	filtros := query.CriteriaToFiltros(criteria)
	for k, v := range input.Filtros {
		filtros[k] = v
	}

	// Superamostra a primeira página do provedor; o recorte final é local
	fetchSize := input.PageSize * textFetchFactor
	if fetchSize > e.maxPageSize {
		fetchSize = e.maxPageSize
	}
	out, err := e.runner.RunSearch(ctx, d, models.SearchInput{
		Params:   input.Params,
		Filtros:  filtros,
		Page:     1,
		PageSize: fetchSize,
	})
	if err != nil {
		return nil, err
	}

	ranked := e.ranker.FilterAndRank(out.Items, criteria)
	total := len(ranked)
	out.Items = ranking.Paginate(ranked, input.Page, input.PageSize)
	out.Total = &total
	out.Page = input.Page
	out.PageSize = input.PageSize
	return out, nil
}

// ResolveAndSearch é o fluxo conversacional completo: roteia o texto
// para a integração mais adequada da empresa e executa a busca.
// Nenhuma integração casar não é erro; o resultado volta com
// matched=false e a mensagem de fallback.
func (e *Engine) ResolveAndSearch(ctx context.Context, companyID, text string, page, pageSize int) (*models.ResolveOutput, error) {
	if strings.TrimSpace(companyID) == "" {
		return nil, models.ErrCompanyRequired
	}

	key := resolveCacheKey(companyID, text, page, pageSize)
	if e.cache != nil {
		if raw, ok := e.cache.Get(ctx, key); ok {
			var cached models.ResolveOutput
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	integrations, err := e.store.ListByCompany(ctx, companyID, true)
	if err != nil {
		return nil, err
	}

	chosen := ChooseIntegration(integrations, text)
	if chosen == nil {
		return &models.ResolveOutput{
			Matched:  false,
			Mensagem: "Não encontrei um catálogo que atenda a esse pedido. Pode me dizer com mais detalhes o que você procura?",
		}, nil
	}

	out, err := e.Search(ctx, companyID, chosen.ID, models.SearchInput{
		Text:     text,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	result := &models.ResolveOutput{
		Matched:         true,
		Integration:     chosen,
		RunSearchOutput: *out,
	}

	if e.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			e.cache.Set(ctx, key, raw, e.cacheTTL)
		}
	}
	return result, nil
}

func resolveCacheKey(companyID, text string, page, pageSize int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d|%d", companyID, utils.Normalize(text), page, pageSize))
	return "resolve:" + hex.EncodeToString(sum[:])
}

// RenderAgentText monta a resposta em texto puro para o modo agente
// (canais de chat que não renderizam markdown nem JSON)
func RenderAgentText(out *models.ResolveOutput) string {
	if out == nil || !out.Matched {
		if out != nil && out.Mensagem != "" {
			return out.Mensagem
		}
		return "Nenhum resultado encontrado."
	}
	if len(out.Items) == 0 {
		return "Nenhum resultado encontrado para essa busca."
	}

	var b strings.Builder
	for i, item := range out.Items {
		fmt.Fprintf(&b, "%d. %s", i+1, utils.StripMarkdown(itemText(item, "titulo", "title", "nome", "name")))
		if desc := itemText(item, "descricao", "description"); desc != "" {
			fmt.Fprintf(&b, " - %s", utils.StripMarkdown(desc))
		}
		if preco := itemText(item, "preco", "price", "valor"); preco != "" {
			fmt.Fprintf(&b, " (R$ %s)", preco)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func itemText(item models.NormalizedItem, aliases ...string) string {
	for _, alias := range aliases {
		if v, ok := item[alias]; ok && v != nil {
			s := fmt.Sprintf("%v", v)
			if strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}
