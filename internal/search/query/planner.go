package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vendaflow/app-inventario-search/internal/models"
)

// fallbackParamNames mapeia nomes de filtro canônicos para as
// convenções mais comuns entre provedores, usado quando a integração
// não define override
var fallbackParamNames = map[string]string{
	"precoMin":    "price_min",
	"precoMax":    "price_max",
	"dormitorios": "dormitorios",
	"quartos":     "quartos",
	"bairro":      "bairro",
	"cidade":      "cidade",
	"estado":      "estado",
	"tipo":        "tipo",
	"vagas":       "vagas",
	"areaMin":     "area_min",
	"marca":       "marca",
	"modelo":      "modelo",
	"anoMin":      "ano_min",
	"anoMax":      "ano_max",
	"categoria":   "categoria",
}

// chaves que representam o flag booleano "tem garagem"
var garagemFlags = []string{"garagem", "temGaragem", "garage"}

// BuildProviderParams traduz filtros canônicos para os parâmetros que
// o provedor espera e injeta a paginação conforme a estratégia
// configurada. Filtros sem valor definido são omitidos.
func BuildProviderParams(d *models.IntegrationDescriptor, filtros map[string]any, page, pageSize int) map[string]any {
	params := make(map[string]any)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	for key, value := range filtros {
		if isEmptyValue(value) {
			continue
		}
		params[ResolveParamName(d, key)] = value
	}

	// Heurística: flag de garagem sem filtro de vagas explícito vira
	// vagas=1
	if hasGaragemFlag(filtros) && !hasVagasFilter(filtros) {
		params[ResolveParamName(d, "vagas")] = 1
	}

	applyPagination(d, params, filtros, page, pageSize)

	return params
}

// ResolveParamName resolve o nome de um filtro canônico para o nome
// que o provedor espera: override da integração > tabela de
// convenções > nome canônico literal
func ResolveParamName(d *models.IntegrationDescriptor, canonical string) string {
	if d != nil && d.ParamMap != nil {
		switch v := d.ParamMap[canonical].(type) {
		case string:
			if v != "" {
				return v
			}
		case []any:
			// lista de aliases: o primeiro é o preferido
			if len(v) > 0 {
				if s, ok := v[0].(string); ok && s != "" {
					return s
				}
			}
		case []string:
			if len(v) > 0 && v[0] != "" {
				return v[0]
			}
		}
	}
	if name, ok := fallbackParamNames[canonical]; ok {
		return name
	}
	return canonical
}

func applyPagination(d *models.IntegrationDescriptor, params map[string]any, filtros map[string]any, page, pageSize int) {
	p := d.Pagination
	switch p.Type {
	case models.PaginationPage:
		params[p.EffectivePageParam()] = page
		params[p.EffectiveSizeParam()] = pageSize
	case models.PaginationOffset:
		params[p.EffectiveOffsetParam()] = (page - 1) * pageSize
		params[p.EffectiveSizeParam()] = pageSize
	case models.PaginationCursor:
		delete(params, ResolveParamName(d, "cursor"))
		// cursor só entra quando o chamador carrega um
		if cursor, ok := filtros["cursor"]; ok && !isEmptyValue(cursor) {
			params[p.EffectiveCursorParam()] = cursor
		}
		params[p.EffectiveSizeParam()] = pageSize
	}
}

func hasGaragemFlag(filtros map[string]any) bool {
	for _, key := range garagemFlags {
		if v, ok := filtros[key]; ok {
			if b, ok := v.(bool); ok && b {
				return true
			}
			if s, ok := v.(string); ok && strings.EqualFold(s, "true") {
				return true
			}
		}
	}
	return false
}

func hasVagasFilter(filtros map[string]any) bool {
	_, ok := filtros["vagas"]
	return ok
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// CriteriaToFiltros converte critérios extraídos de texto em filtros
// canônicos para a tradução de parâmetros
func CriteriaToFiltros(c models.Criteria) map[string]any {
	filtros := make(map[string]any)
	if c.Quartos != nil {
		filtros["quartos"] = *c.Quartos
	}
	if c.Bairro != "" {
		filtros["bairro"] = c.Bairro
	}
	if c.Cidade != "" {
		filtros["cidade"] = c.Cidade
	}
	if c.Estado != "" {
		filtros["estado"] = c.Estado
	}
	if c.Tipo != "" {
		filtros["tipo"] = c.Tipo
	}
	return filtros
}

// SerializeObjectParams converte valores-objeto em strings JSON para
// provedores que esperam um blob codificado num único parâmetro
func SerializeObjectParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		switch v.(type) {
		case map[string]any, []any:
			out[k] = mustJSON(v)
		default:
			out[k] = v
		}
	}
	return out
}

func mustJSON(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(encoded)
}
