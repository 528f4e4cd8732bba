// Package ranking aplica o filtro rígido e a ordenação por relevância
// sobre os itens normalizados devolvidos pelo provedor.
package ranking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/utils"
)

// fieldAliases lista, por campo canônico, os nomes sob os quais os
// provedores costumam expor o valor. A resolução testa na ordem.
var fieldAliases = map[string][]string{
	"bairro":    {"bairro", "neighborhood", "district", "regiao"},
	"cidade":    {"cidade", "city", "municipio"},
	"estado":    {"estado", "state", "uf"},
	"quartos":   {"quartos", "dormitorios", "bedrooms", "rooms"},
	"titulo":    {"titulo", "title", "nome", "name"},
	"descricao": {"descricao", "description", "descricaoCompleta", "texto"},
	"tipo":      {"tipo", "type", "categoria", "tipoImovel"},
	"vagas":     {"vagas", "garagem", "parkingSpots", "garages"},
	"area":      {"area", "areaUtil", "areaPrivativa", "usefulArea"},
}

// tipoSinonimos amplia o matching de tipo: o valor canônico casa com
// qualquer uma das grafias listadas
var tipoSinonimos = map[string][]string{
	"apartamento": {"apartamento", "apto", "ap.", "ap"},
	"casa":        {"casa", "sobrado"},
	"kitnet":      {"kitnet", "kitinete", "jk", "studio"},
	"studio":      {"studio", "estudio", "kitnet"},
	"terreno":     {"terreno", "lote"},
}

// Ranker filtra e ordena itens conforme os critérios extraídos
type Ranker struct{}

// NewRanker cria um novo ranker
func NewRanker() *Ranker {
	return &Ranker{}
}

// FilterAndRank aplica o filtro rígido e ordena por relevância. Se o
// filtro rígido zerar o conjunto, os critérios são rebaixados para
// ranking apenas e o conjunto original é devolvido ordenado; uma
// resposta vazia por excesso de rigor é pior que uma aproximada.
func (r *Ranker) FilterAndRank(items []models.NormalizedItem, c models.Criteria) []models.NormalizedItem {
	if len(items) == 0 || c.IsZero() {
		return rankOnly(items, c)
	}

	filtered := make([]models.NormalizedItem, 0, len(items))
	for _, item := range items {
		if matchesCriteria(item, c) {
			filtered = append(filtered, item)
		}
	}

	// Válvula de escape: só quando o filtro elimina TODOS os itens
	if len(filtered) == 0 {
		return rankOnly(items, c)
	}

	return rankOnly(filtered, c)
}

// Paginate recorta a janela pedida do conjunto já ordenado
func Paginate(items []models.NormalizedItem, page, pageSize int) []models.NormalizedItem {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []models.NormalizedItem{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func rankOnly(items []models.NormalizedItem, c models.Criteria) []models.NormalizedItem {
	if len(items) == 0 {
		return items
	}
	type scored struct {
		item  models.NormalizedItem
		score float64
	}
	ranked := make([]scored, len(items))
	for i, item := range items {
		ranked[i] = scored{item: item, score: Score(item, c)}
	}
	// Estável: empates preservam a ordem do provedor
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	out := make([]models.NormalizedItem, len(ranked))
	for i, s := range ranked {
		out[i] = s.item
	}
	return out
}

// matchesCriteria é o filtro rígido: todo critério presente precisa
// casar. Localização ausente no item cai para uma varredura de
// título+descrição antes de reprovar.
func matchesCriteria(item models.NormalizedItem, c models.Criteria) bool {
	if c.Quartos != nil {
		if n, ok := fieldInt(item, "quartos"); ok && n != *c.Quartos {
			return false
		}
	}
	if c.Bairro != "" && !matchesLocation(item, "bairro", c.Bairro) {
		return false
	}
	if c.Cidade != "" && !matchesLocation(item, "cidade", c.Cidade) {
		return false
	}
	if c.Estado != "" {
		if v, ok := fieldString(item, "estado"); ok {
			// Exato após normalização: "São Paulo" casa com "sao paulo"
			if utils.NormalizeField(v) != utils.NormalizeField(c.Estado) {
				return false
			}
		}
	}
	if c.Tipo != "" {
		if v, ok := fieldString(item, "tipo"); ok {
			if !tipoMatches(v, c.Tipo) {
				return false
			}
		}
	}
	return true
}

// matchesLocation compara por substring após normalização. Campo
// ausente não reprova: não dá para provar a divergência, e campo
// divergente ainda é resgatado por menção no título/descrição.
func matchesLocation(item models.NormalizedItem, field, want string) bool {
	wantNorm := utils.Normalize(want)
	v, ok := fieldString(item, field)
	if !ok {
		return true
	}
	vNorm := utils.Normalize(v)
	if strings.Contains(vNorm, wantNorm) || strings.Contains(wantNorm, vNorm) {
		return true
	}
	return textMentions(item, wantNorm)
}

// locationScore pontua quando o campo casa ou o texto do anúncio
// menciona o local pedido
func locationScore(item models.NormalizedItem, field, want string) bool {
	wantNorm := utils.Normalize(want)
	if v, ok := fieldString(item, field); ok {
		vNorm := utils.Normalize(v)
		if strings.Contains(vNorm, wantNorm) || strings.Contains(wantNorm, vNorm) {
			return true
		}
	}
	return textMentions(item, wantNorm)
}

func textMentions(item models.NormalizedItem, wantNorm string) bool {
	for _, field := range []string{"titulo", "descricao"} {
		if v, ok := fieldString(item, field); ok {
			if strings.Contains(utils.Normalize(v), wantNorm) {
				return true
			}
		}
	}
	return false
}

func tipoMatches(got, want string) bool {
	gotNorm := utils.Normalize(got)
	for _, syn := range tipoSinonimos[want] {
		if strings.Contains(gotNorm, syn) {
			return true
		}
	}
	return strings.Contains(gotNorm, want)
}

// Score calcula a relevância de um item para os critérios. Pesos
// maiores para localização específica, menores para atributos de
// conforto.
func Score(item models.NormalizedItem, c models.Criteria) float64 {
	score := 0.0

	if c.Bairro != "" && locationScore(item, "bairro", c.Bairro) {
		score += 5
	}
	if c.Cidade != "" && locationScore(item, "cidade", c.Cidade) {
		score += 3
	}
	if c.Estado != "" {
		if v, ok := fieldString(item, "estado"); ok && utils.NormalizeField(v) == utils.NormalizeField(c.Estado) {
			score += 2
		}
	}
	if c.Tipo != "" {
		if v, ok := fieldString(item, "tipo"); ok && tipoMatches(v, c.Tipo) {
			score += 2
		}
	}
	if c.Quartos != nil {
		if n, ok := fieldInt(item, "quartos"); ok && n == *c.Quartos {
			score += 2
		}
	}

	// Atributos de conforto: desempate, não decisão
	if n, ok := fieldInt(item, "vagas"); ok && n >= 1 {
		score += 0.4
	}
	if a, ok := fieldFloat(item, "area"); ok && a >= 55 {
		score += 0.4
	}

	return score
}

// fieldString resolve um campo canônico testando cada alias conhecido
func fieldString(item models.NormalizedItem, canonical string) (string, bool) {
	for _, alias := range fieldAliases[canonical] {
		if v, ok := item[alias]; ok && v != nil {
			switch s := v.(type) {
			case string:
				if strings.TrimSpace(s) != "" {
					return s, true
				}
			default:
				return fmt.Sprintf("%v", v), true
			}
		}
	}
	return "", false
}

func fieldInt(item models.NormalizedItem, canonical string) (int, bool) {
	f, ok := fieldFloat(item, canonical)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func fieldFloat(item models.NormalizedItem, canonical string) (float64, bool) {
	for _, alias := range fieldAliases[canonical] {
		v, ok := item[alias]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
