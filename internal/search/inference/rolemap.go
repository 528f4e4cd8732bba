// Package inference implementa o bootstrap de uma integração: amostra
// a API do provedor, deriva o esqueleto do schema e pede ao LLM o
// rolemap de campos, com reparo estrutural quando o LLM falha.
package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/search/jsonpath"
)

// TextGenerator é o contrato mínimo com o LLM. Implementado pelo
// adapter Gemini; testes substituem por um stub.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	IsAvailable() bool
}

// Fontes possíveis de um rolemap
const (
	SourceLLM       = "llm"
	SourceHeuristic = "heuristic"
)

// RolemapResult carrega o rolemap e a sua origem, para que chamadores
// e testes distingam o caminho LLM do caminho heurístico
type RolemapResult struct {
	Source  string         `json:"source"`
	Rolemap models.Rolemap `json:"rolemap"`
}

// RolemapGenerator infere o rolemap de uma integração a partir de um
// payload de amostra
type RolemapGenerator struct {
	llm TextGenerator
}

// NewRolemapGenerator cria um novo gerador de rolemap
func NewRolemapGenerator(llm TextGenerator) *RolemapGenerator {
	return &RolemapGenerator{llm: llm}
}

// listPath válido: começa com $, e é "$" puro ou contém um padrão de
// array/wildcard
var validListPath = regexp.MustCompile(`^\$($|.*(\[\*\]|\.\*))`)

// Infer produz um rolemap estruturalmente válido para o payload de
// amostra. Nunca retorna erro: falha ou resposta malformada do LLM
// degrada para a heurística estrutural (logada como aviso).
func (g *RolemapGenerator) Infer(ctx context.Context, sample any, categoryHint string) *RolemapResult {
	llmMap, ok := g.tryLLM(ctx, sample, categoryHint)
	if !ok {
		return &RolemapResult{
			Source:  SourceHeuristic,
			Rolemap: models.Rolemap{ListPath: structuralListPath(sample)},
		}
	}

	rolemap := models.Rolemap{
		ListPath: llmMap.ListPath,
		Fields:   make(map[string]string),
	}

	// Mantém apenas fields cujo valor é string não-vazia
	for name, v := range llmMap.Fields {
		if path, ok := v.(string); ok && strings.TrimSpace(path) != "" {
			rolemap.Fields[name] = path
		}
	}

	// Repara listPath inválido ("banana", "42", número puro...)
	if !validListPath.MatchString(rolemap.ListPath) {
		log.Printf("Aviso: listPath inválido do LLM (%q), aplicando heurística estrutural", rolemap.ListPath)
		rolemap.ListPath = structuralListPath(sample)
	}

	return &RolemapResult{Source: SourceLLM, Rolemap: rolemap}
}

type llmRolemap struct {
	ListPath string         `json:"listPath"`
	Fields   map[string]any `json:"fields"`
}

// tryLLM chama o LLM e parseia a resposta; qualquer falha retorna ok=false
func (g *RolemapGenerator) tryLLM(ctx context.Context, sample any, categoryHint string) (*llmRolemap, bool) {
	if g.llm == nil || !g.llm.IsAvailable() {
		return nil, false
	}

	prompt := buildRolemapPrompt(sample, categoryHint)
	answer, err := g.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		log.Printf("Aviso: falha no LLM ao inferir rolemap: %v", err)
		return nil, false
	}

	var parsed llmRolemap
	if err := json.Unmarshal([]byte(extractJSON(answer)), &parsed); err != nil {
		log.Printf("Aviso: resposta do LLM não é JSON válido: %v", err)
		return nil, false
	}

	return &parsed, true
}

func buildRolemapPrompt(sample any, categoryHint string) string {
	pretty, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		pretty = []byte(fmt.Sprintf("%v", sample))
	}
	// Amostras gigantes estouram o contexto do modelo
	const maxSample = 6000
	text := string(pretty)
	if len(text) > maxSample {
		text = text[:maxSample]
	}

	hint := ""
	if categoryHint != "" {
		hint = fmt.Sprintf("\nCategoria do inventário: %s\n", categoryHint)
	}

	return fmt.Sprintf(`Analise esta resposta de uma API de inventário e identifique onde está a lista de itens e os campos de cada item.
%s
Payload de amostra:
%s

Retorne JSON estrito no formato:
{
  "listPath": "$.data.items[*]",
  "fields": {
    "title": "$.Titulo",
    "price": "$.Preco",
    "description": "$.Descricao"
  }
}

Regras:
- listPath: JSONPath da lista de itens, começando com $ e terminando em [*] (ou .* para dicionários numerados)
- fields: mapeia nomes canônicos (title, price, description, city, neighborhood, bedrooms, area, url, image) para o JSONPath do campo dentro de UM item
- Inclua apenas campos que existem na amostra

Retorne APENAS o JSON.`, hint, text)
}

// structuralListPath deriva um listPath válido andando pela amostra:
// array -> "$<caminho>[*]"; dicionário cujas chaves são todas numéricas
// ou ids hex -> "$<caminho>.*"; fallback final "$.*"
func structuralListPath(sample any) string {
	switch v := sample.(type) {
	case []any:
		return "$[*]"
	case map[string]any:
		if path, arr, ok := jsonpath.FindFirstArray(v); ok && len(arr) > 0 {
			return "$." + path + "[*]"
		}
		if path, ok := findItemDict(v, ""); ok {
			if path == "" {
				return "$.*"
			}
			return "$." + path + ".*"
		}
	}
	return "$.*"
}

var (
	numericKey = regexp.MustCompile(`^\d+$`)
	hexIDKey   = regexp.MustCompile(`^[0-9a-fA-F-]{12,}$`)
)

// findItemDict procura um dicionário que funciona como mapa-de-itens:
// todas as chaves numéricas ou todas com cara de id hex, valores objeto
func findItemDict(m map[string]any, prefix string) (string, bool) {
	if isItemDict(m) {
		return prefix, true
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		child, ok := m[k].(map[string]any)
		if !ok {
			continue
		}
		p := k
		if prefix != "" {
			p = prefix + "." + k
		}
		if found, ok := findItemDict(child, p); ok {
			return found, true
		}
	}
	return "", false
}

func isItemDict(m map[string]any) bool {
	if len(m) < 2 {
		return false
	}
	allNumeric := true
	allHex := true
	for k, v := range m {
		if _, ok := v.(map[string]any); !ok {
			return false
		}
		if !numericKey.MatchString(k) {
			allNumeric = false
		}
		if !hexIDKey.MatchString(k) {
			allHex = false
		}
	}
	return allNumeric || allHex
}

// extractJSON extrai JSON de uma resposta que pode ter markdown
func extractJSON(s string) string {
	if idx := strings.Index(s, "```json"); idx != -1 {
		s = s[idx+7:]
		if endIdx := strings.Index(s, "```"); endIdx != -1 {
			s = s[:endIdx]
		}
	} else if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+3:]
		if endIdx := strings.Index(s, "```"); endIdx != -1 {
			s = s[:endIdx]
		}
	}

	if idx := strings.Index(s, "{"); idx != -1 {
		s = s[idx:]
	}

	return strings.TrimSpace(s)
}
