package models

// Criteria são os critérios estruturados extraídos de um texto livre
// do usuário (ou informados explicitamente pelo chamador)
type Criteria struct {
	Quartos *int   `json:"quartos,omitempty"`
	Bairro  string `json:"bairro,omitempty"`
	Cidade  string `json:"cidade,omitempty"`
	Estado  string `json:"estado,omitempty"`
	Tipo    string `json:"tipo,omitempty"`
}

// IsZero indica que nenhum critério foi extraído
func (c Criteria) IsZero() bool {
	return c.Quartos == nil && c.Bairro == "" && c.Cidade == "" && c.Estado == "" && c.Tipo == ""
}

// NormalizedItem é o item canônico produzido pela aplicação do rolemap.
// Quando nenhum campo declarado resolve, o item bruto é devolvido no
// lugar (a normalização nunca descarta dados que não consegue mapear).
type NormalizedItem = map[string]any

// RunSearchOutput é o resultado de uma busca executada contra o
// provedor. Raw é sempre a resposta intocada do provedor, preservada
// para debug e exibição.
type RunSearchOutput struct {
	Items    []NormalizedItem `json:"items"`
	Total    *int             `json:"total,omitempty"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Raw      any              `json:"raw,omitempty"`
}

// SearchInput são os parâmetros de uma busca contra uma integração
type SearchInput struct {
	Text     string         `json:"text,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
	Filtros  map[string]any `json:"filtros,omitempty"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// Defaults de paginação quando o chamador não informa
const (
	DefaultPageSize    = 10
	DefaultMaxPageSize = 100
)

// ApplyDefaults aplica defaults de paginação. maxPageSize não positivo
// usa DefaultMaxPageSize.
func (s *SearchInput) ApplyDefaults(maxPageSize int) {
	if maxPageSize < 1 {
		maxPageSize = DefaultMaxPageSize
	}
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	if s.PageSize > maxPageSize {
		s.PageSize = maxPageSize
	}
}

// ResolveOutput é o resultado do fluxo conversacional completo
// (roteamento + busca + filtro local). Matched=false é um resultado
// normal, não um erro: a camada de conversa renderiza a mensagem de
// fallback.
type ResolveOutput struct {
	Matched     bool                   `json:"matched"`
	Integration *IntegrationDescriptor `json:"integration,omitempty"`
	Mensagem    string                 `json:"mensagem,omitempty"`
	RunSearchOutput
}
