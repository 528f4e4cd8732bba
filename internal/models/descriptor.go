package models

import (
	"encoding/json"
	"strings"
	"time"
)

// AuthType identifica a estratégia de autenticação da API externa
type AuthType string

const (
	AuthNone   AuthType = "none"
	AuthAPIKey AuthType = "api_key"
	AuthBearer AuthType = "bearer"
	AuthBasic  AuthType = "basic"
)

// PaginationType identifica a estratégia de paginação da API externa
type PaginationType string

const (
	PaginationNone   PaginationType = "none"
	PaginationPage   PaginationType = "page"
	PaginationOffset PaginationType = "offset"
	PaginationCursor PaginationType = "cursor"
)

// Endpoint descreve como chamar a API externa de um provedor
type Endpoint struct {
	Method         string            `json:"method"`
	URL            string            `json:"url"`
	Headers        map[string]string `json:"headers,omitempty"`
	DefaultQuery   map[string]any    `json:"defaultQuery,omitempty"`
	DefaultBody    map[string]any    `json:"defaultBody,omitempty"`
	TimeoutSeconds int               `json:"timeoutSeconds,omitempty"`
}

// Auth descreve a autenticação da API externa. O campo Type determina
// quais dos demais campos são significativos; tipo ausente ou
// desconhecido é tratado como none.
type Auth struct {
	Type      AuthType `json:"type"`
	Location  string   `json:"location,omitempty"`  // api_key: header|query
	ParamName string   `json:"paramName,omitempty"` // api_key
	Prefix    string   `json:"prefix,omitempty"`    // api_key/bearer
	Key       string   `json:"key,omitempty"`       // api_key
	Token     string   `json:"token,omitempty"`     // bearer
	Username  string   `json:"username,omitempty"`  // basic
	Password  string   `json:"password,omitempty"`  // basic
}

// Normalized retorna a auth com tipo desconhecido rebaixado para none
func (a Auth) Normalized() Auth {
	switch a.Type {
	case AuthAPIKey, AuthBearer, AuthBasic:
		return a
	}
	return Auth{Type: AuthNone}
}

// Pagination é a forma canônica da estratégia de paginação.
// Duas formas históricas coexistem no banco e ambas são aceitas
// na leitura (ver UnmarshalJSON).
type Pagination struct {
	Type        PaginationType `json:"type"`
	PageParam   string         `json:"pageParam,omitempty"`
	OffsetParam string         `json:"offsetParam,omitempty"`
	CursorParam string         `json:"cursorParam,omitempty"`
	SizeParam   string         `json:"sizeParam,omitempty"`
}

// IsZero indica paginação não configurada (ausente ou none)
func (p Pagination) IsZero() bool {
	return p.Type == "" || p.Type == PaginationNone
}

// UnmarshalJSON aceita as duas formas históricas persistidas:
//
//	{"strategy":"offset","offset_param":"offset","size_param":"limit"}
//	{"type":"offset","param":"offset","sizeParam":"limit"}
//
// e converte ambas para a forma canônica. Toda a lógica interna opera
// apenas sobre a forma canônica; nenhum outro ponto do código conhece
// as formas antigas.
func (p *Pagination) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = NormalizePagination(raw)
	return nil
}

// NormalizePagination converte um blob persistido (qualquer das duas
// formas históricas) para a forma canônica
func NormalizePagination(raw map[string]any) Pagination {
	if raw == nil {
		return Pagination{Type: PaginationNone}
	}

	tipo := strValue(raw, "type")
	if tipo == "" {
		tipo = strValue(raw, "strategy")
	}

	p := Pagination{Type: PaginationType(strings.ToLower(tipo))}
	switch p.Type {
	case PaginationPage, PaginationOffset, PaginationCursor:
	default:
		p.Type = PaginationNone
	}

	p.PageParam = firstStr(raw, "pageParam", "page_param")
	p.OffsetParam = firstStr(raw, "offsetParam", "offset_param")
	p.CursorParam = firstStr(raw, "cursorParam", "cursor_param")
	p.SizeParam = firstStr(raw, "sizeParam", "size_param")

	// A forma nova usa um único "param" para o parâmetro principal da
	// estratégia
	if generic := strValue(raw, "param"); generic != "" {
		switch p.Type {
		case PaginationPage:
			if p.PageParam == "" {
				p.PageParam = generic
			}
		case PaginationOffset:
			if p.OffsetParam == "" {
				p.OffsetParam = generic
			}
		case PaginationCursor:
			if p.CursorParam == "" {
				p.CursorParam = generic
			}
		}
	}

	return p
}

// Defaults dos nomes de parâmetro por estratégia
func (p Pagination) EffectivePageParam() string {
	if p.PageParam != "" {
		return p.PageParam
	}
	return "page"
}

func (p Pagination) EffectiveOffsetParam() string {
	if p.OffsetParam != "" {
		return p.OffsetParam
	}
	return "offset"
}

func (p Pagination) EffectiveCursorParam() string {
	if p.CursorParam != "" {
		return p.CursorParam
	}
	return "cursor"
}

func (p Pagination) EffectiveSizeParam() string {
	if p.SizeParam != "" {
		return p.SizeParam
	}
	switch p.Type {
	case PaginationPage:
		return "pageSize"
	default:
		return "limit"
	}
}

// Schema guarda os caminhos inferidos para extração da resposta
type Schema struct {
	ItemsPath string `json:"itemsPath,omitempty"`
	TotalPath string `json:"totalPath,omitempty"`
}

// Rolemap mapeia campos canônicos para caminhos JSONPath dentro do
// item bruto do provedor
type Rolemap struct {
	ListPath string            `json:"listPath,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// IsZero indica rolemap não configurado
func (r Rolemap) IsZero() bool {
	return r.ListPath == "" && len(r.Fields) == 0
}

// IntegrationDescriptor é a configuração persistida de uma integração
// de inventário externa de um tenant
type IntegrationDescriptor struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"companyId"`
	Name         string     `json:"name"`
	CategoryHint string     `json:"categoryHint,omitempty"`
	Ativo        bool       `json:"ativo"`
	Endpoint     Endpoint   `json:"endpoint"`
	Auth         Auth       `json:"auth"`
	Pagination   Pagination `json:"pagination"`
	Schema       Schema     `json:"schema"`
	Rolemap      Rolemap    `json:"rolemap"`
	// ParamMap mapeia nomes de filtro canônicos para os nomes que o
	// provedor espera; valor string usa direto, lista usa o primeiro
	// elemento
	ParamMap  map[string]any `json:"paramMap,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// EffectiveMethod retorna o método HTTP configurado (default GET)
func (e Endpoint) EffectiveMethod() string {
	m := strings.ToUpper(strings.TrimSpace(e.Method))
	if m == "" {
		return "GET"
	}
	return m
}

func strValue(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func firstStr(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := strValue(m, k); s != "" {
			return s
		}
	}
	return ""
}
