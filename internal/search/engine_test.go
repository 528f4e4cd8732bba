package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vendaflow/app-inventario-search/internal/cache"
	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/search/adapter"
	"github.com/vendaflow/app-inventario-search/internal/search/inference"
	"github.com/vendaflow/app-inventario-search/internal/store"
)

type stubLLM struct {
	answer string
	err    error
}

func (s *stubLLM) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return s.answer, s.err
}

func (s *stubLLM) IsAvailable() bool { return true }

func newTestEngine(llm inference.TextGenerator) (*Engine, *store.MemoryStore) {
	st := store.NewMemoryStore()
	e := NewEngine(st, adapter.NewProviderClient(0), llm, cache.NewMemoryCache(), time.Minute, 0)
	return e, st
}

func TestCreateIntegration(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(nil)

	t.Run("Gera id e persiste", func(t *testing.T) {
		d := &models.IntegrationDescriptor{
			CompanyID: "empresa-1",
			Name:      "Imobiliária X",
			Endpoint:  models.Endpoint{URL: "https://api.exemplo.com/imoveis"},
			Ativo:     true,
		}
		if err := e.CreateIntegration(ctx, d); err != nil {
			t.Fatalf("CreateIntegration: %v", err)
		}
		if d.ID == "" {
			t.Error("id deveria ser gerado")
		}

		got, err := e.GetIntegration(ctx, "empresa-1", d.ID)
		if err != nil {
			t.Fatalf("GetIntegration: %v", err)
		}
		if got.Name != "Imobiliária X" {
			t.Errorf("Name = %q", got.Name)
		}
	})

	t.Run("Sem companyId falha", func(t *testing.T) {
		err := e.CreateIntegration(ctx, &models.IntegrationDescriptor{
			Endpoint: models.Endpoint{URL: "https://api.exemplo.com"},
		})
		if !errors.Is(err, models.ErrCompanyRequired) {
			t.Errorf("err = %v, want ErrCompanyRequired", err)
		}
	})

	t.Run("Sem url falha", func(t *testing.T) {
		err := e.CreateIntegration(ctx, &models.IntegrationDescriptor{CompanyID: "empresa-1"})
		var cfgErr *models.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("err = %v, want ConfigurationError", err)
		}
	})
}

func TestInferSchemaAndRolemapPersiste(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"items":[{"Titulo":"Apto","Preco":300000}],"total":1}}`))
	}))
	defer srv.Close()

	llm := &stubLLM{answer: `{"listPath":"$.data.items[*]","fields":{"titulo":"$.Titulo","preco":"$.Preco"}}`}
	e, _ := newTestEngine(llm)

	d := &models.IntegrationDescriptor{
		CompanyID: "empresa-1",
		Endpoint:  models.Endpoint{URL: srv.URL},
		Ativo:     true,
	}
	if err := e.CreateIntegration(ctx, d); err != nil {
		t.Fatalf("CreateIntegration: %v", err)
	}

	result, err := e.InferSchemaAndRolemap(ctx, "empresa-1", d.ID, true)
	if err != nil {
		t.Fatalf("InferSchemaAndRolemap: %v", err)
	}
	if !result.Persisted {
		t.Error("resultado deveria ter sido persistido")
	}

	updated, _ := e.GetIntegration(ctx, "empresa-1", d.ID)
	if updated.Schema.ItemsPath != "data.items" {
		t.Errorf("Schema.ItemsPath = %q, want data.items", updated.Schema.ItemsPath)
	}
	if updated.Schema.TotalPath != "data.total" {
		t.Errorf("Schema.TotalPath = %q, want data.total", updated.Schema.TotalPath)
	}
	if updated.Rolemap.ListPath != "$.data.items[*]" {
		t.Errorf("Rolemap.ListPath = %q", updated.Rolemap.ListPath)
	}
	if updated.Rolemap.Fields["titulo"] != "$.Titulo" {
		t.Errorf("Rolemap.Fields = %v", updated.Rolemap.Fields)
	}
}

func TestSearchComTextoFiltraLocalmente(t *testing.T) {
	ctx := context.Background()
	var gotPageSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPageSize = r.URL.Query().Get("pageSize")
		w.Write([]byte(`{"data":{"items":[
			{"titulo":"Apto no Kobrasol","bairro":"Kobrasol","quartos":2},
			{"titulo":"Apto no Estreito","bairro":"Estreito","quartos":2},
			{"titulo":"Casa no Kobrasol","bairro":"Kobrasol","quartos":3}
		]}}`))
	}))
	defer srv.Close()

	e, _ := newTestEngine(nil)
	d := &models.IntegrationDescriptor{
		CompanyID:  "empresa-1",
		Endpoint:   models.Endpoint{URL: srv.URL},
		Pagination: models.Pagination{Type: models.PaginationPage},
		Ativo:      true,
	}
	e.CreateIntegration(ctx, d)

	out, err := e.Search(ctx, "empresa-1", d.ID, models.SearchInput{
		Text: "apartamento 2 quartos no bairro Kobrasol",
		Page: 1, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	// Superamostragem: pede mais itens ao provedor do que a janela final
	if gotPageSize != "50" {
		t.Errorf("pageSize enviado ao provedor = %q, want 50", gotPageSize)
	}
	if len(out.Items) != 1 {
		t.Fatalf("Items = %d, want 1 (filtro de bairro+quartos+tipo)", len(out.Items))
	}
	if out.Items[0]["titulo"] != "Apto no Kobrasol" {
		t.Errorf("item = %v", out.Items[0])
	}
	if out.Total == nil || *out.Total != 1 {
		t.Errorf("Total = %v, want 1", out.Total)
	}
}

func TestSearchSemTextoDelegaPaginacao(t *testing.T) {
	ctx := context.Background()
	var gotPage, gotSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotSize = r.URL.Query().Get("pageSize")
		w.Write([]byte(`{"data":{"items":[{"titulo":"A"}]}}`))
	}))
	defer srv.Close()

	e, _ := newTestEngine(nil)
	d := &models.IntegrationDescriptor{
		CompanyID:  "empresa-1",
		Endpoint:   models.Endpoint{URL: srv.URL},
		Pagination: models.Pagination{Type: models.PaginationPage},
		Ativo:      true,
	}
	e.CreateIntegration(ctx, d)

	_, err := e.Search(ctx, "empresa-1", d.ID, models.SearchInput{Page: 3, PageSize: 20})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotPage != "3" || gotSize != "20" {
		t.Errorf("paginação delegada = page %q size %q, want 3/20", gotPage, gotSize)
	}
}

func TestResolveAndSearch(t *testing.T) {
	ctx := context.Background()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"data":{"items":[{"titulo":"Apto 2 quartos no Centro","quartos":2}]}}`))
	}))
	defer srv.Close()

	e, _ := newTestEngine(nil)
	e.CreateIntegration(ctx, &models.IntegrationDescriptor{
		CompanyID:    "empresa-1",
		CategoryHint: "imoveis",
		Endpoint:     models.Endpoint{URL: srv.URL},
		Ativo:        true,
	})
	e.CreateIntegration(ctx, &models.IntegrationDescriptor{
		CompanyID:    "empresa-1",
		CategoryHint: "carros",
		Endpoint:     models.Endpoint{URL: "http://127.0.0.1:1/nunca-chamado"},
		Ativo:        true,
	})

	t.Run("Texto de imóvel roteia e busca", func(t *testing.T) {
		out, err := e.ResolveAndSearch(ctx, "empresa-1", "procuro um apartamento de 2 quartos", 1, 10)
		if err != nil {
			t.Fatalf("ResolveAndSearch: %v", err)
		}
		if !out.Matched {
			t.Fatal("deveria ter casado com a integração de imóveis")
		}
		if out.Integration.CategoryHint != "imoveis" {
			t.Errorf("categoria roteada = %q", out.Integration.CategoryHint)
		}
		if len(out.Items) != 1 {
			t.Errorf("Items = %d, want 1", len(out.Items))
		}
	})

	t.Run("Resposta repetida vem do cache", func(t *testing.T) {
		before := calls
		_, err := e.ResolveAndSearch(ctx, "empresa-1", "procuro um apartamento de 2 quartos", 1, 10)
		if err != nil {
			t.Fatalf("ResolveAndSearch: %v", err)
		}
		if calls != before {
			t.Errorf("segunda chamada idêntica não deveria bater no provedor (calls %d -> %d)", before, calls)
		}
	})

	t.Run("Texto sem categoria vira fallback", func(t *testing.T) {
		out, err := e.ResolveAndSearch(ctx, "empresa-1", "bom dia, tudo bem?", 1, 10)
		if err != nil {
			t.Fatalf("ResolveAndSearch: %v", err)
		}
		if out.Matched {
			t.Error("texto neutro não deveria casar")
		}
		if out.Mensagem == "" {
			t.Error("fallback deveria carregar mensagem para o usuário")
		}
	})
}

func TestRenderAgentText(t *testing.T) {
	out := &models.ResolveOutput{
		Matched: true,
		RunSearchOutput: models.RunSearchOutput{
			Items: []models.NormalizedItem{
				{"titulo": "**Apto no Centro**", "descricao": "Com *sacada*", "preco": 300000.0},
				{"titulo": "Casa na praia"},
			},
		},
	}

	text := RenderAgentText(out)

	if strings.Contains(text, "*") {
		t.Errorf("markdown deveria ser removido: %q", text)
	}
	if !strings.Contains(text, "1. Apto no Centro") || !strings.Contains(text, "2. Casa na praia") {
		t.Errorf("itens numerados ausentes: %q", text)
	}
	if !strings.Contains(text, "300000") {
		t.Errorf("preço ausente: %q", text)
	}

	fallback := RenderAgentText(&models.ResolveOutput{Matched: false, Mensagem: "Não achei."})
	if fallback != "Não achei." {
		t.Errorf("fallback = %q", fallback)
	}
}

func TestResolveCacheKeyNormaliza(t *testing.T) {
	a := resolveCacheKey("e", "Apartamento em FLORIANÓPOLIS", 1, 10)
	b := resolveCacheKey("e", "apartamento em florianopolis", 1, 10)
	if a != b {
		t.Error("textos equivalentes deveriam gerar a mesma chave")
	}
	if a == resolveCacheKey("e", "apartamento em florianopolis", 2, 10) {
		t.Error("página diferente deveria gerar chave diferente")
	}
	if !strings.HasPrefix(a, "resolve:") {
		t.Errorf("chave sem prefixo: %q", a)
	}
}

func ExampleRenderAgentText() {
	out := &models.ResolveOutput{
		Matched: true,
		RunSearchOutput: models.RunSearchOutput{
			Items: []models.NormalizedItem{{"titulo": "Apto no Kobrasol", "preco": "450000"}},
		},
	}
	fmt.Println(RenderAgentText(out))
	// Output: 1. Apto no Kobrasol (R$ 450000)
}
