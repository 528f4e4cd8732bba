package inference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/search/adapter"
)

func TestInferSchema(t *testing.T) {
	var pagesRequested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesRequested = append(pagesRequested, r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"items":[{"Titulo":"Apto Centro","Preco":300000}],"total":37},"page":1,"pageSize":10}`))
	}))
	defer srv.Close()

	d := &models.IntegrationDescriptor{
		ID:         "int-1",
		Endpoint:   models.Endpoint{Method: "GET", URL: srv.URL},
		Pagination: models.Pagination{Type: models.PaginationPage},
	}

	inf := NewSchemaInferencer(adapter.NewProviderClient(0))
	result, err := inf.InferSchema(context.Background(), d)
	if err != nil {
		t.Fatalf("InferSchema: %v", err)
	}

	if len(result.Samples) != 2 {
		t.Errorf("Samples = %d, want 2 (paginação page amostra duas páginas)", len(result.Samples))
	}
	if len(pagesRequested) != 2 || pagesRequested[1] != "2" {
		t.Errorf("páginas requisitadas = %v, want segunda com page=2", pagesRequested)
	}
	if result.ItemsPathGuess != "data.items" {
		t.Errorf("ItemsPathGuess = %q, want data.items", result.ItemsPathGuess)
	}
	if !reflect.DeepEqual(result.TotalPathCandidates, []string{"data.total"}) {
		t.Errorf("TotalPathCandidates = %v, want [data.total]", result.TotalPathCandidates)
	}
	if result.PaginationSuggest.Type != models.PaginationPage {
		t.Errorf("PaginationSuggest = %s, want page", result.PaginationSuggest.Type)
	}
	if result.SampleItem == nil {
		t.Error("SampleItem não deveria ser nil")
	}
}

func TestInferSchemaSegundaPaginaFalhaNaoPropaga(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
			return
		}
		w.Write([]byte(`{"items":[{"id":1}]}`))
	}))
	defer srv.Close()

	d := &models.IntegrationDescriptor{
		ID:         "int-2",
		Endpoint:   models.Endpoint{URL: srv.URL},
		Pagination: models.Pagination{Type: models.PaginationPage},
	}

	result, err := NewSchemaInferencer(adapter.NewProviderClient(0)).InferSchema(context.Background(), d)
	if err != nil {
		t.Fatalf("falha da página 2 não deveria propagar: %v", err)
	}
	if result.ItemsPathGuess != "items" {
		t.Errorf("ItemsPathGuess = %q, want items", result.ItemsPathGuess)
	}
}

func TestInferSchemaEndpointForaDoAr(t *testing.T) {
	d := &models.IntegrationDescriptor{
		ID:       "int-3",
		Endpoint: models.Endpoint{URL: "http://127.0.0.1:1/nada"},
	}

	_, err := NewSchemaInferencer(adapter.NewProviderClient(0)).InferSchema(context.Background(), d)
	if err == nil {
		t.Fatal("falha da primeira requisição deveria propagar")
	}
	var provErr *models.ProviderRequestError
	if !errors.As(err, &provErr) {
		t.Errorf("erro deveria ser ProviderRequestError, got %T", err)
	}
}

func TestInferSchemaSemURL(t *testing.T) {
	d := &models.IntegrationDescriptor{ID: "int-4"}
	_, err := NewSchemaInferencer(adapter.NewProviderClient(0)).InferSchema(context.Background(), d)
	if err == nil {
		t.Fatal("descriptor sem url deveria falhar")
	}
}

func TestSuggestPagination(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.PaginationType
	}{
		{"Page com pageSize", `{"page":1,"pageSize":10,"items":[]}`, models.PaginationPage},
		{"Page com snake_case", `{"page":1,"page_size":10}`, models.PaginationPage},
		{"Offset com limit", `{"offset":0,"limit":20}`, models.PaginationOffset},
		{"Cursor", `{"nextCursor":"abc","items":[]}`, models.PaginationCursor},
		{"Nada", `{"items":[]}`, models.PaginationNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggestPagination(decodeSample(t, tt.raw))
			if got.Type != tt.want {
				t.Errorf("suggestPagination = %s, want %s", got.Type, tt.want)
			}
		})
	}
}
