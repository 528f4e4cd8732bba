package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/vendaflow/app-inventario-search/internal/models"
)

func TestApplyAuth(t *testing.T) {
	tests := []struct {
		name        string
		auth        models.Auth
		wantHeaders map[string]string
		wantQuery   map[string]string
	}{
		{
			name:        "api key no header",
			auth:        models.Auth{Type: models.AuthAPIKey, ParamName: "X-Api-Key", Key: "abc"},
			wantHeaders: map[string]string{"X-Api-Key": "abc"},
		},
		{
			name:      "api key na query",
			auth:      models.Auth{Type: models.AuthAPIKey, ParamName: "key", Location: "query", Key: "abc"},
			wantQuery: map[string]string{"key": "abc"},
		},
		{
			name:        "api key sem nome usa api_key",
			auth:        models.Auth{Type: models.AuthAPIKey, Key: "abc"},
			wantHeaders: map[string]string{"api_key": "abc"},
		},
		{
			name:        "bearer com prefixo padrão",
			auth:        models.Auth{Type: models.AuthBearer, Token: "tok-123"},
			wantHeaders: map[string]string{"Authorization": "Bearer tok-123"},
		},
		{
			name:        "basic codifica usuário e senha",
			auth:        models.Auth{Type: models.AuthBasic, Username: "u", Password: "p"},
			wantHeaders: map[string]string{"Authorization": "Basic dTpw"},
		},
		{
			name: "none não injeta nada",
			auth: models.Auth{Type: models.AuthNone},
		},
		{
			name: "tipo desconhecido vira none",
			auth: models.Auth{Type: "oauth99", Token: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &ProviderRequest{Headers: map[string]string{}, Query: url.Values{}}
			ApplyAuth(req, tt.auth)

			if len(req.Headers) != len(tt.wantHeaders) {
				t.Errorf("Headers = %v, want %v", req.Headers, tt.wantHeaders)
			}
			for k, v := range tt.wantHeaders {
				if req.Headers[k] != v {
					t.Errorf("Headers[%q] = %q, want %q", k, req.Headers[k], v)
				}
			}
			if len(req.Query) != len(tt.wantQuery) {
				t.Errorf("Query = %v, want %v", req.Query, tt.wantQuery)
			}
			for k, v := range tt.wantQuery {
				if req.Query.Get(k) != v {
					t.Errorf("Query[%q] = %q, want %q", k, req.Query.Get(k), v)
				}
			}
		})
	}
}

func TestProviderClientDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cidade") != "florianopolis" {
			t.Errorf("query cidade = %q", r.URL.Query().Get("cidade"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"items":[{"id":1}]}}`))
	}))
	defer srv.Close()

	client := NewProviderClient(0)
	q := url.Values{}
	q.Set("cidade", "florianopolis")

	resp, err := client.Do(context.Background(), &ProviderRequest{
		Method: "GET",
		URL:    srv.URL,
		Query:  q,
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d", resp.Status)
	}
	if resp.JSON == nil {
		t.Fatal("corpo JSON deveria ter sido decodificado")
	}
}

func TestProviderClientDoPostEnviaBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decodificando corpo: %v", err)
		}
		if body["bairro"] != "kobrasol" {
			t.Errorf("bairro = %v", body["bairro"])
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewProviderClient(0)
	resp, err := client.Do(context.Background(), &ProviderRequest{
		Method: "POST",
		URL:    srv.URL,
		Body:   map[string]any{"bairro": "kobrasol"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d", resp.Status)
	}
}

func TestProviderClientDoStatusNao2xxNaoEhErro(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"credenciais inválidas"}`))
	}))
	defer srv.Close()

	client := NewProviderClient(0)
	resp, err := client.Do(context.Background(), &ProviderRequest{Method: "GET", URL: srv.URL})
	if err != nil {
		t.Fatalf("status não-2xx não deveria virar erro aqui: %v", err)
	}
	if resp.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d", resp.Status)
	}
}

func TestProviderClientDoTimeoutConfigurado(t *testing.T) {
	slow := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-slow
	}))
	defer srv.Close()
	defer close(slow)

	client := NewProviderClient(50 * time.Millisecond)
	_, err := client.Do(context.Background(), &ProviderRequest{Method: "GET", URL: srv.URL})
	if err == nil {
		t.Fatal("requisição além do timeout do cliente deveria falhar")
	}
}

func TestProviderClientDoCorpoNaoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>não sou json</html>"))
	}))
	defer srv.Close()

	client := NewProviderClient(0)
	resp, err := client.Do(context.Background(), &ProviderRequest{Method: "GET", URL: srv.URL})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.JSON != nil {
		t.Errorf("corpo não-JSON não deveria ser decodificado: %v", resp.JSON)
	}
	if len(resp.Body) == 0 {
		t.Error("corpo bruto deveria ser preservado")
	}
}
