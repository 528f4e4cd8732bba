package adapter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vendaflow/app-inventario-search/internal/models"
)

// DefaultProviderTimeout é o timeout padrão para chamadas ao provedor
const DefaultProviderTimeout = 8 * time.Second

// ProviderRequest descreve uma chamada HTTP genérica a um provedor
type ProviderRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   url.Values
	Body    any
	Timeout time.Duration
}

// ProviderResponse é a resposta bruta do provedor. Status não-2xx não
// é erro aqui; o chamador inspeciona Status.
type ProviderResponse struct {
	Status  int
	Headers http.Header
	Body    []byte
	// JSON é o corpo decodificado quando parseável, senão nil
	JSON any
}

// ProviderClient executa chamadas HTTP contra APIs de provedores
// externos arbitrários
type ProviderClient struct {
	httpClient     *http.Client
	defaultTimeout time.Duration
}

// NewProviderClient cria um novo cliente de provedor. O defaultTimeout
// vale para requisições sem timeout próprio; zero usa
// DefaultProviderTimeout.
func NewProviderClient(defaultTimeout time.Duration) *ProviderClient {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultProviderTimeout
	}
	return &ProviderClient{
		// Timeout é controlado por requisição via context
		httpClient:     &http.Client{},
		defaultTimeout: defaultTimeout,
	}
}

// Do executa uma chamada. Falhas de rede (DNS, conexão, timeout)
// retornam erro; qualquer status HTTP retorna resposta.
func (c *ProviderClient) Do(ctx context.Context, req *ProviderRequest) (*ProviderResponse, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar corpo da requisição: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	fullURL := req.URL
	if len(req.Query) > 0 {
		parsed, err := url.Parse(req.URL)
		if err != nil {
			return nil, fmt.Errorf("url inválida: %w", err)
		}
		q := parsed.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		parsed.RawQuery = q.Encode()
		fullURL = parsed.String()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição: %w", err)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do provedor: %w", err)
	}

	out := &ProviderResponse{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    raw,
	}

	// Decodificação best-effort; corpo não-JSON fica apenas em Body
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err == nil {
		out.JSON = decoded
	}

	return out, nil
}

// ApplyAuth injeta a autenticação configurada na requisição
func ApplyAuth(req *ProviderRequest, auth models.Auth) {
	auth = auth.Normalized()
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	if req.Query == nil {
		req.Query = url.Values{}
	}

	switch auth.Type {
	case models.AuthAPIKey:
		name := auth.ParamName
		if name == "" {
			name = "api_key"
		}
		value := auth.Prefix + auth.Key
		if auth.Location == "query" {
			req.Query.Set(name, value)
		} else {
			req.Headers[name] = value
		}
	case models.AuthBearer:
		prefix := auth.Prefix
		if prefix == "" {
			prefix = "Bearer "
		}
		req.Headers["Authorization"] = prefix + auth.Token
	case models.AuthBasic:
		creds := base64.StdEncoding.EncodeToString([]byte(auth.Username + ":" + auth.Password))
		req.Headers["Authorization"] = "Basic " + creds
	}
}
