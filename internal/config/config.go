// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta HTTP da API (default: 8080)
//
// ## Persistência
//   - DATABASE_URL: URL de conexão Postgres; vazio usa o store em memória
//   - REDIS_URL: URL de conexão Redis para o cache de respostas; vazio usa cache em memória
//
// ## Gemini
//   - GEMINI_API_KEY: Chave da API Google Gemini (vazio desliga a inferência via LLM)
//   - GEMINI_CHAT_MODEL: Modelo para inferência de rolemap (default: gemini-2.0-flash)
//   - GEMINI_TIMEOUT_SECONDS: Timeout das chamadas ao Gemini (default: 20)
//
// ## Tracing
//   - TRACING_ENABLED: Habilita export OTLP (default: false)
//   - TRACING_ENDPOINT: Endpoint OTLP gRPC (default: localhost:4317)
//
// ## Busca
//   - SEARCH_PROVIDER_TIMEOUT_SECONDS: Timeout default das chamadas aos provedores (default: 8)
//   - SEARCH_RESOLVE_CACHE_TTL_SECONDS: TTL do cache do fluxo conversacional (default: 120)
//   - SEARCH_MAX_PAGE_SIZE: Teto do pageSize aceito pela API (default: 100)
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// Persistência
	DatabaseURL string
	RedisURL    string

	// Gemini configuration
	GeminiAPIKey         string
	GeminiChatModel      string
	GeminiTimeoutSeconds int

	// Tracing configuration
	TracingEnabled  bool
	TracingEndpoint string

	// Search configuration
	Search SearchConfig
}

// SearchConfig contains search-specific configuration
type SearchConfig struct {
	// Default timeout for provider calls in seconds (default 8)
	ProviderTimeoutSeconds int

	// Resolve cache TTL in seconds (default 120)
	ResolveCacheTTLSeconds int

	// Max accepted page size (default 100)
	MaxPageSize int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		// Gemini configuration
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiChatModel:      getEnv("GEMINI_CHAT_MODEL", "gemini-2.0-flash"),
		GeminiTimeoutSeconds: getEnvInt("GEMINI_TIMEOUT_SECONDS", 20),

		// Tracing configuration
		TracingEnabled:  getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),

		// Search configuration
		Search: SearchConfig{
			ProviderTimeoutSeconds: getEnvInt("SEARCH_PROVIDER_TIMEOUT_SECONDS", 8),
			ResolveCacheTTLSeconds: getEnvInt("SEARCH_RESOLVE_CACHE_TTL_SECONDS", 120),
			MaxPageSize:            getEnvInt("SEARCH_MAX_PAGE_SIZE", 100),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
