package main

import (
	"context"
	"log"
	"time"

	"google.golang.org/genai"

	_ "github.com/vendaflow/app-inventario-search/docs"
	"github.com/vendaflow/app-inventario-search/internal/api/routes"
	"github.com/vendaflow/app-inventario-search/internal/cache"
	"github.com/vendaflow/app-inventario-search/internal/config"
	"github.com/vendaflow/app-inventario-search/internal/observability"
	"github.com/vendaflow/app-inventario-search/internal/search"
	"github.com/vendaflow/app-inventario-search/internal/search/adapter"
	"github.com/vendaflow/app-inventario-search/internal/store"
)

// @title           Inventário Conversacional API
// @version         1.0
// @description     API multi-tenant que integra catálogos de inventário externos e resolve pedidos em linguagem natural para a integração certa

// @contact.name   VendaFlow
// @contact.url    https://vendaflow.com.br

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	cfg := config.LoadConfig()
	ctx := context.Background()

	observability.InitTracer(cfg)
	defer observability.ShutdownTracer()

	// Store: Postgres quando configurado, memória caso contrário
	var st store.IntegrationStore
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Erro ao inicializar o Postgres: %v", err)
		}
		defer pg.Close()
		st = pg
		log.Println("Store Postgres inicializado")
	} else {
		st = store.NewMemoryStore()
		log.Println("DATABASE_URL ausente, usando store em memória")
	}

	// Cache: Redis quando configurado, memória caso contrário
	var respCache cache.Cache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Erro ao inicializar o Redis: %v", err)
		}
		defer rc.Close()
		respCache = rc
		log.Println("Cache Redis inicializado")
	} else {
		respCache = cache.NewMemoryCache()
		log.Println("REDIS_URL ausente, usando cache em memória")
	}

	// LLM: sem chave a inferência degrada para a heurística estrutural
	var gemini *adapter.GeminiAdapter
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			log.Fatalf("Erro ao criar cliente Gemini: %v", err)
		}
		gemini = adapter.NewGeminiAdapter(client, adapter.GeminiConfig{
			ChatModel:      cfg.GeminiChatModel,
			TimeoutSeconds: cfg.GeminiTimeoutSeconds,
		})
		log.Printf("Cliente Gemini inicializado (modelo %s)", gemini.GetChatModel())
	} else {
		gemini = adapter.NewGeminiAdapter(nil, adapter.GeminiConfig{})
		log.Println("GEMINI_API_KEY ausente, inferência de rolemap usará apenas a heurística estrutural")
	}

	engine := search.NewEngine(
		st,
		adapter.NewProviderClient(time.Duration(cfg.Search.ProviderTimeoutSeconds)*time.Second),
		gemini,
		respCache,
		time.Duration(cfg.Search.ResolveCacheTTLSeconds)*time.Second,
		cfg.Search.MaxPageSize,
	)

	r := routes.SetupRouter(engine)

	log.Printf("Servidor iniciado na porta %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}
}
