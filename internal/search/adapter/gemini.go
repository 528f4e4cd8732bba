package adapter

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// GeminiConfig configuração para o adapter Gemini
type GeminiConfig struct {
	ChatModel      string
	TimeoutSeconds int
}

// DefaultGeminiConfig retorna configuração padrão
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		ChatModel:      "gemini-2.0-flash",
		TimeoutSeconds: 20,
	}
}

// GeminiAdapter encapsula operações de chat com a API Gemini
type GeminiAdapter struct {
	client *genai.Client
	config GeminiConfig
}

// NewGeminiAdapter cria um novo adapter para Gemini
func NewGeminiAdapter(client *genai.Client, cfg GeminiConfig) *GeminiAdapter {
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultGeminiConfig().ChatModel
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultGeminiConfig().TimeoutSeconds
	}

	return &GeminiAdapter{
		client: client,
		config: cfg,
	}
}

// GenerateJSON envia um prompt esperando JSON estrito na resposta.
// Temperature 0 para determinismo.
func (g *GeminiAdapter) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("cliente Gemini não inicializado")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.config.TimeoutSeconds)*time.Second)
	defer cancel()

	content := genai.NewContentFromText(prompt, genai.RoleUser)
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.config.ChatModel, []*genai.Content{content}, config)
	if err != nil {
		return "", fmt.Errorf("erro na chamada ao Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("resposta vazia do Gemini")
	}

	part := resp.Candidates[0].Content.Parts[0]
	return fmt.Sprintf("%v", part), nil
}

// IsAvailable verifica se o cliente está disponível
func (g *GeminiAdapter) IsAvailable() bool {
	return g != nil && g.client != nil
}

// GetChatModel retorna o modelo de chat configurado
func (g *GeminiAdapter) GetChatModel() string {
	return g.config.ChatModel
}
