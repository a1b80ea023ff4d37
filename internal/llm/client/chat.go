package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"storynarrator/internal/models"
)

const defaultMaxTokens = 2048

// ChatGenerator adapts an eino chat model to the Generator contract.
type ChatGenerator struct {
	model model.BaseChatModel
}

func NewChatGenerator(m model.BaseChatModel) *ChatGenerator {
	return &ChatGenerator{model: m}
}

func (g *ChatGenerator) Generate(ctx context.Context, prompt string) models.GenerationResult {
	out, err := g.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		if msg, ok := contextFailure(err); ok {
			return models.Failure(msg)
		}
		return models.Failure(strings.TrimSpace(err.Error()))
	}
	if out == nil {
		return models.Success("")
	}
	return models.Success(strings.TrimSpace(out.Content))
}

// NewOpenAIGenerator talks to the OpenAI chat API, or to any compatible
// endpoint such as Ollama's when baseURL is set.
func NewOpenAIGenerator(ctx context.Context, apiKey, modelName, baseURL string) (*ChatGenerator, error) {
	baseURL = strings.TrimSpace(baseURL)
	if apiKey == "" {
		if baseURL == "" {
			return nil, fmt.Errorf("API key for %s is not configured", ProviderOpenAI)
		}
		// Ollama ignores the key but the client insists on one.
		apiKey = "ollama"
	}
	m, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		Model:   modelName,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create openai model: %w", err)
	}
	return NewChatGenerator(m), nil
}

func NewClaudeGenerator(ctx context.Context, apiKey, modelName string, maxTokens int) (*ChatGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key for %s is not configured", ProviderAnthropic)
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	m, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:    apiKey,
		Model:     modelName,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create claude model: %w", err)
	}
	return NewChatGenerator(m), nil
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*ChatGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key for %s is not configured", ProviderGemini)
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	m, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: cli,
		Model:  modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini model: %w", err)
	}
	return NewChatGenerator(m), nil
}
