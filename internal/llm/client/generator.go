package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"storynarrator/internal/models"
)

// Generator turns a prompt into a story. Implementations never return a Go
// error: every outcome is classified into a GenerationResult.
type Generator interface {
	Generate(ctx context.Context, prompt string) models.GenerationResult
}

const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// ProcessGenerator runs `ollama run <model> <prompt>` once per call.
type ProcessGenerator struct {
	runner Runner
	binary string
	model  string
}

func NewProcessGenerator(runner Runner, binary, model string) *ProcessGenerator {
	if runner == nil {
		runner = NewExecRunner()
	}
	if strings.TrimSpace(binary) == "" {
		binary = "ollama"
	}
	return &ProcessGenerator{runner: runner, binary: binary, model: model}
}

func (g *ProcessGenerator) Generate(ctx context.Context, prompt string) models.GenerationResult {
	out, err := g.runner.Run(ctx, Command{
		Name: g.binary,
		Args: []string{"run", g.model, prompt},
	})
	if err == nil {
		return models.Success(strings.TrimSpace(out.Stdout))
	}
	if msg, ok := contextFailure(err); ok {
		return models.Failure(msg)
	}
	if stderr := strings.TrimSpace(out.Stderr); stderr != "" {
		return models.Failure(stderr)
	}
	log.Printf("generator: %s run %s exited with %d: %v", g.binary, g.model, out.ExitCode, err)
	return models.Failure(err.Error())
}

func contextFailure(err error) (string, bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "generation timed out", true
	case errors.Is(err, context.Canceled):
		return "generation cancelled", true
	}
	return "", false
}

// Options selects and configures a Generator.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	// BaseURL overrides the OpenAI endpoint, e.g. Ollama's /v1 API.
	BaseURL string
	// Binary is the ollama executable for the process provider.
	Binary    string
	Runner    Runner
	MaxTokens int
}

// NewGenerator builds the Generator for opts.Provider.
func NewGenerator(ctx context.Context, opts Options) (Generator, error) {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	switch strings.TrimSpace(opts.Provider) {
	case ProviderOllama, "":
		return NewProcessGenerator(opts.Runner, opts.Binary, model), nil
	case ProviderOpenAI:
		return NewOpenAIGenerator(ctx, opts.APIKey, model, opts.BaseURL)
	case ProviderAnthropic:
		return NewClaudeGenerator(ctx, opts.APIKey, model, opts.MaxTokens)
	case ProviderGemini:
		return NewGeminiGenerator(ctx, opts.APIKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", opts.Provider)
	}
}
