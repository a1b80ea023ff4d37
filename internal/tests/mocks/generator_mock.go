package mocks

import (
	"context"
	"sync"

	"storynarrator/internal/llm/client"
	"storynarrator/internal/models"
)

type GeneratorMock struct {
	GenerateFunc func(ctx context.Context, prompt string) models.GenerationResult

	mu      sync.Mutex
	Prompts []string
}

func (m *GeneratorMock) Generate(ctx context.Context, prompt string) models.GenerationResult {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return models.Success("Once upon a time...")
}

func (m *GeneratorMock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

type ImageFetcherMock struct {
	FetchFunc func(ctx context.Context, prompt string) client.ImageResult
	Prompts   []string
}

func (m *ImageFetcherMock) Fetch(ctx context.Context, prompt string) client.ImageResult {
	m.Prompts = append(m.Prompts, prompt)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, prompt)
	}
	return client.ImageResult{References: []string{}}
}

type SpeakerMock struct {
	SpeakFunc func(ctx context.Context, text, languageHint string) error
	Spoken    []string
}

func (m *SpeakerMock) Speak(ctx context.Context, text, languageHint string) error {
	m.Spoken = append(m.Spoken, text)
	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text, languageHint)
	}
	return nil
}

type APIKeyProviderMock struct {
	Keys map[string]string
	Err  error
}

func (m *APIKeyProviderMock) GetApiKey(provider string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Keys[provider], nil
}
