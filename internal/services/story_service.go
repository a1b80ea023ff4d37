package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"sync"

	"storynarrator/internal/events"
	"storynarrator/internal/llm/client"
	"storynarrator/internal/models"
)

// Speaker narrates text in the given language, blocking until done.
type Speaker interface {
	Speak(ctx context.Context, text, languageHint string) error
}

// APIKeyProvider looks up provider API keys; empty means none stored.
type APIKeyProvider interface {
	GetApiKey(provider string) (string, error)
}

type GeneratorFactory func(ctx context.Context, opts client.Options) (client.Generator, error)

type ImageFetcherFactory func(model string) client.ImageFetcher

type StoryServiceConfig struct {
	Catalog         CatalogService
	Settings        AppSettingsService
	Keys            APIKeyProvider
	Speaker         Speaker
	NewGenerator    GeneratorFactory
	NewImageFetcher ImageFetcherFactory
	Runner          client.Runner
	OllamaBinary    string
	OpenAIBaseURL   string
}

type generatorRuntime struct {
	key       string
	generator client.Generator
}

// generationRun is the cancel handle of one Generate call.
type generationRun struct {
	cancel context.CancelFunc
}

// StoryService runs one generate action: validate, prompt, generate, then fan
// the story out to the session history, the download artifact and, when
// enabled, the image model.
type StoryService struct {
	context context.Context
	cfg     StoryServiceConfig

	runtimeMu sync.Mutex
	runtime   *generatorRuntime

	cancelMu sync.Mutex
	runs     []*generationRun
}

func NewStoryService(cfg StoryServiceConfig) *StoryService {
	if cfg.NewGenerator == nil {
		cfg.NewGenerator = client.NewGenerator
	}
	if cfg.NewImageFetcher == nil {
		runner, binary := cfg.Runner, cfg.OllamaBinary
		cfg.NewImageFetcher = func(model string) client.ImageFetcher {
			return client.NewProcessImageFetcher(runner, binary, model)
		}
	}
	return &StoryService{cfg: cfg}
}

func (s *StoryService) Startup(ctx context.Context) error {
	s.context = ctx
	if s.cfg.Catalog == nil {
		return fmt.Errorf("catalog service not configured")
	}
	if s.cfg.Settings == nil {
		return fmt.Errorf("app settings service not configured")
	}
	return nil
}

// Generate produces one story for session. A model failure is reported in
// the outcome, not as an error, and leaves the session untouched; errors are
// reserved for invalid requests and unusable configuration.
func (s *StoryService) Generate(ctx context.Context, session *StorySession, req models.GenerationRequest) (*models.StoryOutcome, error) {
	if session == nil {
		return nil, fmt.Errorf("session is required")
	}
	req.Language = strings.TrimSpace(req.Language)
	req.Interest = strings.TrimSpace(req.Interest)
	if err := s.cfg.Catalog.ValidateRequest(req); err != nil {
		return nil, err
	}

	settings, err := s.cfg.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	generator, err := s.generatorFor(ctx, settings)
	if err != nil {
		return nil, err
	}

	ctx = events.WithSession(ctx, session.ID())
	prompt := BuildPrompt(req)
	events.Emit(ctx, events.StoryGenerate, events.NewInfo("generating story").
		WithMetadata("provider", settings.Provider).
		WithMetadata("model", settings.StoryModel))

	runCtx, cancel := context.WithTimeout(ctx, settings.Timeout())
	run := s.track(cancel)
	result := generator.Generate(runCtx, prompt)
	s.untrack(run)
	cancel()

	outcome := &models.StoryOutcome{Prompt: prompt, Result: result, Images: []string{}}
	if !result.IsSuccess() {
		log.Printf("story: generation failed: %s", result.Message)
		events.Emit(ctx, events.StoryFailed, events.NewError(result.Message))
		return outcome, nil
	}

	session.Append(result.Text)
	artifact := BuildDownload(result.Text, req.Language, req.Interest)
	outcome.Artifact = &artifact

	if settings.ImagesEnabled {
		outcome.Images = s.fetchImages(ctx, settings, prompt)
	}

	events.Emit(ctx, events.StoryGenerated, events.NewSuccess("story generated").
		WithMetadata("filename", artifact.Filename))
	return outcome, nil
}

// fetchImages degrades to no images; the error is logged and dropped.
func (s *StoryService) fetchImages(ctx context.Context, settings *models.AppSettings, prompt string) []string {
	imgCtx, cancel := context.WithTimeout(ctx, settings.Timeout())
	defer cancel()

	res := s.cfg.NewImageFetcher(settings.ImageModel).Fetch(imgCtx, prompt)
	if res.Err != nil {
		log.Printf("story: images unavailable: %v", res.Err)
		events.Emit(ctx, events.StoryImages, events.NewWarn("no related images"))
	}
	return res.Images()
}

// Cancel stops every in-flight generation, reporting whether there was one.
func (s *StoryService) Cancel() bool {
	s.cancelMu.Lock()
	runs := s.runs
	s.runs = nil
	s.cancelMu.Unlock()

	for _, run := range runs {
		run.cancel()
	}
	return len(runs) > 0
}

func (s *StoryService) track(cancel context.CancelFunc) *generationRun {
	run := &generationRun{cancel: cancel}
	s.cancelMu.Lock()
	s.runs = append(s.runs, run)
	s.cancelMu.Unlock()
	return run
}

// untrack drops only run; overlapping generations keep their handles.
func (s *StoryService) untrack(run *generationRun) {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	for i, r := range s.runs {
		if r == run {
			s.runs = append(s.runs[:i], s.runs[i+1:]...)
			return
		}
	}
}

// Narrate reads a story aloud. It blocks until speech finishes.
func (s *StoryService) Narrate(ctx context.Context, text, language string) error {
	if s.cfg.Speaker == nil {
		return fmt.Errorf("narration is not available")
	}
	events.Emit(ctx, events.StoryNarration, events.NewInfo("narrating story").WithMetadata("language", language))
	if err := s.cfg.Speaker.Speak(ctx, text, language); err != nil {
		events.Emit(ctx, events.StoryNarration, events.NewError(err.Error()))
		return fmt.Errorf("narrate story: %w", err)
	}
	events.Emit(ctx, events.StoryNarration, events.NewSuccess("narration finished"))
	return nil
}

// generatorFor reuses the generator built for the same provider, model and
// API key, so a key stored after a failed run takes effect on the next one.
func (s *StoryService) generatorFor(ctx context.Context, settings *models.AppSettings) (client.Generator, error) {
	provider := strings.TrimSpace(settings.Provider)
	model := strings.TrimSpace(settings.StoryModel)

	opts := client.Options{
		Provider: provider,
		Model:    model,
		Binary:   s.cfg.OllamaBinary,
		Runner:   s.cfg.Runner,
	}
	if provider == client.ProviderOpenAI {
		opts.BaseURL = s.cfg.OpenAIBaseURL
	}
	if provider != client.ProviderOllama && s.cfg.Keys != nil {
		apiKey, err := s.cfg.Keys.GetApiKey(provider)
		if err != nil {
			return nil, fmt.Errorf("failed to get API key for %s: %w", provider, err)
		}
		opts.APIKey = apiKey
	}
	key := runtimeKey(opts)

	s.runtimeMu.Lock()
	defer s.runtimeMu.Unlock()
	if s.runtime != nil && s.runtime.key == key {
		return s.runtime.generator, nil
	}

	generator, err := s.cfg.NewGenerator(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", provider, err)
	}
	s.runtime = &generatorRuntime{key: key, generator: generator}
	return generator, nil
}

// runtimeKey identifies a generator configuration without keeping the raw key.
func runtimeKey(opts client.Options) string {
	sum := sha256.Sum256([]byte(opts.APIKey))
	return opts.Provider + "|" + opts.Model + "|" + hex.EncodeToString(sum[:8])
}
