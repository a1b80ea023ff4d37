package services

import (
	"github.com/99designs/keyring"
	"gorm.io/gorm"

	"storynarrator/internal/config"
	"storynarrator/internal/llm/client"
	"storynarrator/internal/repositories"
	"storynarrator/internal/speech"
)

// Services aggregates the services bound to the frontend.
// Fields use plural names to align with Go conventions seen in
// service/store containers.
type Services struct {
	AppSettings     AppSettingsService
	Catalog         CatalogService
	Keys            *KeyringService
	Stories         *StoryService
	DefaultLanguage *DefaultLanguageStore
}

// NewServices wires the service container. ring may be nil when no OS keyring
// is available; only the local ollama provider works then.
func NewServices(db *gorm.DB, cfg config.Config, ring keyring.Keyring) *Services {
	runner := client.NewExecRunner()
	catalog := NewCatalogService(nil)
	settings := NewAppSettingsService(repositories.NewAppSettingsRepository(db, cfg.DefaultSettings()), catalog)
	keys := NewKeyringService(ring)

	var apiKeys APIKeyProvider
	if ring != nil {
		apiKeys = keys
	}

	stories := NewStoryService(StoryServiceConfig{
		Catalog:       catalog,
		Settings:      settings,
		Keys:          apiKeys,
		Speaker:       speech.NewNarrator(speech.NewEspeakEngine(runner, cfg.EspeakBinary)),
		Runner:        runner,
		OllamaBinary:  cfg.OllamaBinary,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
	})

	return &Services{
		AppSettings:     settings,
		Catalog:         catalog,
		Keys:            keys,
		Stories:         stories,
		DefaultLanguage: NewDefaultLanguageStore(DefaultLanguagePath),
	}
}
