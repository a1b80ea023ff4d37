package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"storynarrator/internal/models"
	"storynarrator/internal/repositories"
)

const maxTimeoutSeconds = 3600

type AppSettingsService interface {
	Get() (*models.AppSettings, error)
	Update(settings models.AppSettings) (*models.AppSettings, error)
	Startup(ctx context.Context)
}

type appSettingsService struct {
	appSettings repositories.AppSettingsRepository
	catalog     CatalogService
	context     context.Context
}

func (s *appSettingsService) Startup(ctx context.Context) {
	s.context = ctx
}

// NewAppSettingsService validates providers against catalog when it is non-nil.
func NewAppSettingsService(appSettings repositories.AppSettingsRepository, catalog CatalogService) AppSettingsService {
	return &appSettingsService{appSettings: appSettings, catalog: catalog}
}

func (s *appSettingsService) ctx() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

func (s *appSettingsService) Get() (*models.AppSettings, error) {
	return s.appSettings.Get(s.ctx())
}

func (s *appSettingsService) Update(settings models.AppSettings) (*models.AppSettings, error) {
	theme := strings.TrimSpace(settings.Theme)
	provider := strings.TrimSpace(settings.Provider)
	storyModel := strings.TrimSpace(settings.StoryModel)
	imageModel := strings.TrimSpace(settings.ImageModel)

	if theme == "" {
		return nil, errors.New("theme is required")
	}
	if theme != "light" && theme != "dark" && theme != "system" {
		return nil, errors.New("theme must be 'light', 'dark', or 'system'")
	}
	if provider == "" {
		return nil, errors.New("provider is required")
	}
	if s.catalog != nil && !s.catalog.HasProvider(provider) {
		return nil, errors.New("unsupported provider: " + provider)
	}
	if storyModel == "" {
		return nil, errors.New("story model is required")
	}
	if settings.ImagesEnabled && imageModel == "" {
		return nil, errors.New("image model is required when images are enabled")
	}
	if settings.TimeoutSeconds <= 0 || settings.TimeoutSeconds > maxTimeoutSeconds {
		return nil, errors.New("timeout must be between 1 and 3600 seconds")
	}

	current, err := s.appSettings.Get(s.ctx())
	if err != nil {
		return nil, err
	}

	current.Theme = theme
	current.Provider = provider
	current.StoryModel = storyModel
	current.ImageModel = imageModel
	current.ImagesEnabled = settings.ImagesEnabled
	current.TimeoutSeconds = settings.TimeoutSeconds
	current.UpdatedAt = time.Now()

	if err := s.appSettings.Update(s.ctx(), current); err != nil {
		return nil, err
	}

	return current, nil
}
