package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"storynarrator/internal/events"
	"storynarrator/internal/models"
	"storynarrator/internal/services"
)

// App struct
type App struct {
	ctx      context.Context
	services *services.Services
	dbClose  func() error

	sessionMu sync.Mutex
	session   *services.StorySession
}

// NewApp creates a new App application struct
func NewApp(svc *services.Services) *App {
	return &App{services: svc, session: services.NewStorySession()}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	events.EnableRuntimeEmitter(ctx)

	if err := a.services.Catalog.Startup(ctx); err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to load catalog: %v", err))
	}
	a.services.AppSettings.Startup(ctx)
	if err := a.services.Stories.Startup(ctx); err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to start story service: %v", err))
	}

	if load := a.services.DefaultLanguage.Load(); load.Err != nil {
		runtime.LogWarning(ctx, fmt.Sprintf("default language unreadable, using %s: %v", load.Language, load.Err))
	}
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	a.services.Stories.Cancel()
	a.currentSession().Reset()

	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

func (a *App) currentSession() *services.StorySession {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	return a.session
}

// GetCatalog returns the selectable languages, interests, lengths and models
func (a *App) GetCatalog() models.Catalog {
	return a.services.Catalog.Catalog()
}

// GetDefaultLanguage returns the stored default language, English if none
func (a *App) GetDefaultLanguage() string {
	return a.services.DefaultLanguage.LoadDefaultLanguage()
}

// SaveDefaultLanguage stores language as the default for future sessions
func (a *App) SaveDefaultLanguage(language string) error {
	language = strings.TrimSpace(language)
	if err := a.services.Catalog.ValidateLanguage(language); err != nil {
		return err
	}
	if err := a.services.DefaultLanguage.SaveDefaultLanguage(language); err != nil {
		runtime.LogError(a.ctx, err.Error())
		return err
	}
	runtime.LogInfo(a.ctx, fmt.Sprintf("default language set to %s", language))
	return nil
}

// GenerateStory runs one generate action for the current session. keywords is
// the raw comma-separated field and length may be empty.
func (a *App) GenerateStory(language, interest, length, keywords string) (*models.StoryOutcome, error) {
	parsedLength, err := models.ParseLength(length)
	if err != nil {
		return nil, err
	}
	req := models.GenerationRequest{
		Language: language,
		Interest: interest,
		Length:   parsedLength,
		Keywords: services.ParseKeywords(keywords),
	}

	outcome, err := a.services.Stories.Generate(a.ctx, a.currentSession(), req)
	if err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("generate story: %v", err))
		return nil, err
	}
	return outcome, nil
}

// CancelGeneration stops an in-flight generation; false if none was running
func (a *App) CancelGeneration() bool {
	return a.services.Stories.Cancel()
}

// ListHistory returns the stories generated in this session, oldest first
func (a *App) ListHistory() []string {
	return a.currentSession().List()
}

// ResetSession discards the current history and starts a new session
func (a *App) ResetSession() {
	a.sessionMu.Lock()
	a.session = services.NewStorySession()
	a.sessionMu.Unlock()
}

// NarrateStory speaks text with a voice for language, blocking until done
func (a *App) NarrateStory(text, language string) error {
	return a.services.Stories.Narrate(a.ctx, text, language)
}

// SaveStory asks where to save the artifact and writes it. It returns the
// chosen path, or "" when the dialog was cancelled.
func (a *App) SaveStory(artifact models.DownloadArtifact) (string, error) {
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save story",
		DefaultFilename: artifact.Filename,
		Filters: []runtime.FileFilter{
			{DisplayName: "Text files (*.txt)", Pattern: "*.txt"},
		},
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil
	}
	if err := services.WriteArtifactTo(path, artifact); err != nil {
		runtime.LogError(a.ctx, err.Error())
		return "", err
	}
	runtime.LogInfo(a.ctx, fmt.Sprintf("story saved to %s", path))
	return path, nil
}

// GetAppSettings returns the current application settings
func (a *App) GetAppSettings() (*models.AppSettings, error) {
	return a.services.AppSettings.Get()
}

// UpdateAppSettings validates and stores the given settings
func (a *App) UpdateAppSettings(settings models.AppSettings) (*models.AppSettings, error) {
	return a.services.AppSettings.Update(settings)
}
