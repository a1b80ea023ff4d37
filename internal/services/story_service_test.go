package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storynarrator/internal/llm/client"
	"storynarrator/internal/models"
	"storynarrator/internal/tests/mocks"
)

type storyFixture struct {
	svc       *StoryService
	generator *mocks.GeneratorMock
	images    *mocks.ImageFetcherMock
	speaker   *mocks.SpeakerMock
	settings  *models.AppSettings
	opts      []client.Options
}

func newStoryFixture(t *testing.T) *storyFixture {
	t.Helper()
	def := models.DefaultAppSettings()
	f := &storyFixture{
		generator: &mocks.GeneratorMock{},
		images:    &mocks.ImageFetcherMock{},
		speaker:   &mocks.SpeakerMock{},
		settings:  &def,
	}
	f.svc = NewStoryService(StoryServiceConfig{
		Catalog: newStartedCatalog(t),
		Settings: &mocks.AppSettingsServiceMock{
			GetFunc: func() (*models.AppSettings, error) {
				copied := *f.settings
				return &copied, nil
			},
		},
		Keys:    &mocks.APIKeyProviderMock{Keys: map[string]string{"openai": "sk-test"}},
		Speaker: f.speaker,
		NewGenerator: func(_ context.Context, opts client.Options) (client.Generator, error) {
			f.opts = append(f.opts, opts)
			return f.generator, nil
		},
		NewImageFetcher: func(string) client.ImageFetcher { return f.images },
	})
	require.NoError(t, f.svc.Startup(context.Background()))
	return f
}

func validRequest() models.GenerationRequest {
	return models.GenerationRequest{Language: "English", Interest: "adventure"}
}

func TestStoryService_SuccessAppendsAndExports(t *testing.T) {
	f := newStoryFixture(t)
	session := NewStorySession()

	for i := 0; i < 3; i++ {
		outcome, err := f.svc.Generate(context.Background(), session, validRequest())
		require.NoError(t, err)
		require.True(t, outcome.Result.IsSuccess())
		require.NotNil(t, outcome.Artifact)
		assert.Equal(t, "English_adventure_story.txt", outcome.Artifact.Filename)
		assert.Equal(t, outcome.Result.Text, outcome.Artifact.Content)
	}

	assert.Equal(t, 3, session.Len())
	assert.Equal(t, "Generate a story in English about adventure.", f.generator.Prompts[0])
	assert.Empty(t, f.images.Prompts)
}

func TestStoryService_FailureLeavesHistoryUntouched(t *testing.T) {
	f := newStoryFixture(t)
	f.generator.GenerateFunc = func(context.Context, string) models.GenerationResult {
		return models.Failure("model not found")
	}
	f.settings.ImagesEnabled = true
	session := NewStorySession()
	session.Append("earlier")

	outcome, err := f.svc.Generate(context.Background(), session, validRequest())
	require.NoError(t, err)
	assert.False(t, outcome.Result.IsSuccess())
	assert.Equal(t, "model not found", outcome.Result.Message)
	assert.Nil(t, outcome.Artifact)
	assert.Empty(t, outcome.Images)
	assert.Equal(t, []string{"earlier"}, session.List())
	assert.Empty(t, f.images.Prompts)
}

func TestStoryService_InvalidRequest(t *testing.T) {
	f := newStoryFixture(t)
	session := NewStorySession()

	_, err := f.svc.Generate(context.Background(), session, models.GenerationRequest{Language: "Klingon", Interest: "space"})
	assert.ErrorIs(t, err, ErrInvalidLanguage)

	_, err = f.svc.Generate(context.Background(), nil, validRequest())
	assert.EqualError(t, err, "session is required")

	assert.Equal(t, 0, f.generator.Calls())
}

func TestStoryService_ImagesWhenEnabled(t *testing.T) {
	f := newStoryFixture(t)
	f.settings.ImagesEnabled = true
	f.images.FetchFunc = func(context.Context, string) client.ImageResult {
		return client.ImageResult{References: []string{"img1.png", "img2.png"}}
	}

	outcome, err := f.svc.Generate(context.Background(), NewStorySession(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"img1.png", "img2.png"}, outcome.Images)
	assert.Equal(t, []string{outcome.Prompt}, f.images.Prompts)
}

func TestStoryService_ImageFailureDegrades(t *testing.T) {
	f := newStoryFixture(t)
	f.settings.ImagesEnabled = true
	f.images.FetchFunc = func(context.Context, string) client.ImageResult {
		return client.ImageResult{Err: errors.New("exit status 1")}
	}
	session := NewStorySession()

	outcome, err := f.svc.Generate(context.Background(), session, validRequest())
	require.NoError(t, err)
	assert.True(t, outcome.Result.IsSuccess())
	assert.NotNil(t, outcome.Images)
	assert.Empty(t, outcome.Images)
	assert.Equal(t, 1, session.Len())
}

func TestStoryService_GeneratorIsCachedPerProviderAndModel(t *testing.T) {
	f := newStoryFixture(t)
	session := NewStorySession()

	_, err := f.svc.Generate(context.Background(), session, validRequest())
	require.NoError(t, err)
	_, err = f.svc.Generate(context.Background(), session, validRequest())
	require.NoError(t, err)
	require.Len(t, f.opts, 1)
	assert.Equal(t, "ollama", f.opts[0].Provider)
	assert.Empty(t, f.opts[0].APIKey)

	f.settings.Provider = "openai"
	f.settings.StoryModel = "gpt-4o-mini"
	_, err = f.svc.Generate(context.Background(), session, validRequest())
	require.NoError(t, err)
	require.Len(t, f.opts, 2)
	assert.Equal(t, "sk-test", f.opts[1].APIKey)
	assert.Equal(t, "gpt-4o-mini", f.opts[1].Model)
}

func TestStoryService_GeneratorFactoryError(t *testing.T) {
	f := newStoryFixture(t)
	f.svc.cfg.NewGenerator = func(context.Context, client.Options) (client.Generator, error) {
		return nil, errors.New("API key for openai is not configured")
	}
	f.settings.Provider = "openai"

	_, err := f.svc.Generate(context.Background(), NewStorySession(), validRequest())
	assert.EqualError(t, err, "failed to create openai generator: API key for openai is not configured")
}

func TestStoryService_Cancel(t *testing.T) {
	f := newStoryFixture(t)
	started := make(chan struct{})
	f.generator.GenerateFunc = func(ctx context.Context, _ string) models.GenerationResult {
		close(started)
		<-ctx.Done()
		return models.Failure("generation cancelled")
	}
	session := NewStorySession()

	done := make(chan *models.StoryOutcome, 1)
	go func() {
		outcome, _ := f.svc.Generate(context.Background(), session, validRequest())
		done <- outcome
	}()

	<-started
	assert.True(t, f.svc.Cancel())

	select {
	case outcome := <-done:
		require.NotNil(t, outcome)
		assert.Equal(t, "generation cancelled", outcome.Result.Message)
	case <-time.After(5 * time.Second):
		t.Fatal("generation did not stop after cancel")
	}
	assert.Equal(t, 0, session.Len())
	assert.False(t, f.svc.Cancel())
}

func TestStoryService_Narrate(t *testing.T) {
	f := newStoryFixture(t)

	require.NoError(t, f.svc.Narrate(context.Background(), "hello", "Tamil"))
	assert.Equal(t, []string{"hello"}, f.speaker.Spoken)

	f.speaker.SpeakFunc = func(context.Context, string, string) error { return errors.New("no audio") }
	assert.EqualError(t, f.svc.Narrate(context.Background(), "hello", "Tamil"), "narrate story: no audio")
}

func TestStoryService_NarrateWithoutSpeaker(t *testing.T) {
	svc := NewStoryService(StoryServiceConfig{})
	assert.EqualError(t, svc.Narrate(context.Background(), "hi", "English"), "narration is not available")
}

func TestStoryService_StoredKeyChangeRebuildsGenerator(t *testing.T) {
	f := newStoryFixture(t)
	keys := &mocks.APIKeyProviderMock{Keys: map[string]string{"openai": "sk-wrong"}}
	f.svc.cfg.Keys = keys
	f.settings.Provider = "openai"
	f.settings.StoryModel = "gpt-4o-mini"
	session := NewStorySession()

	_, err := f.svc.Generate(context.Background(), session, validRequest())
	require.NoError(t, err)

	keys.Keys["openai"] = "sk-right"
	_, err = f.svc.Generate(context.Background(), session, validRequest())
	require.NoError(t, err)
	_, err = f.svc.Generate(context.Background(), session, validRequest())
	require.NoError(t, err)

	require.Len(t, f.opts, 2)
	assert.Equal(t, "sk-wrong", f.opts[0].APIKey)
	assert.Equal(t, "sk-right", f.opts[1].APIKey)
}

func TestStoryService_CancelAfterOverlappingGenerationFinished(t *testing.T) {
	f := newStoryFixture(t)
	firstStarted := make(chan struct{})
	secondStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	f.generator.GenerateFunc = func(ctx context.Context, prompt string) models.GenerationResult {
		if prompt == BuildPrompt(validRequest()) {
			close(firstStarted)
			<-releaseFirst
			return models.Success("first")
		}
		close(secondStarted)
		select {
		case <-ctx.Done():
			return models.Failure("generation cancelled")
		case <-time.After(5 * time.Second):
			return models.Success("second ran to completion")
		}
	}
	session := NewStorySession()

	firstDone := make(chan *models.StoryOutcome, 1)
	go func() {
		outcome, _ := f.svc.Generate(context.Background(), session, validRequest())
		firstDone <- outcome
	}()
	<-firstStarted

	secondDone := make(chan *models.StoryOutcome, 1)
	go func() {
		outcome, _ := f.svc.Generate(context.Background(), session, models.GenerationRequest{Language: "Tamil", Interest: "space"})
		secondDone <- outcome
	}()
	<-secondStarted

	close(releaseFirst)
	first := <-firstDone
	require.NotNil(t, first)
	assert.True(t, first.Result.IsSuccess())

	assert.True(t, f.svc.Cancel())
	second := <-secondDone
	require.NotNil(t, second)
	assert.Equal(t, "generation cancelled", second.Result.Message)
	assert.Equal(t, []string{"first"}, session.List())
	assert.False(t, f.svc.Cancel())
}
