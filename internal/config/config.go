// Package config reads deployment settings from the environment (and .env).
package config

import (
	"log"

	"storynarrator/internal/models"
	"storynarrator/internal/utils"
)

type Config struct {
	OllamaBinary   string
	EspeakBinary   string
	DBPath         string
	Provider       string
	StoryModel     string
	ImageModel     string
	ImagesEnabled  bool
	OpenAIBaseURL  string
	TimeoutSeconds int
}

// Load reads the environment after applying .env when one is found.
func Load() Config {
	if err := utils.LoadEnv(); err != nil {
		log.Printf("config: no .env loaded: %v", err)
	}
	return FromEnv()
}

func FromEnv() Config {
	def := models.DefaultAppSettings()
	return Config{
		OllamaBinary:   utils.GetEnv("STORY_OLLAMA_BIN", "ollama"),
		EspeakBinary:   utils.GetEnv("STORY_ESPEAK_BIN", "espeak-ng"),
		DBPath:         utils.GetEnv("STORY_DB_PATH", ""),
		Provider:       utils.GetEnv("STORY_PROVIDER", def.Provider),
		StoryModel:     utils.GetEnv("STORY_MODEL", def.StoryModel),
		ImageModel:     utils.GetEnv("STORY_IMAGE_MODEL", def.ImageModel),
		ImagesEnabled:  utils.GetEnvBool("STORY_IMAGES_ENABLED", def.ImagesEnabled),
		OpenAIBaseURL:  utils.GetEnv("STORY_OPENAI_BASE_URL", ""),
		TimeoutSeconds: utils.GetEnvInt("STORY_TIMEOUT_SECONDS", def.TimeoutSeconds),
	}
}

// DefaultSettings are the settings used until the user saves their own.
func (c Config) DefaultSettings() models.AppSettings {
	s := models.DefaultAppSettings()
	s.Provider = c.Provider
	s.StoryModel = c.StoryModel
	s.ImageModel = c.ImageModel
	s.ImagesEnabled = c.ImagesEnabled
	if c.TimeoutSeconds > 0 {
		s.TimeoutSeconds = c.TimeoutSeconds
	}
	return s
}
