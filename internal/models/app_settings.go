package models

import "time"

type AppSettings struct {
	ID             uint   `gorm:"primaryKey" json:"id"` // single-row table (ID=1)
	Version        int    `gorm:"not null;default:1" json:"version"`
	Theme          string `gorm:"not null;default:system" json:"theme"` // "light" | "dark" | "system"
	Provider       string `gorm:"size:50;not null;default:ollama" json:"provider"`
	StoryModel     string `gorm:"size:255;not null" json:"storyModel"`
	ImageModel     string `gorm:"size:255" json:"imageModel"`
	ImagesEnabled  bool   `gorm:"not null;default:false" json:"imagesEnabled"`
	TimeoutSeconds int    `gorm:"not null;default:300" json:"timeoutSeconds"`
	UpdatedAt      time.Time
}

// Timeout returns the generation deadline, falling back to five minutes.
func (s *AppSettings) Timeout() time.Duration {
	if s == nil || s.TimeoutSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// DefaultAppSettings runs phi3 through the ollama CLI with images switched off.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		ID:             1,
		Version:        1,
		Theme:          "system",
		Provider:       "ollama",
		StoryModel:     "phi3",
		ImageModel:     "image_model",
		ImagesEnabled:  false,
		TimeoutSeconds: 300,
	}
}
