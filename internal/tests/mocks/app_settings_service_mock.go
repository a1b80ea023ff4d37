package mocks

import (
	"context"

	"storynarrator/internal/models"
)

type AppSettingsServiceMock struct {
	GetFunc    func() (*models.AppSettings, error)
	UpdateFunc func(settings models.AppSettings) (*models.AppSettings, error)
}

func (m *AppSettingsServiceMock) Startup(context.Context) {}

func (m *AppSettingsServiceMock) Get() (*models.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	def := models.DefaultAppSettings()
	return &def, nil
}

func (m *AppSettingsServiceMock) Update(settings models.AppSettings) (*models.AppSettings, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(settings)
	}
	return &settings, nil
}
