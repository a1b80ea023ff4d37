package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"storynarrator/internal/models"
)

func TestInit_MigratesAppSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Init(Config{Path: path, LogLevel: logger.Silent})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.True(t, db.Migrator().HasTable(&models.AppSettings{}))
}
