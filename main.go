package main

import (
	"context"
	"embed"
	"fmt"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	gormlogger "gorm.io/gorm/logger"

	"storynarrator/internal/config"
	"storynarrator/internal/database"
	"storynarrator/internal/services"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg := config.Load()

	db, err := database.Init(database.Config{
		Path:     cfg.DBPath,
		LogLevel: gormlogger.Warn,
	})
	if err != nil {
		fmt.Println("Error opening database:", err)
		return
	}

	ring, err := services.OpenKeyring()
	if err != nil {
		log.Printf("keyring unavailable, remote providers disabled: %v", err)
	}

	svc := services.NewServices(db, cfg, ring)
	app := NewApp(svc)
	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	err = wails.Run(&options.App{
		Title:  "Story Narrator",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Story Narrator",
		},
		LogLevel:         logger.INFO,
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			app.startup(ctx)
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			svc.Keys,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
