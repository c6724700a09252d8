package main

import (
	"context"
	"embed"
	"os"

	"omnihub/logger"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"go.uber.org/fx"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	var (
		app *App
		log zerolog.Logger
	)

	container := fx.New(
		Module,
		fx.NopLogger,
		fx.Populate(&app, &log),
	)
	if err := container.Err(); err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}

	if err := container.Start(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to start")
		os.Exit(1)
	}
	defer func() {
		if err := container.Stop(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to stop cleanly")
		}
	}()

	// Create application with options
	err := wails.Run(&options.App{
		Title:     "OmniHub",
		Width:     1280,
		Height:    800,
		MinWidth:  960,
		MinHeight: 640,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 15, G: 17, B: 26, A: 1},
		Logger:           logger.NewWailsAdapter(log),
		LogLevel:         logger.WailsLevel(log.GetLevel()),
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		log.Error().Err(err).Msg("wails exited with an error")
	}
}
