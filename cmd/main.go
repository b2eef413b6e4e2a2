package main

import (
	"context"
	"os"

	"github.com/desertthunder/spotistats/internal/services"
	"github.com/desertthunder/spotistats/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	apiService := services.NewAPIService(config.Server.BaseURL(), nil)

	runner := NewRunner(RunnerOpts{
		Config: config,
		API:    apiService,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "spotistats",
		Usage:    "Spotify OAuth backend serving your top tracks",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
