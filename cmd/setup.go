package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotistats/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter config.toml from the embedded example.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	r.logger.Info("config created", "path", configPath)
	r.writePlain("✓ Wrote %s, fill in your Spotify client credentials\n", configPath)
	return nil
}

// setupCommand initializes a configuration file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a starter configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
