package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/spotistats/internal/server"
	"github.com/desertthunder/spotistats/internal/services"
	"github.com/desertthunder/spotistats/internal/sessions"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP backend and blocks until interrupted.
//
// The server starts even without Spotify credentials; the auth endpoints
// then report a configuration error per request rather than the process
// refusing to come up.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	if host := cmd.String("host"); host != "" {
		config.Server.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		config.Server.Port = int(port)
	}

	var service server.TrackService
	if config.Credentials.Spotify.Configured() {
		spotify, err := services.NewSpotifyService(config.Credentials.Spotify.Map())
		if err != nil {
			return err
		}
		service = spotify
	} else {
		r.logger.Warn("Spotify credentials are not configured; auth endpoints will return errors")
	}

	store := sessions.NewMemoryStore()
	srv := server.New(config, service, store, r.logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// serveCommand runs the backend HTTP server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the OAuth + top-tracks backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides config)",
			},
		},
		Action: r.Serve,
	}
}
