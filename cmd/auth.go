package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotistats/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin opens the system browser at the running backend's login
// endpoint, kicking off the OAuth dance.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	loginURL := r.config.Server.BaseURL() + "/auth/login"
	if cmd.Bool("force") {
		loginURL += "?force_login=1"
	}

	r.logger.Info("opening browser", "url", loginURL)

	if err := shared.OpenBrowser(loginURL); err != nil {
		r.logger.Warnf("failed to open browser: %v", err)
		return r.writePlain("Open this URL to log in:\n%s\n", loginURL)
	}

	return r.writePlain("✓ Browser opened; finish the login there\n")
}

// AuthStatus checks whether the backend is up by calling its /health endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking backend status")

	resp, err := r.api.Get(ctx, "/health", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}

	status := "unknown"
	if resp.IsJSON {
		if healthData, ok := resp.JSONData.(map[string]any); ok {
			if s, ok := healthData["status"].(string); ok {
				status = s
			}
		}
	}

	r.writePlain("✓ Service is healthy\n")
	return r.writePlain("Status: %s\n", status)
}

// authCommand handles auth operations against a running backend
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authentication helpers for a running backend",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Open the browser at the backend's login endpoint",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Force the Spotify consent dialog (account switch)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check that the backend is running",
				Action: r.AuthStatus,
			},
		},
	}
}
