package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/desertthunder/spotistats/internal/formatter"
	"github.com/desertthunder/spotistats/internal/models"
	"github.com/desertthunder/spotistats/internal/server"
	"github.com/desertthunder/spotistats/internal/shared"
	"github.com/urfave/cli/v3"
)

// Top fetches the authenticated user's top tracks through a running backend.
//
// The backend keeps tokens server-side, so the command needs the browser's
// session cookie value, typically copied from dev tools while debugging.
func (r *Runner) Top(ctx context.Context, cmd *cli.Command) error {
	session := cmd.String("session")
	if session == "" {
		return fmt.Errorf("%w: --session (copy the %s cookie from your browser)", shared.ErrMissingArgument, server.SessionCookieName)
	}

	limit := cmd.Int("limit")
	timeRange := cmd.String("time-range")
	format := cmd.String("format")

	path := fmt.Sprintf("/me/top-tracks?limit=%d&time_range=%s", limit, url.QueryEscape(timeRange))
	headers := map[string]string{"Cookie": server.SessionCookieName + "=" + session}

	r.logger.Info("fetching top tracks", "limit", limit, "time_range", timeRange)

	resp, err := r.api.Get(ctx, path, headers)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, resp.Detail())
	}

	var tracks models.TrackList
	if err := json.Unmarshal(resp.Body, &tracks); err != nil {
		return fmt.Errorf("%w: unexpected response shape: %v", shared.ErrAPIRequest, err)
	}

	switch format {
	case "json":
		return r.writeJSON(tracks, true)
	case "csv":
		data, err := formatter.TracksToCSV(tracks.Items)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	case "text":
		_, err := r.output.Write(formatter.TracksToText(tracks.Items))
		return err
	default:
		return fmt.Errorf("%w: format %q (want text, csv, or json)", shared.ErrInvalidFlag, format)
	}
}

// topCommand fetches and formats top tracks
func topCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "top",
		Usage: "Fetch your top tracks through a running backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "session",
				Usage:    "Session cookie value bound to a logged-in browser",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of tracks to return (clamped to [1, 50])",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "time-range",
				Usage: "Spotify time range: short_term, medium_term, long_term",
				Value: "medium_term",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, csv, or json",
				Value:   "text",
			},
		},
		Action: r.Top,
	}
}
