package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotistats/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the backend
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	r.logger.Info("GET request", "path", path)

	headers := map[string]string{}
	if session := cmd.String("session"); session != "" {
		headers["Cookie"] = "spotify_session_id=" + session
	}

	resp, err := r.api.Get(ctx, path, headers)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

// apiCommand handles direct API calls to the backend, for debugging
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to a running backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints the response",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "session",
						Usage: "Session cookie value to send with the request",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}
