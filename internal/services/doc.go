// Package services contains the HTTP clients the application depends on.
//
// # Spotify Client
//
// [SpotifyService] wraps the three provider interactions this system needs:
// building the authorization URL, exchanging an authorization code for
// tokens, refreshing an expired access token, and fetching the
// authenticated user's top tracks.
//
// Token operations go through [golang.org/x/oauth2]: the client id and
// secret are sent as transport-level basic auth, and provider error bodies
// surface through [oauth2.RetrieveError]. Every upstream failure is
// normalized into [APIError], which carries the provider's status code and a
// human-readable message so HTTP handlers can pass both through to the
// caller. Network failures (DNS, connect, timeout) map to a 502-equivalent
// [APIError] instead.
//
// All outbound calls share a fixed 10 second timeout; after that the call
// fails as unreachable rather than hanging.
//
// # Backend Client
//
// [APIService] is a thin client for a running spotistats backend, used by
// CLI commands (health probes, raw passthrough requests, cookie-bound track
// queries).
package services
