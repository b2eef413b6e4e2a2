// Spotify API client
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/spotistats/internal/models"
	"github.com/desertthunder/spotistats/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	requestTimeout = 10 * time.Second

	// DefaultTrackLimit is used when the caller does not specify a limit.
	DefaultTrackLimit = 20
	maxTrackLimit     = 50

	// DefaultTimeRange is the Spotify time_range used when none is given.
	DefaultTimeRange = "medium_term"
)

// APIError describes a failed interaction with the Spotify API: the status
// to report to our caller and a human-readable message sourced from the
// provider where possible. Unreachable endpoints use status 502.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify API error: status %d: %s", e.Status, e.Message)
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	ExternalURLs externalURLs    `json:"external_urls"`
	URI          string          `json:"uri"`
}

// Summary flattens the nested track/album/artist/image structure into a
// [models.TrackSummary]. Missing artist names, external URL, or cover image
// become empty values, never an error.
func (t SpotifyTrack) Summary() models.TrackSummary {
	summary := models.TrackSummary{
		Name:    t.Name,
		Artists: []string{},
		URL:     t.ExternalURLs.Spotify,
	}

	for _, artist := range t.Artists {
		if artist.Name != "" {
			summary.Artists = append(summary.Artists, artist.Name)
		}
	}

	if len(t.Album.Images) > 0 {
		summary.Image = t.Album.Images[0].URL
	}

	return summary
}

type topTracksResponse struct {
	Items []SpotifyTrack `json:"items"`
}

// SpotifyService performs OAuth2 token operations and top-track queries
// against the Spotify Web API.
type SpotifyService struct {
	config     *oauth2.Config
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://127.0.0.1:8080/auth/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"user-top-read"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   spotifyAuthURL,
			TokenURL:  spotifyTokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the OAuth2 authorization URL for user login.
//
// When forceLogin is set, show_dialog=true makes Spotify re-prompt even for
// an already-approved app, which lets users switch accounts.
func (s *SpotifyService) AuthURL(state string, forceLogin bool) string {
	var opts []oauth2.AuthCodeOption
	if forceLogin {
		opts = append(opts, oauth2.SetAuthURLParam("show_dialog", "true"))
	}
	return s.config.AuthCodeURL(state, opts...)
}

// outboundContext bounds ctx with the per-call timeout and routes oauth2
// transport through the service's HTTP client.
func (s *SpotifyService) outboundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	return context.WithTimeout(ctx, requestTimeout)
}

// ExchangeCode exchanges an authorization code for an access/refresh token
// pair at the provider's token endpoint.
func (s *SpotifyService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, shared.ErrMissingAuthCode
	}

	ctx, cancel := s.outboundContext(ctx)
	defer cancel()

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, tokenEndpointError("token exchange failed", err)
	}

	return token, nil
}

// Refresh obtains a new access token using the given refresh token.
//
// Spotify commonly omits a new refresh token from the response; the returned
// token always carries a usable refresh token, falling back to the one
// passed in.
func (s *SpotifyService) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	ctx, cancel := s.outboundContext(ctx)
	defer cancel()

	src := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, tokenEndpointError("token refresh failed", err)
	}

	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}

	return token, nil
}

// TopTracks fetches the authenticated user's top tracks.
//
// Fails without a network call when accessToken is empty. Out-of-range
// limits are clamped into [1, 50] rather than rejected. A 401 from the API
// is returned as an [APIError] so the caller can decide to refresh and
// retry.
func (s *SpotifyService) TopTracks(ctx context.Context, accessToken string, limit int, timeRange string) ([]models.TrackSummary, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: access token is required", shared.ErrNotAuthenticated)
	}

	if limit < 1 {
		limit = 1
	} else if limit > maxTrackLimit {
		limit = maxTrackLimit
	}
	if timeRange == "" {
		timeRange = DefaultTimeRange
	}

	endpoint := fmt.Sprintf("%s/me/top/tracks?limit=%d&time_range=%s", s.baseURL, limit, url.QueryEscape(timeRange))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{
			Status:  http.StatusBadGateway,
			Message: fmt.Sprintf("spotify API unreachable: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: "failed to fetch top tracks: " + readErrorDetail(resp),
		}
	}

	var payload topTracksResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	items := make([]models.TrackSummary, 0, len(payload.Items))
	for _, track := range payload.Items {
		items = append(items, track.Summary())
	}

	return items, nil
}

// tokenEndpointError maps an error from the oauth2 package to an [APIError].
//
// [oauth2.RetrieveError] means the provider answered with a non-2xx and an
// OAuth error body; anything else is a transport failure reported as 502.
func tokenEndpointError(op string, err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		status := http.StatusBadGateway
		if rerr.Response != nil {
			status = rerr.Response.StatusCode
		}

		msg := rerr.ErrorDescription
		if msg == "" {
			msg = strings.TrimSpace(string(rerr.Body))
		}
		if msg == "" && rerr.Response != nil {
			msg = rerr.Response.Status
		}

		return &APIError{Status: status, Message: fmt.Sprintf("%s: %s", op, msg)}
	}

	return &APIError{
		Status:  http.StatusBadGateway,
		Message: fmt.Sprintf("%s: token endpoint unreachable: %v", op, err),
	}
}

// readErrorDetail extracts a human-readable message from a non-2xx Spotify
// response, preferring the structured JSON error shapes and falling back to
// the raw body.
func readErrorDetail(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return resp.Status
	}

	var detail struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if json.Unmarshal(body, &detail) == nil {
		if detail.Error.Message != "" {
			return detail.Error.Message
		}
		if detail.ErrorDescription != "" {
			return detail.ErrorDescription
		}
	}

	return strings.TrimSpace(string(body))
}
