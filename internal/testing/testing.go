// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"

	"github.com/desertthunder/spotistats/internal/models"
	"golang.org/x/oauth2"
)

// MockTrackService is a test double for the provider client consumed by the
// server package. Each operation delegates to an optional func field and
// counts its invocations, so tests can assert on the refresh-and-retry
// policy.
type MockTrackService struct {
	AuthURLFunc   func(state string, forceLogin bool) string
	ExchangeFunc  func(ctx context.Context, code string) (*oauth2.Token, error)
	RefreshFunc   func(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	TopTracksFunc func(ctx context.Context, accessToken string, limit int, timeRange string) ([]models.TrackSummary, error)

	ExchangeCalls  int
	RefreshCalls   int
	TopTracksCalls int
}

func (m *MockTrackService) AuthURL(state string, forceLogin bool) string {
	if m.AuthURLFunc != nil {
		return m.AuthURLFunc(state, forceLogin)
	}
	return "https://accounts.spotify.com/authorize?state=" + state
}

func (m *MockTrackService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	m.ExchangeCalls++
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return &oauth2.Token{AccessToken: "mock_access", RefreshToken: "mock_refresh"}, nil
}

func (m *MockTrackService) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	m.RefreshCalls++
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return &oauth2.Token{AccessToken: "mock_refreshed", RefreshToken: refreshToken}, nil
}

func (m *MockTrackService) TopTracks(ctx context.Context, accessToken string, limit int, timeRange string) ([]models.TrackSummary, error) {
	m.TopTracksCalls++
	if m.TopTracksFunc != nil {
		return m.TopTracksFunc(ctx, accessToken, limit, timeRange)
	}
	return []models.TrackSummary{}, nil
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Calls    int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.Calls++
	return m.response, m.err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
