// Client for making raw HTTP requests to a running spotistats backend
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIService provides methods for making raw HTTP requests to a spotistats
// backend, used by CLI commands that talk to a running instance.
type APIService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIService creates a new backend client instance.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Get performs a GET request to the specified path with optional extra
// headers and returns the raw response.
//
// The headers map allows callers to forward a session cookie, e.g.
// {"Cookie": "spotify_session_id=..."}.
func (a *APIService) Get(ctx context.Context, path string, headers map[string]string) (*APIResponse, error) {
	fullURL := a.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// Detail extracts the "detail" field from a JSON error response body, or
// returns the raw body when the shape does not match.
func (r *APIResponse) Detail() string {
	if r.IsJSON {
		if obj, ok := r.JSONData.(map[string]any); ok {
			if detail, ok := obj["detail"].(string); ok {
				return detail
			}
		}
	}
	return string(r.Body)
}
