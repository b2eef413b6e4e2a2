package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIService(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		api := NewAPIService("", nil)
		if api.baseURL != "http://127.0.0.1:8080" {
			t.Errorf("expected default base URL, got %q", api.baseURL)
		}
		if api.httpClient == nil {
			t.Error("expected a default HTTP client")
		}
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("returns a JSON response", func(t *testing.T) {
			var gotPath string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"status":"ok"}`)
			}))
			defer ts.Close()

			api := NewAPIService(ts.URL, nil)
			resp, err := api.Get(ctx, "/health", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if gotPath != "/health" {
				t.Errorf("expected path /health, got %q", gotPath)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON {
				t.Error("expected response flagged as JSON")
			}
			obj, ok := resp.JSONData.(map[string]any)
			if !ok || obj["status"] != "ok" {
				t.Errorf("expected decoded JSON body, got %v", resp.JSONData)
			}
		})

		t.Run("forwards extra headers", func(t *testing.T) {
			var gotCookie string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCookie = r.Header.Get("Cookie")
			}))
			defer ts.Close()

			api := NewAPIService(ts.URL, nil)
			_, err := api.Get(ctx, "/me/top-tracks", map[string]string{
				"Cookie": "spotify_session_id=sess-1",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotCookie != "spotify_session_id=sess-1" {
				t.Errorf("expected cookie header forwarded, got %q", gotCookie)
			}
		})

		t.Run("non-JSON body", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "plain text")
			}))
			defer ts.Close()

			api := NewAPIService(ts.URL, nil)
			resp, err := api.Get(ctx, "/", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.IsJSON {
				t.Error("expected non-JSON body to stay raw")
			}
			if string(resp.Body) != "plain text" {
				t.Errorf("expected raw body, got %q", resp.Body)
			}
		})

		t.Run("unreachable backend", func(t *testing.T) {
			api := NewAPIService("http://127.0.0.1:1", nil)
			if _, err := api.Get(ctx, "/health", nil); err == nil {
				t.Error("expected an error for an unreachable backend")
			}
		})
	})

	t.Run("Detail", func(t *testing.T) {
		cases := []struct {
			name string
			resp APIResponse
			want string
		}{
			{
				"detail field",
				APIResponse{Body: []byte(`{"detail":"State mismatch"}`), IsJSON: true, JSONData: map[string]any{"detail": "State mismatch"}},
				"State mismatch",
			},
			{
				"JSON without detail",
				APIResponse{Body: []byte(`{"status":"ok"}`), IsJSON: true, JSONData: map[string]any{"status": "ok"}},
				`{"status":"ok"}`,
			},
			{
				"raw body",
				APIResponse{Body: []byte("oops")},
				"oops",
			},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				if got := c.resp.Detail(); got != c.want {
					t.Errorf("expected %q, got %q", c.want, got)
				}
			})
		}
	})
}
