// Package web serves the embedded single-page demo UI.
//
// The page offers login/logout links and renders the authenticated user's
// top tracks from /me/top-tracks into a card grid. It is incidental glue
// around the backend; everything interesting happens server-side.
package web

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// Handler serves the demo page at the root path.
type Handler struct{}

// NewHandler creates the demo page handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns the HTTP routes this handler serves. The {$} pattern
// matches the root path exactly instead of acting as a catch-all.
func (h *Handler) Routes() []string {
	return []string{"/{$}"}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}
