// package server contains middleware & handlers for the top-tracks web service
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotistats/internal/models"
	"github.com/desertthunder/spotistats/internal/services"
	"github.com/desertthunder/spotistats/internal/sessions"
	"github.com/desertthunder/spotistats/internal/shared"
	"github.com/desertthunder/spotistats/internal/web"
	"golang.org/x/oauth2"
)

// shutdownTimeout bounds graceful shutdown once the run context is cancelled.
const shutdownTimeout = 5 * time.Second

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the service.
// Implementations handle specific endpoint groups (auth flow, protected queries, probes).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// TrackService is the provider capability the handlers depend on. Satisfied
// by [services.SpotifyService]; tests substitute a double.
type TrackService interface {
	AuthURL(state string, forceLogin bool) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	TopTracks(ctx context.Context, accessToken string, limit int, timeRange string) ([]models.TrackSummary, error)
}

// Server wires the router, handlers, and HTTP listener together.
type Server struct {
	config *shared.Config
	router *BasicRouter
	logger *log.Logger
}

// New builds a Server with all handlers registered behind the recovery and
// request-logging middleware.
//
// service may be nil when Spotify credentials are not configured; affected
// endpoints then report a configuration error per request instead of the
// process refusing to start.
func New(config *shared.Config, service TrackService, store sessions.Store, logger *log.Logger) *Server {
	if config == nil {
		config = shared.DefaultConfig()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if store == nil {
		store = sessions.NewMemoryStore()
	}

	cookies := CookiePolicy{Secure: config.Server.SecureCookies}

	router := NewBasicRouter()
	router.Use(Recover(logger), RequestLogger(logger))
	router.Handler(NewAuthHandler(config, service, store, cookies, logger))
	router.Handler(NewTracksHandler(service, store, logger))
	router.Handler(HealthHandler{})
	router.Handler(web.NewHandler())

	return &Server{config: config, router: router, logger: logger}
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP listener and blocks until ctx is cancelled or the
// listener fails. Cancellation triggers a bounded graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.config.Server.Addr(), Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", srv.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// HealthHandler answers liveness probes with static JSON.
type HealthHandler struct{}

// Routes serves /health and its historical alias /service.
func (HealthHandler) Routes() []string {
	return []string{"/health", "/service"}
}

func (HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v as a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body of the form {"detail": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// writeServiceError maps a services-layer error onto an HTTP response,
// passing provider status and message through verbatim when available.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *services.APIError
	switch {
	case errors.As(err, &apiErr):
		writeError(w, apiErr.Status, apiErr.Message)
	case errors.Is(err, shared.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "No active Spotify session. Please log in.")
	case errors.Is(err, shared.ErrMissingCredentials):
		writeError(w, http.StatusInternalServerError, "Spotify credentials are not configured")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
