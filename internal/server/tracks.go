package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotistats/internal/models"
	"github.com/desertthunder/spotistats/internal/services"
	"github.com/desertthunder/spotistats/internal/sessions"
)

// TracksHandler serves the protected top-tracks query for a browser holding
// a session cookie.
type TracksHandler struct {
	service TrackService
	store   sessions.Store
	logger  *log.Logger
}

// NewTracksHandler creates the handler for /me/top-tracks.
func NewTracksHandler(service TrackService, store sessions.Store, logger *log.Logger) *TracksHandler {
	return &TracksHandler{service: service, store: store, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *TracksHandler) Routes() []string {
	return []string{"/me/top-tracks"}
}

func (h *TracksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	session, ok := h.store.Lookup(id)
	if !ok || !session.Active() {
		writeError(w, http.StatusUnauthorized, "No active Spotify session. Please log in.")
		return
	}

	if h.service == nil {
		writeError(w, http.StatusInternalServerError, "Spotify credentials are not configured")
		return
	}

	query := r.URL.Query()
	limit := services.DefaultTrackLimit
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	timeRange := query.Get("time_range")

	items, err := h.service.TopTracks(r.Context(), session.AccessToken, limit, timeRange)
	if err != nil {
		items, err = h.refreshAndRetry(w, r, id, session, err, limit, timeRange)
		if err != nil {
			return
		}
	}

	if items == nil {
		items = []models.TrackSummary{}
	}
	writeJSON(w, http.StatusOK, models.TrackList{Items: items})
}

// refreshAndRetry handles an expired access token: on an upstream 401 with a
// stored refresh token, perform exactly one refresh, persist the result
// under the same session id, and retry the query once. Every other failure,
// and a second failure after the retry, is written to the response and
// returned as a non-nil error.
func (h *TracksHandler) refreshAndRetry(w http.ResponseWriter, r *http.Request, id string, session sessions.Session, cause error, limit int, timeRange string) ([]models.TrackSummary, error) {
	var apiErr *services.APIError
	if !errors.As(cause, &apiErr) || apiErr.Status != http.StatusUnauthorized || session.RefreshToken == "" {
		writeServiceError(w, cause)
		return nil, cause
	}

	h.logger.Info("access token expired, refreshing", "session", id)

	token, err := h.service.Refresh(r.Context(), session.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return nil, err
	}

	refreshed := sessions.FromToken(token)
	h.store.Save(id, refreshed)

	items, err := h.service.TopTracks(r.Context(), refreshed.AccessToken, limit, timeRange)
	if err != nil {
		writeServiceError(w, err)
		return nil, err
	}

	return items, nil
}
