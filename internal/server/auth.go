package server

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotistats/internal/sessions"
	"github.com/desertthunder/spotistats/internal/shared"
)

// AuthHandler drives the OAuth2 authorization-code flow for a browser.
// Implements the [Handler] interface for registration with a [Router].
type AuthHandler struct {
	config  *shared.Config
	service TrackService
	store   sessions.Store
	cookies CookiePolicy
	logger  *log.Logger
}

// NewAuthHandler creates the handler for the /auth/* endpoints.
func NewAuthHandler(config *shared.Config, service TrackService, store sessions.Store, cookies CookiePolicy, logger *log.Logger) *AuthHandler {
	return &AuthHandler{
		config:  config,
		service: service,
		store:   store,
		cookies: cookies,
		logger:  logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{"/auth/login", "/auth/callback", "/auth/logout"}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/login":
		h.login(w, r)
	case "/auth/callback":
		h.callback(w, r)
	case "/auth/logout":
		h.logout(w, r)
	default:
		http.NotFound(w, r)
	}
}

// login issues a fresh state token, parks it in the state cookie, and
// redirects the browser to Spotify's authorization endpoint.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if h.service == nil || !h.config.Credentials.Spotify.Configured() {
		writeError(w, http.StatusInternalServerError, "Spotify credentials are not configured")
		return
	}

	query := r.URL.Query()
	forwardTo := query.Get("forward_to")
	forceLogin := query.Get("force_login") == "1" || query.Get("force_login") == "true"

	state, err := EncodeState(forwardTo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create state token")
		return
	}

	h.cookies.SetState(w, r, state)
	http.Redirect(w, r, h.service.AuthURL(state, forceLogin), http.StatusFound)
}

// callback validates the provider redirect, exchanges the code, persists the
// tokens against the browser's session, and bounces back to the frontend.
func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		writeError(w, http.StatusBadRequest, "Spotify authorization failed: "+errParam)
		return
	}

	code := query.Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	// Raw string equality against the cookie is the CSRF defense; the
	// decoded payload is only consulted afterwards.
	state := query.Get("state")
	stateCookie, err := r.Cookie(StateCookieName)
	if err != nil || stateCookie.Value == "" || state != stateCookie.Value {
		h.logger.Warn("state mismatch on callback", "remote", r.RemoteAddr)
		writeError(w, http.StatusBadRequest, "State mismatch; possible CSRF attempt")
		return
	}

	payload, err := DecodeState(state)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid state payload")
		return
	}

	if h.service == nil {
		writeError(w, http.StatusInternalServerError, "Spotify credentials are not configured")
		return
	}

	token, err := h.service.ExchangeCode(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	id := h.store.Save(sessionID(r), sessions.FromToken(token))

	h.cookies.ClearState(w, r)
	h.cookies.SetSession(w, r, id)

	http.Redirect(w, r, h.successURL(payload.ForwardTo), http.StatusFound)
}

// logout clears both cookies and sends the browser back to the root.
// The underlying session record is not deleted.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearSession(w, r)
	h.cookies.ClearState(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

// successURL resolves where to send the browser after a successful login and
// appends the login=success indicator the frontend watches for.
func (h *AuthHandler) successURL(forwardTo string) string {
	target := forwardTo
	if target == "" {
		target = h.config.Frontend.BaseURL
	}
	if target == "" {
		target = "/"
	}
	if !strings.HasPrefix(target, "http") && !strings.HasPrefix(target, "/") {
		target = "/" + target
	}

	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + "login=success"
}
