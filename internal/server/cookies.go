package server

import "net/http"

const (
	// StateCookieName carries the anti-CSRF state value between login and callback.
	StateCookieName = "spotify_auth_state"
	// SessionCookieName binds a browser to its server-side session record.
	SessionCookieName = "spotify_session_id"

	stateCookieMaxAge   = 600
	sessionCookieMaxAge = 6 * 60 * 60
)

// CookiePolicy centralizes the attributes of the cookies this server sets:
// http-only, SameSite=Lax, with the Secure flag mirroring the deployment's
// TLS posture.
type CookiePolicy struct {
	Secure bool
}

// secure reports whether cookies for this request should carry the Secure
// flag: either configured globally or because the request arrived over TLS.
func (p CookiePolicy) secure(r *http.Request) bool {
	return p.Secure || r.TLS != nil
}

func (p CookiePolicy) set(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   p.secure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// SetState sets the short-lived state cookie; it expires after 600 seconds
// whether or not the callback ever arrives.
func (p CookiePolicy) SetState(w http.ResponseWriter, r *http.Request, value string) {
	p.set(w, r, StateCookieName, value, stateCookieMaxAge)
}

// ClearState expires the state cookie.
func (p CookiePolicy) ClearState(w http.ResponseWriter, r *http.Request) {
	p.set(w, r, StateCookieName, "", -1)
}

// SetSession sets the six-hour session cookie.
func (p CookiePolicy) SetSession(w http.ResponseWriter, r *http.Request, id string) {
	p.set(w, r, SessionCookieName, id, sessionCookieMaxAge)
}

// ClearSession expires the session cookie. The server-side record is kept;
// logout only forgets the browser's handle to it.
func (p CookiePolicy) ClearSession(w http.ResponseWriter, r *http.Request) {
	p.set(w, r, SessionCookieName, "", -1)
}

// sessionID extracts the session cookie value from a request, empty when absent.
func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
