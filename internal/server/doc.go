// Package server implements the HTTP surface of the backend: the OAuth
// authorization flow, the protected top-tracks query, and liveness probes.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method filtering.
//
// # Authorization Flow
//
// [AuthHandler] drives the browser through the authorization-code dance:
//
//	GET /auth/login     302 to Spotify, sets the state cookie
//	GET /auth/callback  validates state, exchanges the code, sets the session cookie
//	GET /auth/logout    clears cookies, 302 to /
//
// CSRF protection is a raw string-equality check between the state query
// parameter on the callback and the value this server placed in a
// short-lived http-only cookie at login. The state payload itself is not
// signed; decoding it only recovers the optional forward_to target.
//
// # Protected Query
//
// [TracksHandler] serves GET /me/top-tracks for a browser holding a valid
// session cookie. On a 401 from Spotify with a stored refresh token it
// performs exactly one refresh, persists the result, and retries once; a
// second failure propagates the provider's status and message verbatim.
//
// # Errors
//
// Handlers respond with JSON bodies of the form {"detail": "..."}, carrying
// the provider-sourced message for upstream failures.
package server
