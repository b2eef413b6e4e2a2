// Package sessions binds browser cookies to Spotify token material.
//
// The [Store] interface is deliberately narrow so the HTTP handlers stay
// decoupled from the backing implementation; [MemoryStore] is the in-process
// default, whose lifetime is the lifetime of the process.
package sessions

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// idEntropy is the number of random bytes in a newly minted session id.
const idEntropy = 32

// Session holds the token material persisted for one browser.
//
// A session with an empty access token is not active.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Active reports whether the session holds an access token.
func (s Session) Active() bool {
	return s.AccessToken != ""
}

// FromToken converts an [oauth2.Token] into a Session record.
func FromToken(tok *oauth2.Token) Session {
	return Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
}

// Store is the capability interface the flow controller depends on.
//
// Save with an empty id mints a fresh identifier and returns the effective
// id, so a brand-new session id is generated once per browser rather than
// once per request. Lookup never fails; an unknown id reports ok=false.
type Store interface {
	Lookup(id string) (Session, bool)
	Save(id string, session Session) string
}

// MemoryStore is an in-memory [Store] guarded by a [sync.RWMutex].
//
// Two requests racing to refresh the same session (two browser tabs) is a
// real scenario; mutation is atomic per key. There is no expiry sweep or
// capacity bound, and records survive logout until process restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Lookup returns the session for the given id, if present.
func (m *MemoryStore) Lookup(id string) (Session, bool) {
	if id == "" {
		return Session{}, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	return session, ok
}

// Save stores or overwrites the session under id, minting a new id when none
// is supplied. An empty refresh token in the incoming record retains the one
// already stored, since refresh responses commonly omit it.
func (m *MemoryStore) Save(id string, session Session) string {
	if id == "" {
		id = NewID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if session.RefreshToken == "" {
		if prior, ok := m.sessions[id]; ok {
			session.RefreshToken = prior.RefreshToken
		}
	}
	m.sessions[id] = session

	return id
}

// NewID mints a cryptographically random URL-safe session identifier with
// 32 bytes of entropy.
func NewID() string {
	buf := make([]byte, idEntropy)
	rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
