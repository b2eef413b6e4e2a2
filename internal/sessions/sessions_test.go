package sessions

import (
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestNewID(t *testing.T) {
	t.Run("carries 32 bytes of entropy", func(t *testing.T) {
		id := NewID()

		raw, err := base64.RawURLEncoding.DecodeString(id)
		if err != nil {
			t.Fatalf("expected URL-safe base64, got %v", err)
		}
		if len(raw) != 32 {
			t.Errorf("expected 32 random bytes, got %d", len(raw))
		}
	})

	t.Run("ids are unique", func(t *testing.T) {
		seen := map[string]bool{}
		for range 100 {
			id := NewID()
			if seen[id] {
				t.Fatal("expected unique session ids")
			}
			seen[id] = true
		}
	})
}

func TestMemoryStore(t *testing.T) {
	t.Run("Lookup", func(t *testing.T) {
		t.Run("empty id is absent", func(t *testing.T) {
			store := NewMemoryStore()
			if _, ok := store.Lookup(""); ok {
				t.Error("expected absent for empty id")
			}
		})

		t.Run("unknown id is absent", func(t *testing.T) {
			store := NewMemoryStore()
			if _, ok := store.Lookup("nope"); ok {
				t.Error("expected absent for unknown id")
			}
		})
	})

	t.Run("Save", func(t *testing.T) {
		t.Run("mints an id when none is supplied", func(t *testing.T) {
			store := NewMemoryStore()

			id := store.Save("", Session{AccessToken: "at"})
			if id == "" {
				t.Fatal("expected a minted session id")
			}

			session, ok := store.Lookup(id)
			if !ok || session.AccessToken != "at" {
				t.Errorf("expected stored session, got %+v", session)
			}
		})

		t.Run("keeps a supplied id", func(t *testing.T) {
			store := NewMemoryStore()

			id := store.Save("browser-1", Session{AccessToken: "at"})
			if id != "browser-1" {
				t.Errorf("expected the supplied id back, got %q", id)
			}
		})

		t.Run("overwrites in place", func(t *testing.T) {
			store := NewMemoryStore()
			id := store.Save("", Session{AccessToken: "old", RefreshToken: "rt-old"})

			store.Save(id, Session{AccessToken: "new", RefreshToken: "rt-new"})

			session, _ := store.Lookup(id)
			if session.AccessToken != "new" || session.RefreshToken != "rt-new" {
				t.Errorf("expected replacement, got %+v", session)
			}
		})

		t.Run("empty refresh token retains the prior one", func(t *testing.T) {
			store := NewMemoryStore()
			id := store.Save("", Session{AccessToken: "old", RefreshToken: "keep-me"})

			store.Save(id, Session{AccessToken: "new"})

			session, _ := store.Lookup(id)
			if session.AccessToken != "new" {
				t.Errorf("expected new access token, got %q", session.AccessToken)
			}
			if session.RefreshToken != "keep-me" {
				t.Errorf("expected prior refresh token retained, got %q", session.RefreshToken)
			}
		})

		t.Run("supplied refresh token replaces the prior one", func(t *testing.T) {
			store := NewMemoryStore()
			id := store.Save("", Session{AccessToken: "old", RefreshToken: "stale"})

			store.Save(id, Session{AccessToken: "new", RefreshToken: "fresh"})

			session, _ := store.Lookup(id)
			if session.RefreshToken != "fresh" {
				t.Errorf("expected replacement refresh token, got %q", session.RefreshToken)
			}
		})
	})

	t.Run("Concurrent Saves", func(t *testing.T) {
		store := NewMemoryStore()
		id := store.Save("", Session{AccessToken: "seed", RefreshToken: "rt"})

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				store.Save(id, Session{AccessToken: "racer"})
			}()
			go func() {
				defer wg.Done()
				store.Lookup(id)
			}()
		}
		wg.Wait()

		session, ok := store.Lookup(id)
		if !ok {
			t.Fatal("expected session to survive concurrent access")
		}
		if session.RefreshToken != "rt" {
			t.Errorf("expected refresh token retained through races, got %q", session.RefreshToken)
		}
	})
}

func TestSession(t *testing.T) {
	t.Run("Active", func(t *testing.T) {
		if (Session{}).Active() {
			t.Error("expected a session without an access token to be inactive")
		}
		if !(Session{AccessToken: "at"}).Active() {
			t.Error("expected a session with an access token to be active")
		}
	})

	t.Run("FromToken", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour)
		session := FromToken(&oauth2.Token{AccessToken: "at", RefreshToken: "rt", Expiry: expiry})

		if session.AccessToken != "at" || session.RefreshToken != "rt" {
			t.Errorf("expected token material copied, got %+v", session)
		}
		if !session.ExpiresAt.Equal(expiry) {
			t.Errorf("expected expiry instant copied, got %v", session.ExpiresAt)
		}
	})
}
