package server

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/spotistats/internal/shared"
)

// nonceEntropy is the number of random bytes behind each state nonce.
const nonceEntropy = 16

// StatePayload is the content of the opaque state value round-tripped
// through the authorization redirect: a random nonce plus an optional
// forward-to URL for returning the browser to a frontend location.
type StatePayload struct {
	Nonce     string `json:"nonce"`
	ForwardTo string `json:"forward_to,omitempty"`
}

// EncodeState serializes a fresh nonce and the optional forward-to target as
// compact JSON in unpadded URL-safe base64.
//
// The value is not signed. The CSRF property comes from comparing the
// callback's state parameter against the same value held in an http-only
// cookie, not from tamper-resistance of the payload.
func EncodeState(forwardTo string) (string, error) {
	buf := make([]byte, nonceEntropy)
	rand.Read(buf)

	payload := StatePayload{
		Nonce:     base64.RawURLEncoding.EncodeToString(buf),
		ForwardTo: forwardTo,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeState is the inverse of [EncodeState]. Any value that is not valid
// base64, not valid JSON, or missing its nonce fails with
// [shared.ErrInvalidState].
func DecodeState(state string) (StatePayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		return StatePayload{}, fmt.Errorf("%w: %v", shared.ErrInvalidState, err)
	}

	var payload StatePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return StatePayload{}, fmt.Errorf("%w: %v", shared.ErrInvalidState, err)
	}

	if payload.Nonce == "" {
		return StatePayload{}, fmt.Errorf("%w: missing nonce", shared.ErrInvalidState)
	}

	return payload, nil
}
