package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// StateCookieName is the name of the login state cookie.
	StateCookieName = "panw_oidc_state"
	// StateCookieMaxAge is how long a login attempt may take, in seconds.
	StateCookieMaxAge = 5 * 60
)

var (
	// ErrStateMismatch is returned when the callback state does not match the cookie.
	ErrStateMismatch = errors.New("state mismatch")
	// ErrStateExpired is returned for a login attempt older than StateCookieMaxAge.
	ErrStateExpired = errors.New("state expired")
)

// StateStore keeps the OIDC state and nonce in an encrypted cookie between
// the redirect to the provider and the callback.
type StateStore struct {
	sealer *sealer
	secure bool
}

// StateData holds the state and nonce for one login attempt, and where to
// send the user afterwards.
type StateData struct {
	State     string    `json:"state"`
	Nonce     string    `json:"nonce"`
	ReturnTo  string    `json:"return_to,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewStateStore creates a new state store. The key must be exactly 32 bytes.
func NewStateStore(key []byte, secure bool) (*StateStore, error) {
	s, err := newSealer(key)
	if err != nil {
		return nil, err
	}
	return &StateStore{sealer: s, secure: secure}, nil
}

// Generate creates a new state/nonce pair and stores it in a cookie.
// returnTo is kept only if it is a local path.
func (ss *StateStore) Generate(w http.ResponseWriter, returnTo string) (*StateData, error) {
	state, err := GenerateSecureString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}
	nonce, err := GenerateSecureString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	data := &StateData{
		State:     state,
		Nonce:     nonce,
		ReturnTo:  LocalPath(returnTo),
		ExpiresAt: time.Now().Add(StateCookieMaxAge * time.Second),
	}

	value, err := ss.sealer.seal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to store state: %w", err)
	}
	setCookie(w, StateCookieName, value, StateCookieMaxAge, ss.secure)
	return data, nil
}

// Validate checks state against the cookie carried by r.
func (ss *StateStore) Validate(r *http.Request, state string) (*StateData, error) {
	cookie, err := r.Cookie(StateCookieName)
	if err != nil {
		return nil, fmt.Errorf("state cookie not found: %w", err)
	}

	var data StateData
	if err := ss.sealer.open(cookie.Value, &data); err != nil {
		return nil, err
	}
	if time.Now().After(data.ExpiresAt) {
		return nil, ErrStateExpired
	}
	if !ConstantTimeCompare(data.State, state) {
		return nil, ErrStateMismatch
	}
	return &data, nil
}

// Clear clears the state cookie.
func (ss *StateStore) Clear(w http.ResponseWriter) {
	setCookie(w, StateCookieName, "", -1, ss.secure)
}

// LocalPath returns p if it is a path on this site, otherwise "/".
func LocalPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
