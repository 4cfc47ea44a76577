package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// SessionCookieName is the name of the login session cookie.
const SessionCookieName = "panw_session"

var (
	// ErrNoSession is returned when the request carries no session cookie.
	ErrNoSession = errors.New("no session")
	// ErrSessionExpired is returned for a session past its expiry.
	ErrSessionExpired = errors.New("session expired")
)

// Session identifies the operator using the web form.
type Session struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName is the name shown in the page header.
func (s *Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// SessionManager handles encrypted session cookies.
type SessionManager struct {
	sealer   *sealer
	duration time.Duration
	secure   bool
}

// NewSessionManager creates a new session manager. The key must be exactly
// 32 bytes.
func NewSessionManager(key []byte, duration time.Duration, secure bool) (*SessionManager, error) {
	s, err := newSealer(key)
	if err != nil {
		return nil, err
	}
	return &SessionManager{sealer: s, duration: duration, secure: secure}, nil
}

// Create starts a session for identity and sets the cookie.
func (sm *SessionManager) Create(w http.ResponseWriter, identity *Identity) (*Session, error) {
	now := time.Now()
	session := &Session{
		Subject:   identity.Subject,
		Email:     identity.Email,
		Name:      identity.Name,
		CreatedAt: now,
		ExpiresAt: now.Add(sm.duration),
	}

	value, err := sm.sealer.seal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	setCookie(w, SessionCookieName, value, int(sm.duration.Seconds()), sm.secure)
	return session, nil
}

// Get returns the session carried by r.
func (sm *SessionManager) Get(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	var session Session
	if err := sm.sealer.open(cookie.Value, &session); err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// Clear clears the session cookie.
func (sm *SessionManager) Clear(w http.ResponseWriter) {
	setCookie(w, SessionCookieName, "", -1, sm.secure)
}
