package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/weirlive/panw-object/internal/auth"
	"github.com/weirlive/panw-object/internal/config"
	"go.uber.org/zap"
)

// OIDCComponents holds the pieces needed for browser sign-in.
type OIDCComponents struct {
	Provider auth.LoginProvider
	Sessions *auth.SessionManager
	States   *auth.StateStore
}

// NewOIDCComponents discovers the provider and builds the cookie stores.
// It returns nil when OIDC is disabled.
func NewOIDCComponents(ctx context.Context, cfg config.OIDCConfig) (*OIDCComponents, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	key, err := cfg.GetSessionSecretBytes()
	if err != nil {
		return nil, err
	}

	provider, err := auth.NewOIDCProvider(ctx, auth.ProviderConfig{
		IssuerURL:      cfg.IssuerURL,
		ClientID:       cfg.ClientID,
		ClientSecret:   cfg.ClientSecret,
		RedirectURL:    cfg.RedirectURL,
		Scopes:         cfg.GetScopes(),
		AllowedDomains: cfg.GetAllowedDomains(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	sessions, err := auth.NewSessionManager(key, cfg.SessionDuration, cfg.SecureCookies)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}
	states, err := auth.NewStateStore(key, cfg.SecureCookies)
	if err != nil {
		return nil, fmt.Errorf("failed to create state store: %w", err)
	}

	return &OIDCComponents{Provider: provider, Sessions: sessions, States: states}, nil
}

// handleOIDCLogin redirects to the identity provider.
func (s *Server) handleOIDCLogin(w http.ResponseWriter, r *http.Request) {
	if s.oidc == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	stateData, err := s.oidc.States.Generate(w, r.URL.Query().Get("return_to"))
	if err != nil {
		s.logger.Error("failed to generate login state", zap.Error(err))
		http.Error(w, "Failed to start login", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, s.oidc.Provider.AuthCodeURL(stateData.State, stateData.Nonce), http.StatusFound)
}

// handleOIDCCallback completes the login started by handleOIDCLogin.
func (s *Server) handleOIDCCallback(w http.ResponseWriter, r *http.Request) {
	if s.oidc == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	query := r.URL.Query()
	if errParam := query.Get("error"); errParam != "" {
		desc := query.Get("error_description")
		s.logger.Warn("identity provider returned an error",
			zap.String("error", errParam), zap.String("description", desc))
		s.loginFailed(w, r, "The identity provider refused the sign-in.")
		return
	}

	stateData, err := s.oidc.States.Validate(r, query.Get("state"))
	s.oidc.States.Clear(w)
	if err != nil {
		s.logger.Warn("invalid login state", zap.Error(err))
		s.loginFailed(w, r, "Your sign-in attempt expired. Please try again.")
		return
	}

	code := query.Get("code")
	if code == "" {
		s.loginFailed(w, r, "No authorization code was returned.")
		return
	}

	identity, err := s.oidc.Provider.Exchange(r.Context(), code, stateData.Nonce)
	if err != nil {
		s.logger.Warn("login rejected", zap.Error(err))
		s.loginFailed(w, r, "Your account is not allowed to sign in.")
		return
	}

	session, err := s.oidc.Sessions.Create(w, identity)
	if err != nil {
		s.logger.Error("failed to create session", zap.Error(err))
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	s.logger.Info("user signed in", zap.String("subject", session.Subject), zap.String("email", session.Email))
	http.Redirect(w, r, auth.LocalPath(stateData.ReturnTo), http.StatusSeeOther)
}

// handleLogout clears the session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s.oidc == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.oidc.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) loginFailed(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/login?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
