package web

import (
	"context"
	"net/http"
	"net/url"

	"github.com/weirlive/panw-object/internal/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// sessionAuth requires a valid session when OIDC is enabled. Without OIDC
// every request passes through.
func (s *Server) sessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.oidc == nil {
			next.ServeHTTP(w, r)
			return
		}

		session, err := s.oidc.Sessions.Get(r)
		if err != nil {
			s.oidc.Sessions.Clear(w)
			http.Redirect(w, r, "/login?return_to="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext returns the display name of the signed-in user, if any.
func userFromContext(r *http.Request) string {
	if session, ok := r.Context().Value(sessionContextKey).(*auth.Session); ok {
		return session.DisplayName()
	}
	return ""
}
