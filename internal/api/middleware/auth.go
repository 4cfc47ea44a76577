package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/weirlive/panw-object/internal/domain"
)

type contextKey string

const (
	APIKeyContextKey    contextKey = "api_key"
	RequestIDContextKey contextKey = "request_id"
)

// Auth creates bearer API-key middleware. With no keys configured every
// request is let through.
func Auth(keys []string) func(http.Handler) http.Handler {
	hashes := make([][]byte, 0, len(keys))
	for _, k := range keys {
		h := sha256.Sum256([]byte(k))
		hashes = append(hashes, h[:])
	}

	return func(next http.Handler) http.Handler {
		if len(hashes) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			apiKey, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				unauthorized(w, "invalid authorization header format")
				return
			}
			if apiKey == "" {
				unauthorized(w, "empty API key")
				return
			}

			sum := sha256.Sum256([]byte(apiKey))
			matched := 0
			for _, h := range hashes {
				matched |= subtle.ConstantTimeCompare(sum[:], h)
			}
			if matched != 1 {
				unauthorized(w, "invalid API key")
				return
			}

			ctx := withAPIKey(r.Context(), hex.EncodeToString(sum[:4]))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(&domain.APIError{
		Code:      http.StatusUnauthorized,
		ErrorCode: domain.ErrCodeUnauthorized,
		Message:   message,
	})
}

// apiKeySlot carries the key fingerprint back out to middleware that ran
// before Auth, such as Logging.
type apiKeySlot struct {
	fingerprint string
}

func withAPIKeySlot(ctx context.Context) context.Context {
	if _, ok := ctx.Value(APIKeyContextKey).(*apiKeySlot); ok {
		return ctx
	}
	return context.WithValue(ctx, APIKeyContextKey, &apiKeySlot{})
}

func withAPIKey(ctx context.Context, fingerprint string) context.Context {
	ctx = withAPIKeySlot(ctx)
	ctx.Value(APIKeyContextKey).(*apiKeySlot).fingerprint = fingerprint
	return ctx
}

// GetAPIKeyFromContext returns a short fingerprint of the key that
// authenticated the request, or "" when auth is disabled.
func GetAPIKeyFromContext(ctx context.Context) string {
	if slot, ok := ctx.Value(APIKeyContextKey).(*apiKeySlot); ok {
		return slot.fingerprint
	}
	return ""
}
