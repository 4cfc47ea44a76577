package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/weirlive/panw-object/internal/api/handler"
	"github.com/weirlive/panw-object/internal/api/middleware"
	"github.com/weirlive/panw-object/internal/service"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router with all routes configured. The web
// UI, when given, is mounted at the root.
func NewRouter(generator *service.Generator, apiKeys []string, logger *zap.Logger, webHandler http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)

	// Health check (no auth required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":      "ok",
			"generations": generator.Stats().Generations,
		})
	})

	if webHandler != nil {
		r.Mount("/", webHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(apiKeys))

		h := handler.NewGenerateHandler(generator)
		r.Post("/generate", h.Generate)
		r.Post("/classify", h.Classify)
		r.Get("/policy", h.Policy)
	})

	return r
}
