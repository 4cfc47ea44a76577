// Package web serves the browser form for generating address-object commands.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/weirlive/panw-object/internal/service"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/*
var content embed.FS

// Server holds dependencies for web handlers.
type Server struct {
	generator *service.Generator
	logger    *zap.Logger
	oidc      *OIDCComponents
	templates map[string]*template.Template
}

// NewRouter creates a new web router. oidc may be nil, in which case the
// form is open to anyone who can reach it.
func NewRouter(generator *service.Generator, logger *zap.Logger, oidc *OIDCComponents) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		generator: generator,
		logger:    logger,
		oidc:      oidc,
		templates: parseTemplates(),
	}

	r := chi.NewRouter()

	// Static files
	staticFS, _ := fs.Sub(content, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public routes
	r.Get("/login", s.handleLoginPage)
	r.Get("/logout", s.handleLogout)
	r.Get("/auth/login", s.handleOIDCLogin)
	r.Get("/auth/callback", s.handleOIDCCallback)

	// Protected routes (require session when OIDC is enabled)
	r.Group(func(r chi.Router) {
		r.Use(s.sessionAuth)

		r.Get("/", s.handleForm)
		r.Post("/", s.handleGenerate)
	})

	return r
}

// parseTemplates parses every page template together with the base layout.
func parseTemplates() map[string]*template.Template {
	funcMap := template.FuncMap{
		"join":  strings.Join,
		"lower": strings.ToLower,
	}

	baseContent, err := content.ReadFile("templates/base.html")
	if err != nil {
		panic("failed to read base template: " + err.Error())
	}

	templates := make(map[string]*template.Template)
	pageFiles, _ := fs.Glob(content, "templates/*.html")
	for _, pagePath := range pageFiles {
		pageName := strings.TrimSuffix(filepath.Base(pagePath), ".html")
		if pageName == "base" {
			continue
		}

		pageContent, _ := content.ReadFile(pagePath)
		tmpl, err := template.New(pageName).Funcs(funcMap).Parse(string(baseContent) + string(pageContent))
		if err != nil {
			panic("failed to parse template " + pageName + ": " + err.Error())
		}
		templates[pageName] = tmpl
	}

	return templates
}

// PageData holds common data passed to all page templates.
type PageData struct {
	Title   string
	User    string
	Flash   *FlashMessage
	Content any
}

// FlashMessage is a notice shown above the page content.
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Title   string
	Message string
}

// render renders a full page using the base template.
func (s *Server) render(w http.ResponseWriter, status int, page string, data PageData) {
	tmpl, ok := s.templates[page]
	if !ok {
		http.Error(w, "Template not found: "+page, http.StatusInternalServerError)
		return
	}

	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		s.logger.Error("template error", zap.String("page", page), zap.Error(err))
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}
