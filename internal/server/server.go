// Package server exposes the publications lookup and the interactive
// sections over HTTP as JSON and HTML fragments.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/matsen/labsite/internal/chain"
	"github.com/matsen/labsite/internal/contact"
	"github.com/matsen/labsite/internal/content"
	"github.com/matsen/labsite/internal/theme"
	"github.com/matsen/labsite/internal/widget"
)

// Config holds server configuration.
type Config struct {
	Port         int
	AllowAll     bool   // allow all CORS origins (dev mode)
	DefaultORCID string // used when a request names no ORCID iD
}

// Deps are the collaborators the handlers use.
type Deps struct {
	Runner  chain.Runner
	Themes  theme.Scoper
	Content *content.Content
	Contact *contact.Submitter // nil disables POST /api/contact
	Logger  logrus.FieldLogger
}

// Server serves the lab site API.
type Server struct {
	cfg        Config
	runner     chain.Runner
	themes     theme.Scoper
	content    *content.Content
	contact    *contact.Submitter
	logger     logrus.FieldLogger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. Deps.Logger defaults to the standard logrus logger.
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		cfg:     cfg,
		runner:  deps.Runner,
		themes:  deps.Themes,
		content: deps.Content,
		contact: deps.Contact,
		logger:  deps.Logger,
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	s.router = s.buildRouter()
	return s
}

// corsOptions allows local development origins with credentials, or any
// origin without credentials when allowAll is set.
func corsOptions(allowAll bool) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if allowAll {
		opts.AllowedOrigins = []string{"*"}
		opts.AllowCredentials = false
	}
	return opts
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(corsOptions(s.cfg.AllowAll)))
	r.Use(visitor)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/publications", s.handlePublicationsJSON)
		r.Get("/theme", s.handleGetTheme)
		r.Post("/theme", s.handleSetTheme)
		r.Post("/contact", s.handleContact)
	})

	r.Route("/fragments", func(r chi.Router) {
		r.Get("/publications", s.handlePublicationsFragment)
		r.Get("/publications/sample", s.handleSampleFragment)
		r.Get("/faq", s.handleFAQ)
		r.Get("/projects", s.handleCards("project", widget.HideDisplay))
		r.Get("/opportunities", s.handleCards("opportunity", widget.HideVisibility))
		r.Get("/team", s.handleTeam)
		r.Get("/header", s.handleHeader)
	})

	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.WithField("addr", addr).Info("labsite server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
