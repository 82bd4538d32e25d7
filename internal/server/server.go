// Package server exposes the book over HTTP: REST endpoints for chapters,
// settings, and progress, plus a WebSocket session that mirrors the browser
// viewport into a server-side navigation session.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mlmathbook/mlmath/internal/content"
	"github.com/mlmathbook/mlmath/internal/db"
	"github.com/mlmathbook/mlmath/internal/settings"
)

// Config holds server configuration.
type Config struct {
	Port       int
	BaseURL    string // absolute site URL used in shareable section links
	ContentDir string // directory containing chapter markdown
	AllowAll   bool   // allow all CORS origins (dev mode)
}

// Server is the reading server.
type Server struct {
	cfg        Config
	db         *db.DB
	store      *settings.Store
	loader     *content.Loader
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies.
func New(cfg Config, database *db.DB) *Server {
	s := &Server{
		cfg:    cfg,
		db:     database,
		store:  settings.NewStore(database),
		loader: content.NewLoader(cfg.ContentDir),
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.registerAPIRoutes(r)
	r.Get("/assets/nav-client.js", handleClientScript)
	r.Get("/ws/session", s.handleSession)

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Store returns the settings store.
func (s *Server) Store() *settings.Store { return s.store }

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

	log.Printf("mlmath server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
