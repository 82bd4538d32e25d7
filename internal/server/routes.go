package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlmathbook/mlmath/internal/content"
	"github.com/mlmathbook/mlmath/internal/keynav"
	"github.com/mlmathbook/mlmath/internal/settings"
	"github.com/mlmathbook/mlmath/internal/toc"
)

// chapterDetail is the full payload for one chapter page.
type chapterDetail struct {
	Chapter  content.Chapter  `json:"chapter"`
	HTML     string           `json:"html"`
	Outline  []*toc.Item      `json:"outline"`
	Previous *content.Chapter `json:"previous,omitempty"`
	Next     *content.Chapter `json:"next,omitempty"`
}

func (s *Server) registerAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/chapters", s.handleListChapters)
		r.Get("/chapters/{slug}", s.handleGetChapter)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Get("/progress", s.handleListProgress)
		r.Get("/progress/{slug}", s.handleGetProgress)
		r.Get("/shortcuts", s.handleShortcuts)
	})
}

func (s *Server) handleListChapters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Published())
}

func (s *Server) handleGetChapter(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	rendered, err := s.loader.Load(slug)
	if err != nil {
		http.Error(w, "chapter not found", http.StatusNotFound)
		return
	}

	prev, next := content.Navigation(slug)
	writeJSON(w, http.StatusOK, chapterDetail{
		Chapter:  rendered.Chapter,
		HTML:     rendered.HTML,
		Outline:  rendered.Outline,
		Previous: prev,
		Next:     next,
	})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.LoadNavigation(r.Context()))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var nav settings.Navigation
	if err := json.NewDecoder(r.Body).Decode(&nav); err != nil {
		http.Error(w, "invalid settings document", http.StatusBadRequest)
		return
	}
	if err := s.store.SaveNavigation(r.Context(), nav); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, nav)
}

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.ListProgress(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if all == nil {
		all = []settings.Progress{}
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if _, ok := content.BySlug(slug); !ok {
		http.Error(w, "chapter not found", http.StatusNotFound)
		return
	}

	p, err := s.store.GetProgress(r.Context(), slug)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleShortcuts(w http.ResponseWriter, r *http.Request) {
	d := keynav.New(nil)
	writeJSON(w, http.StatusOK, d.ByCategory())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
