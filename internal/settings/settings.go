// Package settings persists reader preferences and per-chapter reading
// progress. Storage faults are warnings, never fatal: the reader falls back
// to in-memory defaults and keeps navigating.
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mlmathbook/mlmath/internal/db"
)

// settingsKey is the single well-known row under which the navigation
// settings document lives.
const settingsKey = "navigation"

// Navigation holds the reader-facing navigation preferences. The whole
// document is serialized as one JSON value; last write wins across sessions.
type Navigation struct {
	ShowProgress         bool `json:"showProgress"`
	ShowSectionList      bool `json:"showSectionList"`
	ShowKeyboardHelp     bool `json:"showKeyboardHelp"`
	AutoHideNavigation   bool `json:"autoHideNavigation"`
	SmoothScrolling      bool `json:"smoothScrolling"`
	RespectReducedMotion bool `json:"respectReducedMotion"`
}

// DefaultNavigation returns the out-of-the-box preferences.
func DefaultNavigation() Navigation {
	return Navigation{
		ShowProgress:         true,
		ShowSectionList:      true,
		ShowKeyboardHelp:     false,
		AutoHideNavigation:   false,
		SmoothScrolling:      true,
		RespectReducedMotion: true,
	}
}

// Progress records how far a reader got in one chapter.
type Progress struct {
	ChapterSlug string
	Progress    float64
	LastSection string
	UpdatedAt   time.Time
}

// Store provides persistence for settings and progress.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// LoadNavigation returns the persisted navigation settings, or defaults when
// the row is absent or unreadable. A corrupt document is logged and replaced
// by defaults; it never fails the caller.
func (s *Store) LoadNavigation(ctx context.Context) Navigation {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM nav_settings WHERE key = ?`, settingsKey,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultNavigation()
	}
	if err != nil {
		log.Printf("settings: loading navigation settings: %v", err)
		return DefaultNavigation()
	}

	var nav Navigation
	if err := json.Unmarshal([]byte(raw), &nav); err != nil {
		log.Printf("settings: corrupt navigation settings document, using defaults: %v", err)
		return DefaultNavigation()
	}
	return nav
}

// SaveNavigation persists the full settings document.
func (s *Store) SaveNavigation(ctx context.Context, nav Navigation) error {
	doc, err := json.Marshal(nav)
	if err != nil {
		return fmt.Errorf("marshalling navigation settings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO nav_settings (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = datetime('now')`,
		settingsKey, string(doc),
	)
	if err != nil {
		return fmt.Errorf("saving navigation settings: %w", err)
	}
	return nil
}

// SaveProgress upserts the reading position for one chapter.
func (s *Store) SaveProgress(ctx context.Context, p Progress) error {
	if p.Progress < 0 {
		p.Progress = 0
	}
	if p.Progress > 1 {
		p.Progress = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reading_progress (chapter_slug, progress, last_section, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(chapter_slug) DO UPDATE SET
			progress = excluded.progress,
			last_section = excluded.last_section,
			updated_at = datetime('now')`,
		p.ChapterSlug, p.Progress, p.LastSection,
	)
	if err != nil {
		return fmt.Errorf("saving reading progress: %w", err)
	}
	return nil
}

// GetProgress returns the recorded progress for a chapter, or a zero record
// when the chapter has never been read.
func (s *Store) GetProgress(ctx context.Context, chapterSlug string) (Progress, error) {
	p := Progress{ChapterSlug: chapterSlug}
	err := s.db.QueryRowContext(ctx, `
		SELECT progress, last_section, updated_at
		FROM reading_progress WHERE chapter_slug = ?`, chapterSlug,
	).Scan(&p.Progress, &p.LastSection, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("loading reading progress: %w", err)
	}
	return p, nil
}

// ListProgress returns progress for every chapter that has any, most
// recently read first.
func (s *Store) ListProgress(ctx context.Context) ([]Progress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT chapter_slug, progress, last_section, updated_at
		FROM reading_progress ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing reading progress: %w", err)
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		var p Progress
		if err := rows.Scan(&p.ChapterSlug, &p.Progress, &p.LastSection, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning reading progress: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
