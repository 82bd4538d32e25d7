// Package nav is the composition root for one reading session: it owns the
// document view, the section observer, the scroll engine, fragment state,
// and keyboard dispatch, and exposes the navigation actions the UI calls.
package nav

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/mlmathbook/mlmath/internal/docview"
	"github.com/mlmathbook/mlmath/internal/hashnav"
	"github.com/mlmathbook/mlmath/internal/keynav"
	"github.com/mlmathbook/mlmath/internal/observer"
	"github.com/mlmathbook/mlmath/internal/scroll"
	"github.com/mlmathbook/mlmath/internal/settings"
	"github.com/mlmathbook/mlmath/internal/toc"
)

// Clipboard copies text to the reader's clipboard. Implementations that
// cannot (permissions, headless session) return an error; copy failures are
// never fatal.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// Options configures a Navigator.
type Options struct {
	// BaseURL is the absolute page URL for shareable section links.
	BaseURL string
	// ChapterSlug keys persisted reading progress.
	ChapterSlug string
	// Store persists settings and progress. Nil runs fully in memory.
	Store *settings.Store
	// Clipboard backs the copy-URL shortcut. Nil degrades to a logged no-op
	// failure.
	Clipboard Clipboard
	// ReducedMotion reports the platform accessibility preference.
	ReducedMotion func() bool
	// Scroll is the template for navigation scrolls.
	Scroll scroll.Options
	// Observer overrides the observation timing.
	Observer observer.Config
}

// Navigator wires the navigation subsystem together for one session.
// Exactly one scroll engine and one fragment authority exist per Navigator.
type Navigator struct {
	page     *docview.Page
	observer *observer.Observer
	engine   *scroll.Engine
	hash     *hashnav.Manager
	keys     *keynav.Dispatcher

	store       *settings.Store
	clip        Clipboard
	chapterSlug string
	outline     []*toc.Item
	scropts     scroll.Options
	platform    func() bool

	mu         sync.Mutex
	settings   settings.Navigation
	tocVisible bool

	cancel context.CancelFunc
}

// New builds a Navigator over the given page and chapter outline. Call
// Start before using the navigation actions.
func New(page *docview.Page, outline []*toc.Item, opts Options) *Navigator {
	if opts.Scroll == (scroll.Options{}) {
		opts.Scroll = scroll.DefaultOptions()
	}
	if opts.Observer == (observer.Config{}) {
		opts.Observer = observer.DefaultConfig()
	}
	platform := opts.ReducedMotion
	if platform == nil {
		platform = func() bool { return false }
	}

	n := &Navigator{
		page:        page,
		store:       opts.Store,
		clip:        opts.Clipboard,
		chapterSlug: opts.ChapterSlug,
		outline:     outline,
		scropts:     opts.Scroll,
		platform:    platform,
		settings:    settings.DefaultNavigation(),
	}

	n.engine = scroll.New(page, n.reducedMotion)
	n.hash = hashnav.New(page, n.engine, opts.BaseURL, opts.Scroll)
	n.observer = observer.New(page, opts.Observer)
	n.keys = keynav.New(n.handleAction)

	return n
}

// Start loads persisted settings and launches the observation and fragment
// loops. It is not safe to call twice.
func (n *Navigator) Start(ctx context.Context) {
	if n.store != nil {
		loaded := n.store.LoadNavigation(ctx)
		n.mu.Lock()
		n.settings = loaded
		n.tocVisible = loaded.ShowSectionList
		n.mu.Unlock()
	} else {
		n.mu.Lock()
		n.tocVisible = n.settings.ShowSectionList
		n.mu.Unlock()
	}

	runCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	go n.observer.Run(runCtx)
	go n.hash.Run(runCtx)
	go n.mirrorLoop(runCtx)

	// Adopt a fragment the page arrived with into the active section.
	if frag := n.page.Fragment(); frag != "" {
		n.observer.AdoptHash(frag)
	}
}

// Close stops the session, persisting reading progress first.
func (n *Navigator) Close() {
	if n.store != nil && n.chapterSlug != "" {
		snap := n.observer.Snapshot()
		err := n.store.SaveProgress(context.Background(), settings.Progress{
			ChapterSlug: n.chapterSlug,
			Progress:    snap.ReadingProgress,
			LastSection: snap.ActiveSection,
		})
		if err != nil {
			log.Printf("nav: saving reading progress: %v", err)
		}
	}
	if n.cancel != nil {
		n.cancel()
	}
	n.engine.Cancel()
}

// mirrorLoop reflects passive scroll-tracking into the URL fragment. It
// fires only when scrolling quiesces, and always replaces, never pushes:
// only explicit navigation earns a history entry.
func (n *Navigator) mirrorLoop(ctx context.Context) {
	updates, unsub := n.observer.Subscribe()
	defer unsub()

	wasScrolling := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			snap := n.observer.Snapshot()
			if wasScrolling && !snap.IsScrolling && snap.ActiveSection != "" {
				n.hash.UpdateHash(snap.ActiveSection)
			}
			wasScrolling = snap.IsScrolling
		}
	}
}

// reducedMotion is the engine's motion provider: user settings first, then
// the platform preference.
func (n *Navigator) reducedMotion() bool {
	n.mu.Lock()
	s := n.settings
	n.mu.Unlock()
	if !s.SmoothScrolling {
		return true
	}
	return s.RespectReducedMotion && n.platform()
}

// NavigateToSection scrolls to the section and records it in history. An
// unknown id is a logged no-op.
func (n *Navigator) NavigateToSection(ctx context.Context, id string) error {
	return n.hash.NavigateToHash(ctx, id, hashnav.Opts{
		UpdateURL: true,
		Push:      true,
		Smooth:    true,
	})
}

// NavigateToNext moves to the section below the reading line. Returns false
// at the end of the document.
func (n *Navigator) NavigateToNext(ctx context.Context) bool {
	next := n.observer.Snapshot().NextSection
	if next == nil {
		return false
	}
	if err := n.NavigateToSection(ctx, next.ID); err != nil {
		log.Printf("nav: navigating to next section: %v", err)
		return false
	}
	return true
}

// NavigateToPrevious moves to the section above the reading line. Returns
// false at the top of the document.
func (n *Navigator) NavigateToPrevious(ctx context.Context) bool {
	prev := n.observer.Snapshot().PreviousSection
	if prev == nil {
		return false
	}
	if err := n.NavigateToSection(ctx, prev.ID); err != nil {
		log.Printf("nav: navigating to previous section: %v", err)
		return false
	}
	return true
}

// JumpToTop scrolls to the top of the document.
func (n *Navigator) JumpToTop(ctx context.Context) error {
	opts := n.scropts
	opts.Offset = 0
	return n.engine.ToPosition(ctx, 0, opts)
}

// JumpToBottom scrolls to the end of the document.
func (n *Navigator) JumpToBottom(ctx context.Context) error {
	opts := n.scropts
	opts.Offset = 0
	m := n.page.Metrics()
	return n.engine.ToPosition(ctx, m.DocumentHeight-m.ViewportHeight, opts)
}

// ToggleToc flips the table-of-contents panel and returns the new state.
func (n *Navigator) ToggleToc() bool {
	n.mu.Lock()
	n.tocVisible = !n.tocVisible
	v := n.tocVisible
	n.mu.Unlock()
	return v
}

// TocVisible reports whether the table-of-contents panel is shown.
func (n *Navigator) TocVisible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tocVisible
}

// CopySectionURL copies a shareable link to the active section. With no
// active section it copies the page URL. Clipboard failures are logged and
// returned; they never panic or crash the session.
func (n *Navigator) CopySectionURL(ctx context.Context) (string, error) {
	url := n.hash.SectionURL(n.observer.Snapshot().ActiveSection)
	if n.clip == nil {
		log.Printf("nav: no clipboard available, not copying %s", url)
		return url, fmt.Errorf("no clipboard available")
	}
	if err := n.clip.Copy(ctx, url); err != nil {
		log.Printf("nav: copying section url: %v", err)
		return url, fmt.Errorf("copying section url: %w", err)
	}
	return url, nil
}

// HandleKey routes one key press through the shortcut table. Returns true
// when a shortcut fired.
func (n *Navigator) HandleKey(ctx context.Context, ev keynav.KeyEvent) bool {
	return n.keys.Dispatch(ctx, ev)
}

// Shortcuts returns the active shortcut table for the help overlay.
func (n *Navigator) Shortcuts() []keynav.Shortcut {
	return n.keys.Shortcuts()
}

func (n *Navigator) handleAction(ctx context.Context, action keynav.Action) error {
	switch action {
	case keynav.ActionNextSection:
		n.NavigateToNext(ctx)
	case keynav.ActionPreviousSection:
		n.NavigateToPrevious(ctx)
	case keynav.ActionTop:
		return n.JumpToTop(ctx)
	case keynav.ActionBottom:
		return n.JumpToBottom(ctx)
	case keynav.ActionToggleToc:
		n.ToggleToc()
	case keynav.ActionCopyURL:
		_, err := n.CopySectionURL(ctx)
		return err
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

// Settings returns the current navigation settings.
func (n *Navigator) Settings() settings.Navigation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.settings
}

// UpdateSettings replaces the settings document and persists it. A storage
// failure keeps the in-memory update and logs a warning.
func (n *Navigator) UpdateSettings(ctx context.Context, s settings.Navigation) {
	n.mu.Lock()
	n.settings = s
	n.mu.Unlock()

	if n.store == nil {
		return
	}
	if err := n.store.SaveNavigation(ctx, s); err != nil {
		log.Printf("nav: persisting settings: %v", err)
	}
}

// State is the full navigation read model pushed to clients.
type State struct {
	ActiveSection   string      `json:"activeSection"`
	VisibleSections []string    `json:"visibleSections"`
	ReadingProgress float64     `json:"readingProgress"`
	IsScrolling     bool        `json:"isScrolling"`
	CurrentHash     string      `json:"currentHash"`
	NextSection     string      `json:"nextSection,omitempty"`
	PreviousSection string      `json:"previousSection,omitempty"`
	TocVisible      bool        `json:"tocVisible"`
	Outline         []*toc.Item `json:"outline"`
}

// State assembles the current read model, with active states marked in the
// outline.
func (n *Navigator) State() State {
	snap := n.observer.Snapshot()

	st := State{
		ActiveSection:   snap.ActiveSection,
		VisibleSections: snap.VisibleSections,
		ReadingProgress: snap.ReadingProgress,
		IsScrolling:     snap.IsScrolling,
		CurrentHash:     n.hash.Current(),
		TocVisible:      n.TocVisible(),
		Outline:         toc.UpdateActiveStates(n.outline, snap.ActiveSection),
	}
	if snap.NextSection != nil {
		st.NextSection = snap.NextSection.ID
	}
	if snap.PreviousSection != nil {
		st.PreviousSection = snap.PreviousSection.ID
	}
	return st
}

// Updates returns a coalescing signal that fires when the read model
// changes; the returned function unsubscribes.
func (n *Navigator) Updates() (<-chan struct{}, func()) {
	return n.observer.Subscribe()
}

// Page exposes the underlying document view for event intake (the transport
// bridge feeds browser events into it).
func (n *Navigator) Page() *docview.Page {
	return n.page
}
