// Package hashnav is the single authority translating between the active
// heading id and the URL fragment. It updates the address bar without
// feeding itself: programmatic fragment writes are flagged so the resulting
// hashchange event does not trigger a second navigate-and-scroll cycle.
package hashnav

import (
	"context"
	"log"
	"net/url"
	"strings"
	"sync"

	"github.com/mlmathbook/mlmath/internal/docview"
	"github.com/mlmathbook/mlmath/internal/scroll"
)

// ChangeEvent notifies listeners of a completed hash navigation.
type ChangeEvent struct {
	Old string
	New string
}

// Listener receives change events. Called synchronously on the manager's
// event goroutine; keep it cheap.
type Listener func(ChangeEvent)

// Opts controls one NavigateToHash call.
type Opts struct {
	// Silent suppresses listener notification.
	Silent bool
	// UpdateURL mirrors the id into the address bar.
	UpdateURL bool
	// Push adds a history entry instead of replacing; only explicit,
	// user-initiated navigation should set it.
	Push bool
	// Smooth animates the scroll; otherwise the jump is instant.
	Smooth bool
}

// Manager owns the session's fragment state.
type Manager struct {
	view    scroll.Surface
	engine  *scroll.Engine
	baseURL string
	scropts scroll.Options

	// Subscribed at construction so a hashchange emitted before Run's loop
	// is scheduled sits in the channel instead of being dropped.
	events <-chan docview.Event
	unsub  func()

	mu         sync.Mutex
	current    string
	selfEvents int
	listeners  map[int]Listener
	nextID     int
}

// New creates a manager. baseURL is the absolute page URL used for shareable
// section links. scrollOpts is the template for navigation scrolls.
func New(view scroll.Surface, engine *scroll.Engine, baseURL string, scrollOpts scroll.Options) *Manager {
	m := &Manager{
		view:      view,
		engine:    engine,
		baseURL:   baseURL,
		scropts:   scrollOpts,
		current:   view.Fragment(),
		listeners: make(map[int]Listener),
	}
	m.events, m.unsub = view.Subscribe()
	return m
}

// Run consumes hashchange events from the view until ctx is done. External
// changes (back button, bookmarked link) navigate; self-inflicted ones are
// swallowed by the reentrancy guard.
func (m *Manager) Run(ctx context.Context) {
	defer m.unsub()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-m.events:
			if ev.Kind != docview.EventHashChange {
				continue
			}
			if m.consumeSelfEvent() {
				continue
			}
			if err := m.NavigateToHash(ctx, ev.Hash, Opts{Smooth: true}); err != nil {
				log.Printf("hashnav: external hashchange %q: %v", ev.Hash, err)
			}
		}
	}
}

// Current returns the manager's notion of the current hash. This tracks
// explicit navigation, not passive visibility; the two are deliberately
// independent signals.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// NavigateToHash resolves id and scrolls to it. A missing heading is logged
// and ignored; interruption by the reader is not an error here.
func (m *Manager) NavigateToHash(ctx context.Context, id string, opts Opts) error {
	id = strings.TrimPrefix(id, "#")
	if id == "" {
		return nil
	}
	if _, ok := m.view.HeadingByID(id); !ok {
		log.Printf("hashnav: heading %q not found, ignoring navigation", id)
		return nil
	}

	if opts.UpdateURL {
		m.markSelfEvent()
		if opts.Push {
			m.view.PushFragment(id)
		} else {
			m.view.ReplaceFragment(id)
		}
	}

	scropts := m.scropts
	if !opts.Smooth {
		scropts.Behavior = scroll.BehaviorInstant
	}
	if err := m.engine.To(ctx, id, scropts); err != nil && err != scroll.ErrInterrupted {
		return err
	}

	m.mu.Lock()
	old := m.current
	m.current = id
	var fns []Listener
	if !opts.Silent {
		for _, fn := range m.listeners {
			fns = append(fns, fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ChangeEvent{Old: old, New: id})
	}
	return nil
}

// UpdateHash mirrors an id into the URL without scrolling or notifying;
// used by passive scroll-tracking. Never adds a history entry.
func (m *Manager) UpdateHash(id string) {
	if id == "" || id == m.view.Fragment() {
		return
	}
	m.markSelfEvent()
	m.view.ReplaceFragment(id)
}

// Hashes returns the ordered list of heading ids present in the document.
func (m *Manager) Hashes() []string {
	boxes := m.view.Headings()
	ids := make([]string, 0, len(boxes))
	for _, b := range boxes {
		if b.ID != "" {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// NextHash returns the heading id after the current hash, or "" at the end.
// With no current hash the first heading is next.
func (m *Manager) NextHash() string {
	ids := m.Hashes()
	idx := indexOf(ids, m.Current())
	if idx == -1 && len(ids) > 0 {
		return ids[0]
	}
	if idx < 0 || idx >= len(ids)-1 {
		return ""
	}
	return ids[idx+1]
}

// PreviousHash returns the heading id before the current hash, or "" at the
// start.
func (m *Manager) PreviousHash() string {
	ids := m.Hashes()
	idx := indexOf(ids, m.Current())
	if idx <= 0 {
		return ""
	}
	return ids[idx-1]
}

// NavigateNext moves to the next section. Reports whether navigation
// happened.
func (m *Manager) NavigateNext(ctx context.Context) bool {
	next := m.NextHash()
	if next == "" {
		return false
	}
	return m.NavigateToHash(ctx, next, Opts{UpdateURL: true, Push: true, Smooth: true}) == nil
}

// NavigatePrevious moves to the previous section.
func (m *Manager) NavigatePrevious(ctx context.Context) bool {
	prev := m.PreviousHash()
	if prev == "" {
		return false
	}
	return m.NavigateToHash(ctx, prev, Opts{UpdateURL: true, Push: true, Smooth: true}) == nil
}

// SectionURL builds the fully-qualified shareable URL for a section.
func (m *Manager) SectionURL(id string) string {
	u, err := url.Parse(m.baseURL)
	if err != nil {
		return m.baseURL + "#" + id
	}
	u.Fragment = strings.TrimPrefix(id, "#")
	return u.String()
}

// OnChange registers a listener; the returned function unsubscribes it.
func (m *Manager) OnChange(fn Listener) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Manager) markSelfEvent() {
	m.mu.Lock()
	m.selfEvents++
	m.mu.Unlock()
}

func (m *Manager) consumeSelfEvent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selfEvents > 0 {
		m.selfEvents--
		return true
	}
	return false
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
