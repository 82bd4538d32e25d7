// Package observer owns the observation lifecycle for one document render:
// it funnels scroll, resize, mutation, and hashchange events into a single
// loop, recomputes section visibility on a throttled cadence, and exposes
// the result as an atomically-updated read model.
package observer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mlmathbook/mlmath/internal/docview"
	"github.com/mlmathbook/mlmath/internal/visibility"
)

// Config tunes the observation timers. None of the windows are
// correctness-critical; they bound recomputation cost and quiesce detection.
type Config struct {
	Visibility visibility.Config

	// ThrottleInterval caps visibility recomputation frequency (one frame).
	ThrottleInterval time.Duration
	// ScrollStopDelay is the quiet window after which IsScrolling clears.
	ScrollStopDelay time.Duration
	// RescanDelay lets a mutated DOM settle before the full re-scan.
	RescanDelay time.Duration
}

// DefaultConfig returns the standard timing: 16ms throttle, 150ms scroll
// stop, 100ms rescan grace.
func DefaultConfig() Config {
	return Config{
		Visibility:       visibility.DefaultConfig(),
		ThrottleInterval: 16 * time.Millisecond,
		ScrollStopDelay:  150 * time.Millisecond,
		RescanDelay:      100 * time.Millisecond,
	}
}

// Snapshot is the read model consumers see. Fields are computed together in
// one tick; a Snapshot is never half-updated.
type Snapshot struct {
	ActiveSection       string
	VisibleSections     []string
	SectionVisibilities []visibility.SectionVisibility
	ReadingProgress     float64
	IsScrolling         bool
	NextSection         *visibility.SectionVisibility
	PreviousSection     *visibility.SectionVisibility
}

// Observer watches a document view and maintains the navigation read model.
type Observer struct {
	view docview.View
	cfg  Config

	// Subscribed at construction so events emitted before Run's loop is
	// scheduled sit in the channel instead of being dropped.
	events <-chan docview.Event
	unsub  func()

	mu   sync.RWMutex
	snap Snapshot

	subMu  sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

// New creates an observer over the given view and registers for its events.
func New(view docview.View, cfg Config) *Observer {
	if cfg.ThrottleInterval <= 0 {
		cfg.ThrottleInterval = 16 * time.Millisecond
	}
	if cfg.ScrollStopDelay <= 0 {
		cfg.ScrollStopDelay = 150 * time.Millisecond
	}
	if cfg.RescanDelay <= 0 {
		cfg.RescanDelay = 100 * time.Millisecond
	}
	o := &Observer{
		view: view,
		cfg:  cfg,
		subs: make(map[int]chan struct{}),
	}
	o.events, o.unsub = view.Subscribe()
	return o
}

// Snapshot returns the current read model.
func (o *Observer) Snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.snap
}

// Subscribe returns a coalescing change signal; the returned function
// unsubscribes.
func (o *Observer) Subscribe() (<-chan struct{}, func()) {
	o.subMu.Lock()
	id := o.nextID
	o.nextID++
	ch := make(chan struct{}, 1)
	o.subs[id] = ch
	o.subMu.Unlock()

	return ch, func() {
		o.subMu.Lock()
		delete(o.subs, id)
		o.subMu.Unlock()
	}
}

// AdoptHash sets the active section from a trusted external signal (a
// bookmarked fragment, back-button navigation), bypassing visibility math.
func (o *Observer) AdoptHash(id string) {
	if id == "" {
		return
	}
	o.mu.Lock()
	o.snap.ActiveSection = id
	o.mu.Unlock()
	o.notify()
}

// Run processes events until ctx is done. The initial scan happens
// immediately; afterwards recomputation is throttled, the scrolling flag is
// debounced, and mutations trigger a delayed full rescan. The three timers
// are independent.
func (o *Observer) Run(ctx context.Context) {
	defer o.unsub()

	var (
		throttle   = newStoppedTimer()
		scrollStop = newStoppedTimer()
		rescan     = newStoppedTimer()

		recomputeQueued bool
	)
	defer throttle.Stop()
	defer scrollStop.Stop()
	defer rescan.Stop()

	o.recompute()

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-o.events:
			switch ev.Kind {
			case docview.EventScroll:
				o.setScrolling(true)
				scrollStop.Reset(o.cfg.ScrollStopDelay)
				if !recomputeQueued {
					recomputeQueued = true
					throttle.Reset(o.cfg.ThrottleInterval)
				}
			case docview.EventResize:
				if !recomputeQueued {
					recomputeQueued = true
					throttle.Reset(o.cfg.ThrottleInterval)
				}
			case docview.EventMutate:
				rescan.Reset(o.cfg.RescanDelay)
			case docview.EventHashChange:
				o.AdoptHash(ev.Hash)
			}

		case <-throttle.C:
			recomputeQueued = false
			o.recompute()

		case <-rescan.C:
			o.recompute()

		case <-scrollStop.C:
			o.setScrolling(false)
		}
	}
}

// recompute rebuilds the read model from current geometry. It never lets a
// fault escape: a broken tick keeps the prior state rather than killing the
// observation loop.
func (o *Observer) recompute() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("observer: recompute recovered: %v", r)
		}
	}()

	headings := o.view.Headings()
	m := o.view.Metrics()

	if len(headings) == 0 {
		// Nothing to observe. Not an error; outputs stay empty.
		o.mu.Lock()
		scrolling := o.snap.IsScrolling
		o.snap = Snapshot{IsScrolling: scrolling}
		o.mu.Unlock()
		o.notify()
		return
	}

	vis := visibility.Calculate(headings, m, o.cfg.Visibility)

	var visibleIDs []string
	for _, sv := range vis {
		if sv.IsInView {
			visibleIDs = append(visibleIDs, sv.ID)
		}
	}

	o.mu.Lock()
	if best := visibility.MostRelevant(vis); best != nil {
		o.snap.ActiveSection = best.ID
	}
	o.snap.VisibleSections = visibleIDs
	o.snap.SectionVisibilities = vis
	o.snap.ReadingProgress = visibility.ReadingProgress(m)
	o.snap.NextSection = visibility.Next(vis, m, o.cfg.Visibility)
	o.snap.PreviousSection = visibility.Previous(vis, m, o.cfg.Visibility)
	o.mu.Unlock()
	o.notify()
}

func (o *Observer) setScrolling(v bool) {
	o.mu.Lock()
	changed := o.snap.IsScrolling != v
	o.snap.IsScrolling = v
	o.mu.Unlock()
	if changed {
		o.notify()
	}
}

func (o *Observer) notify() {
	o.subMu.Lock()
	for _, ch := range o.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	o.subMu.Unlock()
}

// stoppedTimer wraps time.Timer with a drained, initially-stopped state so
// Reset is always safe.
type stoppedTimer struct {
	*time.Timer
}

func newStoppedTimer() *stoppedTimer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return &stoppedTimer{t}
}

func (t *stoppedTimer) Reset(d time.Duration) {
	if !t.Timer.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Timer.Reset(d)
}
