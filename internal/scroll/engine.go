// Package scroll animates the viewport toward a target heading with named
// easing curves, a single exclusive animation slot, and cancellation the
// moment the reader touches the page.
package scroll

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mlmathbook/mlmath/internal/docview"
)

var (
	// ErrTargetNotFound reports that the requested heading id resolved to
	// nothing. Callers need to distinguish garbage input from a no-op.
	ErrTargetNotFound = errors.New("scroll: target not found")
	// ErrInterrupted reports that the animation was cancelled, either by
	// reader input or by a newer scroll taking the slot. Expected, not logged
	// as an error.
	ErrInterrupted = errors.New("scroll: interrupted")
)

// Behavior selects animated or instant movement.
type Behavior string

const (
	BehaviorSmooth  Behavior = "smooth"
	BehaviorInstant Behavior = "instant"
)

// Options configures one To call.
type Options struct {
	Duration time.Duration
	Easing   Easing
	Offset   float64
	Behavior Behavior
}

// DefaultOptions matches the reader UI defaults: 800ms smooth scroll with an
// 80px fixed-header offset.
func DefaultOptions() Options {
	return Options{
		Duration: 800 * time.Millisecond,
		Easing:   EasingSmooth,
		Offset:   80,
		Behavior: BehaviorSmooth,
	}
}

// Surface is the document the engine moves: a View that can also resolve
// heading ids to absolute positions.
type Surface interface {
	docview.View
	HeadingByID(id string) (docview.Heading, bool)
}

// Engine owns the single in-flight scroll animation for a session.
type Engine struct {
	view Surface

	// ReducedMotion reports the platform accessibility preference. Checked at
	// animation start and on every frame, so a live change degrades an
	// in-flight smooth scroll to an instant jump.
	reducedMotion func() bool

	frameInterval time.Duration

	mu         sync.Mutex
	generation int
	cancel     context.CancelFunc
}

// New creates an engine over the given surface. reducedMotion may be nil
// when no preference source is available.
func New(view Surface, reducedMotion func() bool) *Engine {
	if reducedMotion == nil {
		reducedMotion = func() bool { return false }
	}
	return &Engine{
		view:          view,
		reducedMotion: reducedMotion,
		frameInterval: 16 * time.Millisecond,
	}
}

// SetFrameInterval overrides the animation frame cadence.
func (e *Engine) SetFrameInterval(d time.Duration) {
	if d > 0 {
		e.frameInterval = d
	}
}

// To animates toward the heading with the given id (a leading '#' is
// accepted). Blocks until the animation completes, is interrupted, or ctx is
// done.
func (e *Engine) To(ctx context.Context, target string, opts Options) error {
	id := strings.TrimPrefix(target, "#")
	h, ok := e.view.HeadingByID(id)
	if !ok {
		return ErrTargetNotFound
	}
	return e.ToPosition(ctx, h.Top-opts.Offset, opts)
}

// ToPosition animates toward an absolute scroll position. Any in-flight
// animation is cancelled first, whatever this call ends up doing.
func (e *Engine) ToPosition(ctx context.Context, target float64, opts Options) error {
	e.Cancel()

	m := e.view.Metrics()
	target = clampPosition(target, m)
	start := m.ScrollTop
	distance := target - start

	// Already there: a no-op success, not a degenerate error.
	if distance < 1 && distance > -1 {
		return nil
	}

	if opts.Behavior == BehaviorInstant || opts.Duration <= 0 || e.reducedMotion() {
		e.view.SetScrollTop(target)
		return nil
	}

	// Take the exclusive slot, cancelling whatever held it.
	animCtx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.generation++
	gen := e.generation
	e.cancel = cancel
	e.mu.Unlock()

	defer func() {
		cancel()
		e.mu.Lock()
		if e.generation == gen {
			e.cancel = nil
		}
		e.mu.Unlock()
	}()

	return e.animate(animCtx, start, distance, opts)
}

// Cancel aborts any in-flight animation; its caller receives ErrInterrupted.
func (e *Engine) Cancel() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.mu.Unlock()
}

// Active reports whether an animation currently holds the slot.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancel != nil
}

func (e *Engine) animate(ctx context.Context, start, distance float64, opts Options) error {
	events, unsubscribe := e.view.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(e.frameInterval)
	defer ticker.Stop()

	startTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			// Stop where we are; no snap-back.
			return ErrInterrupted

		case ev := <-events:
			if ev.Kind == docview.EventInput {
				// The reader took over. Never fight them.
				return ErrInterrupted
			}

		case now := <-ticker.C:
			if e.reducedMotion() {
				e.view.SetScrollTop(start + distance)
				return nil
			}
			progress := float64(now.Sub(startTime)) / float64(opts.Duration)
			if progress >= 1 {
				e.view.SetScrollTop(start + distance)
				return nil
			}
			e.view.SetScrollTop(start + distance*ease(opts.Easing, progress))
		}
	}
}

func clampPosition(target float64, m docview.Metrics) float64 {
	max := m.DocumentHeight - m.ViewportHeight
	if max < 0 {
		max = 0
	}
	if target < 0 {
		return 0
	}
	if target > max {
		return max
	}
	return target
}
