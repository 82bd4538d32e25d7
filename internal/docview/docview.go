// Package docview abstracts the rendered document surface the navigation
// engine observes: heading geometry, viewport metrics, and the event stream
// produced by the reader's interactions. The engine never touches a real
// DOM; a browser client mirrors its viewport into a Page over the websocket
// bridge, and tests drive a Page directly.
package docview

// HeadingBox is the geometry snapshot of one heading at observation time.
// Top is relative to the current viewport top (negative when scrolled past).
type HeadingBox struct {
	ID     string
	Title  string
	Level  int
	Top    float64
	Height float64
}

// Metrics describes the viewport and document geometry for one tick.
type Metrics struct {
	ScrollTop      float64
	ViewportHeight float64
	DocumentHeight float64
}

// EventKind discriminates the events a View emits.
type EventKind int

const (
	EventScroll EventKind = iota
	EventResize
	EventMutate
	EventHashChange
	// EventInput covers wheel, touch, and key presses: the signals that mean
	// the reader took over and an in-flight programmatic scroll must yield.
	EventInput
)

// Event is one occurrence on the document surface. Hash is set only for
// EventHashChange.
type Event struct {
	Kind EventKind
	Hash string
}

// View is the document surface contract consumed by the navigation engine.
type View interface {
	// Headings returns viewport-relative boxes in document order.
	Headings() []HeadingBox
	// Metrics returns the current scroll and viewport geometry.
	Metrics() Metrics
	// SetScrollTop moves the viewport to an absolute position, clamped to
	// the scrollable range.
	SetScrollTop(top float64)
	// Subscribe registers an event listener. The returned function removes
	// it. Delivery is best-effort: a slow consumer loses events rather than
	// blocking the producer.
	Subscribe() (<-chan Event, func())
	// Fragment returns the current URL fragment (without '#').
	Fragment() string
	// ReplaceFragment updates the fragment without adding a history entry.
	ReplaceFragment(id string)
	// PushFragment updates the fragment and adds a history entry.
	PushFragment(id string)
}
