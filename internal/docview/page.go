package docview

import "sync"

// Heading places one heading on a Page at an absolute document offset.
type Heading struct {
	ID     string
	Title  string
	Level  int
	Top    float64
	Height float64
}

// Page is the in-memory View implementation. The websocket bridge updates it
// from browser reports; tests update it directly. All methods are safe for
// concurrent use.
type Page struct {
	mu             sync.Mutex
	headings       []Heading
	scrollTop      float64
	viewportHeight float64
	documentHeight float64
	fragment       string
	historyLen     int

	subs   map[int]chan Event
	nextID int
}

// NewPage creates a page with the given viewport and document heights.
func NewPage(viewportHeight, documentHeight float64) *Page {
	return &Page{
		viewportHeight: viewportHeight,
		documentHeight: documentHeight,
		subs:           make(map[int]chan Event),
	}
}

// SetLayout replaces the heading layout and document height, emitting a
// mutation event. Called on content change (chapter navigation, re-render).
func (p *Page) SetLayout(headings []Heading, documentHeight float64) {
	p.mu.Lock()
	p.headings = append([]Heading(nil), headings...)
	p.documentHeight = documentHeight
	p.mu.Unlock()
	p.emit(Event{Kind: EventMutate})
}

// Headings returns viewport-relative boxes in document order.
func (p *Page) Headings() []HeadingBox {
	p.mu.Lock()
	defer p.mu.Unlock()
	boxes := make([]HeadingBox, len(p.headings))
	for i, h := range p.headings {
		boxes[i] = HeadingBox{
			ID:     h.ID,
			Title:  h.Title,
			Level:  h.Level,
			Top:    h.Top - p.scrollTop,
			Height: h.Height,
		}
	}
	return boxes
}

// HeadingByID reports the absolute top of the heading with the given id.
func (p *Page) HeadingByID(id string) (Heading, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.headings {
		if h.ID == id {
			return h, true
		}
	}
	return Heading{}, false
}

// Metrics returns the current geometry.
func (p *Page) Metrics() Metrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Metrics{
		ScrollTop:      p.scrollTop,
		ViewportHeight: p.viewportHeight,
		DocumentHeight: p.documentHeight,
	}
}

// SetScrollTop moves the viewport programmatically. A scroll event is
// emitted, as a browser would on window.scrollTo; it is not an input event,
// so it never interrupts the scroll engine's own animation.
func (p *Page) SetScrollTop(top float64) {
	p.mu.Lock()
	p.scrollTop = p.clamp(top)
	p.mu.Unlock()
	p.emit(Event{Kind: EventScroll})
}

// UserScroll simulates reader-initiated scrolling: position change plus an
// input event.
func (p *Page) UserScroll(top float64) {
	p.mu.Lock()
	p.scrollTop = p.clamp(top)
	p.mu.Unlock()
	p.emit(Event{Kind: EventInput})
	p.emit(Event{Kind: EventScroll})
}

// UserInput emits a bare input event (wheel, touch, key press).
func (p *Page) UserInput() {
	p.emit(Event{Kind: EventInput})
}

// Resize changes the viewport height and emits a resize event.
func (p *Page) Resize(viewportHeight float64) {
	p.mu.Lock()
	p.viewportHeight = viewportHeight
	p.scrollTop = p.clamp(p.scrollTop)
	p.mu.Unlock()
	p.emit(Event{Kind: EventResize})
}

// Fragment returns the current URL fragment.
func (p *Page) Fragment() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fragment
}

// ReplaceFragment mirrors history.replaceState + the hashchange the browser
// fires afterwards.
func (p *Page) ReplaceFragment(id string) {
	p.setFragment(id, false)
}

// PushFragment mirrors history.pushState: same as ReplaceFragment but adds a
// history entry.
func (p *Page) PushFragment(id string) {
	p.setFragment(id, true)
}

// SetFragmentExternal simulates an external fragment change (back button,
// link from another page): only the hashchange event, no history bookkeeping.
func (p *Page) SetFragmentExternal(id string) {
	p.mu.Lock()
	p.fragment = id
	p.mu.Unlock()
	p.emit(Event{Kind: EventHashChange, Hash: id})
}

// HistoryLen reports how many history entries have been pushed.
func (p *Page) HistoryLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.historyLen
}

// Subscribe registers an event listener with a small buffer; events are
// dropped, not blocked on, when the consumer lags.
func (p *Page) Subscribe() (<-chan Event, func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	ch := make(chan Event, 64)
	p.subs[id] = ch
	p.mu.Unlock()

	return ch, func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *Page) setFragment(id string, push bool) {
	p.mu.Lock()
	p.fragment = id
	if push {
		p.historyLen++
	}
	p.mu.Unlock()
	p.emit(Event{Kind: EventHashChange, Hash: id})
}

func (p *Page) emit(ev Event) {
	p.mu.Lock()
	chans := make([]chan Event, 0, len(p.subs))
	for _, ch := range p.subs {
		chans = append(chans, ch)
	}
	p.mu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- ev:
		default:
		}
	}
}

// clamp keeps scrollTop inside [0, documentHeight-viewportHeight]. Callers
// must hold p.mu.
func (p *Page) clamp(top float64) float64 {
	max := p.documentHeight - p.viewportHeight
	if max < 0 {
		max = 0
	}
	if top < 0 {
		return 0
	}
	if top > max {
		return max
	}
	return top
}
