// Package keynav maps key combinations to navigation actions. Dispatch is
// suppressed entirely while the reader is typing in a form control, matches
// modifiers exactly, and enforces a short cooldown so key-repeat cannot fire
// an action twice concurrently.
package keynav

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
)

// Action identifies what a shortcut does.
type Action string

const (
	ActionNextSection     Action = "next-section"
	ActionPreviousSection Action = "previous-section"
	ActionTop             Action = "top"
	ActionBottom          Action = "bottom"
	ActionToggleToc       Action = "toggle-toc"
	ActionCopyURL         Action = "copy-url"
)

// Shortcut binds one key combination to an action.
type Shortcut struct {
	Key         string `json:"key"`
	Ctrl        bool   `json:"ctrl,omitempty"`
	Alt         bool   `json:"alt,omitempty"`
	Shift       bool   `json:"shift,omitempty"`
	Meta        bool   `json:"meta,omitempty"`
	Action      Action `json:"action"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// KeyEvent is one key press as reported by the client. Typing is true when
// the focused element was an input, textarea, select, or contenteditable.
type KeyEvent struct {
	Key    string `json:"key"`
	Ctrl   bool   `json:"ctrl,omitempty"`
	Alt    bool   `json:"alt,omitempty"`
	Shift  bool   `json:"shift,omitempty"`
	Meta   bool   `json:"meta,omitempty"`
	Typing bool   `json:"typing,omitempty"`
}

// Handler executes a dispatched action.
type Handler func(ctx context.Context, action Action) error

// DefaultShortcuts returns the reader's standard keymap.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{Key: "j", Action: ActionNextSection, Description: "Next section", Category: "Navigation"},
		{Key: "ArrowDown", Action: ActionNextSection, Description: "Next section", Category: "Navigation"},
		{Key: "k", Action: ActionPreviousSection, Description: "Previous section", Category: "Navigation"},
		{Key: "ArrowUp", Action: ActionPreviousSection, Description: "Previous section", Category: "Navigation"},
		{Key: "g", Action: ActionTop, Description: "Jump to top", Category: "Navigation"},
		{Key: "Home", Action: ActionTop, Description: "Jump to top", Category: "Navigation"},
		{Key: "G", Shift: true, Action: ActionBottom, Description: "Jump to bottom", Category: "Navigation"},
		{Key: "End", Action: ActionBottom, Description: "Jump to bottom", Category: "Navigation"},
		{Key: "t", Action: ActionToggleToc, Description: "Toggle table of contents", Category: "View"},
		{Key: "o", Action: ActionToggleToc, Description: "Toggle table of contents", Category: "View"},
		{Key: "u", Action: ActionCopyURL, Description: "Copy section link", Category: "Sharing"},
	}
}

// Dispatcher routes key events through the shortcut table.
type Dispatcher struct {
	shortcuts []Shortcut
	handler   Handler
	cooldown  time.Duration

	mu        sync.Mutex
	executing bool
	readyAt   time.Time

	now func() time.Time
}

// New creates a dispatcher with the default keymap and a 100ms post-action
// cooldown.
func New(handler Handler) *Dispatcher {
	return &Dispatcher{
		shortcuts: DefaultShortcuts(),
		handler:   handler,
		cooldown:  100 * time.Millisecond,
		now:       time.Now,
	}
}

// SetShortcuts replaces the keymap.
func (d *Dispatcher) SetShortcuts(shortcuts []Shortcut) {
	d.mu.Lock()
	d.shortcuts = append([]Shortcut(nil), shortcuts...)
	d.mu.Unlock()
}

// Shortcuts returns a copy of the active keymap.
func (d *Dispatcher) Shortcuts() []Shortcut {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Shortcut(nil), d.shortcuts...)
}

// Dispatch runs the action bound to ev, if any. Reports whether an action
// fired. Suppressed while typing, while another action executes, and during
// the cooldown window after one completes.
func (d *Dispatcher) Dispatch(ctx context.Context, ev KeyEvent) bool {
	if ev.Typing {
		return false
	}

	d.mu.Lock()
	if d.executing || d.now().Before(d.readyAt) {
		d.mu.Unlock()
		return false
	}
	var match *Shortcut
	for i := range d.shortcuts {
		if matches(d.shortcuts[i], ev) {
			match = &d.shortcuts[i]
			break
		}
	}
	if match == nil {
		d.mu.Unlock()
		return false
	}
	d.executing = true
	d.mu.Unlock()

	err := d.handler(ctx, match.Action)
	if err != nil {
		log.Printf("keynav: action %s: %v", match.Action, err)
	}

	d.mu.Lock()
	d.executing = false
	d.readyAt = d.now().Add(d.cooldown)
	d.mu.Unlock()
	return true
}

// matches requires the key and every modifier to match exactly, so Ctrl+J
// never fires a bare "j" binding.
func matches(s Shortcut, ev KeyEvent) bool {
	return s.Key == ev.Key &&
		s.Ctrl == ev.Ctrl &&
		s.Alt == ev.Alt &&
		s.Shift == ev.Shift &&
		s.Meta == ev.Meta
}

// ByCategory groups the keymap for help-panel rendering.
func (d *Dispatcher) ByCategory() map[string][]Shortcut {
	out := make(map[string][]Shortcut)
	for _, s := range d.Shortcuts() {
		out[s.Category] = append(out[s.Category], s)
	}
	return out
}

// FormatShortcut renders a human-readable combo label like "Ctrl + Shift + G".
func FormatShortcut(s Shortcut) string {
	var parts []string
	if s.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if s.Alt {
		parts = append(parts, "Alt")
	}
	if s.Shift {
		parts = append(parts, "Shift")
	}
	if s.Meta {
		parts = append(parts, "Meta")
	}
	parts = append(parts, keyLabel(s.Key))
	return strings.Join(parts, " + ")
}

var keyLabels = map[string]string{
	"ArrowUp":    "↑",
	"ArrowDown":  "↓",
	"ArrowLeft":  "←",
	"ArrowRight": "→",
}

func keyLabel(key string) string {
	if label, ok := keyLabels[key]; ok {
		return label
	}
	if len(key) == 1 {
		return strings.ToUpper(key)
	}
	return key
}
