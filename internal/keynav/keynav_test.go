package keynav

import (
	"context"
	"testing"
	"time"
)

func recordingDispatcher() (*Dispatcher, *[]Action) {
	var fired []Action
	d := New(func(_ context.Context, a Action) error {
		fired = append(fired, a)
		return nil
	})
	return d, &fired
}

func TestDispatchBasicBindings(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want Action
	}{
		{KeyEvent{Key: "j"}, ActionNextSection},
		{KeyEvent{Key: "ArrowDown"}, ActionNextSection},
		{KeyEvent{Key: "k"}, ActionPreviousSection},
		{KeyEvent{Key: "ArrowUp"}, ActionPreviousSection},
		{KeyEvent{Key: "g"}, ActionTop},
		{KeyEvent{Key: "Home"}, ActionTop},
		{KeyEvent{Key: "G", Shift: true}, ActionBottom},
		{KeyEvent{Key: "End"}, ActionBottom},
		{KeyEvent{Key: "t"}, ActionToggleToc},
		{KeyEvent{Key: "o"}, ActionToggleToc},
		{KeyEvent{Key: "u"}, ActionCopyURL},
	}

	for _, tt := range tests {
		d, fired := recordingDispatcher()
		d.cooldown = 0
		if !d.Dispatch(context.Background(), tt.ev) {
			t.Errorf("Dispatch(%+v) = false, want an action to fire", tt.ev)
			continue
		}
		if len(*fired) != 1 || (*fired)[0] != tt.want {
			t.Errorf("Dispatch(%+v) fired %v, want %v", tt.ev, *fired, tt.want)
		}
	}
}

func TestTypingSuppressesAllShortcuts(t *testing.T) {
	d, fired := recordingDispatcher()

	if d.Dispatch(context.Background(), KeyEvent{Key: "j", Typing: true}) {
		t.Error("shortcut fired while typing")
	}
	if len(*fired) != 0 {
		t.Errorf("actions fired while typing: %v", *fired)
	}
}

func TestExactModifierMatching(t *testing.T) {
	d, fired := recordingDispatcher()
	d.cooldown = 0

	// Ctrl+J must not fire the bare "j" binding.
	if d.Dispatch(context.Background(), KeyEvent{Key: "j", Ctrl: true}) {
		t.Error("Ctrl+J fired the plain j binding")
	}
	// Plain G (no shift) must not fire Shift+G.
	if d.Dispatch(context.Background(), KeyEvent{Key: "G"}) {
		t.Error("plain G fired the Shift+G binding")
	}
	if len(*fired) != 0 {
		t.Errorf("actions fired: %v", *fired)
	}
}

func TestCooldownSwallowsKeyRepeat(t *testing.T) {
	d, fired := recordingDispatcher()

	current := time.Unix(0, 0)
	d.now = func() time.Time { return current }

	ctx := context.Background()
	if !d.Dispatch(ctx, KeyEvent{Key: "j"}) {
		t.Fatal("first dispatch should fire")
	}
	// Repeats inside the 100ms cooldown are ignored.
	current = current.Add(50 * time.Millisecond)
	if d.Dispatch(ctx, KeyEvent{Key: "j"}) {
		t.Error("dispatch inside cooldown fired")
	}
	current = current.Add(60 * time.Millisecond)
	if !d.Dispatch(ctx, KeyEvent{Key: "j"}) {
		t.Error("dispatch after cooldown should fire")
	}
	if len(*fired) != 2 {
		t.Errorf("fired %d actions, want 2", len(*fired))
	}
}

func TestByCategory(t *testing.T) {
	d, _ := recordingDispatcher()

	groups := d.ByCategory()
	if len(groups["Navigation"]) != 8 {
		t.Errorf("Navigation shortcuts = %d, want 8", len(groups["Navigation"]))
	}
	if len(groups["View"]) != 2 {
		t.Errorf("View shortcuts = %d, want 2", len(groups["View"]))
	}
	if len(groups["Sharing"]) != 1 {
		t.Errorf("Sharing shortcuts = %d, want 1", len(groups["Sharing"]))
	}
}

func TestFormatShortcut(t *testing.T) {
	tests := []struct {
		s    Shortcut
		want string
	}{
		{Shortcut{Key: "G", Ctrl: true, Shift: true}, "Ctrl + Shift + G"},
		{Shortcut{Key: "j"}, "J"},
		{Shortcut{Key: "ArrowDown"}, "↓"},
		{Shortcut{Key: "Home"}, "Home"},
		{Shortcut{Key: "u", Meta: true}, "Meta + U"},
	}
	for _, tt := range tests {
		if got := FormatShortcut(tt.s); got != tt.want {
			t.Errorf("FormatShortcut(%+v) = %q, want %q", tt.s, got, tt.want)
		}
	}
}
