package observer

import (
	"context"
	"testing"
	"time"

	"github.com/mlmathbook/mlmath/internal/docview"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ThrottleInterval = 5 * time.Millisecond
	cfg.ScrollStopDelay = 40 * time.Millisecond
	cfg.RescanDelay = 10 * time.Millisecond
	return cfg
}

func testPage() *docview.Page {
	p := docview.NewPage(800, 4000)
	p.SetLayout([]docview.Heading{
		{ID: "intro", Title: "Introduction", Level: 2, Top: 100, Height: 40},
		{ID: "gradients", Title: "Gradients", Level: 2, Top: 1200, Height: 40},
		{ID: "hessians", Title: "Hessians", Level: 2, Top: 2400, Height: 40},
	}, 4000)
	return p
}

func startObserver(t *testing.T, p *docview.Page, cfg Config) *Observer {
	t.Helper()
	o := New(p, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go o.Run(ctx)
	return o
}

// waitFor polls until the predicate holds or the deadline passes.
func waitFor(t *testing.T, what string, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestEventBeforeRunNotLost(t *testing.T) {
	p := testPage()
	o := New(p, testConfig())

	// Scroll fires between construction and the loop being scheduled; the
	// construction-time subscription must hold it.
	p.UserScroll(1150)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go o.Run(ctx)

	// The scrolling flag only comes from the event itself, so it proves the
	// event was delivered rather than the initial scan seeing new geometry.
	waitFor(t, "pre-run scroll to set IsScrolling", func() bool {
		return o.Snapshot().IsScrolling
	})
	waitFor(t, "scroll-stop debounce after the pre-run scroll", func() bool {
		snap := o.Snapshot()
		return !snap.IsScrolling && snap.ActiveSection == "gradients"
	})
}

func TestInitialScan(t *testing.T) {
	p := testPage()
	o := startObserver(t, p, testConfig())

	waitFor(t, "initial snapshot", func() bool {
		return o.Snapshot().ActiveSection != ""
	})

	snap := o.Snapshot()
	if snap.ActiveSection != "intro" {
		t.Errorf("ActiveSection = %q, want %q", snap.ActiveSection, "intro")
	}
	if len(snap.VisibleSections) != 1 || snap.VisibleSections[0] != "intro" {
		t.Errorf("VisibleSections = %v, want [intro]", snap.VisibleSections)
	}
	if snap.ReadingProgress != 0 {
		t.Errorf("ReadingProgress = %v, want 0", snap.ReadingProgress)
	}
	// From the top of the page every heading is still ahead of the reading
	// line, so the first one is next.
	if snap.NextSection == nil || snap.NextSection.ID != "intro" {
		t.Errorf("NextSection = %+v, want intro", snap.NextSection)
	}
	if snap.PreviousSection != nil {
		t.Errorf("PreviousSection = %+v, want nil at top", snap.PreviousSection)
	}
}

func TestScrollUpdatesActiveSection(t *testing.T) {
	p := testPage()
	o := startObserver(t, p, testConfig())

	waitFor(t, "initial snapshot", func() bool {
		return o.Snapshot().ActiveSection == "intro"
	})

	p.UserScroll(1150)

	waitFor(t, "active section to follow scroll", func() bool {
		return o.Snapshot().ActiveSection == "gradients"
	})

	snap := o.Snapshot()
	if snap.ReadingProgress <= 0 {
		t.Errorf("ReadingProgress = %v, want > 0 after scrolling", snap.ReadingProgress)
	}
	if snap.NextSection == nil || snap.NextSection.ID != "hessians" {
		t.Errorf("NextSection = %+v, want hessians", snap.NextSection)
	}
	// The nearest heading above the reading line is the current section's
	// own top; k/ArrowUp first snaps back there.
	if snap.PreviousSection == nil || snap.PreviousSection.ID != "gradients" {
		t.Errorf("PreviousSection = %+v, want gradients", snap.PreviousSection)
	}
}

func TestScrollingFlagDebounce(t *testing.T) {
	p := testPage()
	o := startObserver(t, p, testConfig())

	p.UserScroll(200)
	waitFor(t, "IsScrolling to set", func() bool {
		return o.Snapshot().IsScrolling
	})

	// No further scroll events: the flag clears after the quiet window.
	waitFor(t, "IsScrolling to clear", func() bool {
		return !o.Snapshot().IsScrolling
	})
}

func TestScrollingFlagHeldByContinuedScrolling(t *testing.T) {
	cfg := testConfig()
	cfg.ScrollStopDelay = 60 * time.Millisecond
	p := testPage()
	o := startObserver(t, p, cfg)

	p.UserScroll(100)
	waitFor(t, "IsScrolling to set", func() bool {
		return o.Snapshot().IsScrolling
	})

	// Keep scrolling faster than the quiet window; the flag must hold.
	for i := 0; i < 5; i++ {
		time.Sleep(15 * time.Millisecond)
		p.UserScroll(float64(200 + i*50))
		if !o.Snapshot().IsScrolling {
			t.Fatal("IsScrolling cleared while scroll events were still arriving")
		}
	}
}

func TestMutationTriggersRescan(t *testing.T) {
	p := testPage()
	o := startObserver(t, p, testConfig())

	waitFor(t, "initial snapshot", func() bool {
		return len(o.Snapshot().SectionVisibilities) == 3
	})

	p.SetLayout([]docview.Heading{
		{ID: "preface", Title: "Preface", Level: 2, Top: 50, Height: 40},
		{ID: "intro", Title: "Introduction", Level: 2, Top: 500, Height: 40},
	}, 3000)

	waitFor(t, "rescan after mutation", func() bool {
		snap := o.Snapshot()
		return len(snap.SectionVisibilities) == 2 && len(snap.VisibleSections) == 2
	})
}

func TestHashChangeAdopted(t *testing.T) {
	p := testPage()
	o := startObserver(t, p, testConfig())

	waitFor(t, "initial snapshot", func() bool {
		return o.Snapshot().ActiveSection == "intro"
	})

	// External fragment change (back button, pasted URL) wins immediately,
	// without waiting for geometry to agree.
	p.SetFragmentExternal("hessians")

	waitFor(t, "hash adoption", func() bool {
		return o.Snapshot().ActiveSection == "hessians"
	})
}

func TestZeroHeadingsStaysIdle(t *testing.T) {
	p := docview.NewPage(800, 4000)
	o := startObserver(t, p, testConfig())

	p.UserScroll(500)
	waitFor(t, "recompute after scroll", func() bool {
		return o.Snapshot().IsScrolling
	})

	snap := o.Snapshot()
	if snap.ActiveSection != "" {
		t.Errorf("ActiveSection = %q, want empty", snap.ActiveSection)
	}
	if len(snap.VisibleSections) != 0 || len(snap.SectionVisibilities) != 0 {
		t.Errorf("expected empty visibility outputs, got %v / %v",
			snap.VisibleSections, snap.SectionVisibilities)
	}
	if snap.NextSection != nil || snap.PreviousSection != nil {
		t.Error("expected nil next/previous with no headings")
	}
}

func TestSubscribeNotifies(t *testing.T) {
	p := testPage()
	o := New(p, testConfig())

	ch, unsubscribe := o.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go o.Run(ctx)

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no notification after initial scan")
	}

	p.UserScroll(1150)
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-ch:
			if o.Snapshot().ActiveSection == "gradients" {
				return
			}
		case <-deadline:
			t.Fatal("never notified of active section change")
		}
	}
}

func TestAdoptHashIgnoresEmpty(t *testing.T) {
	p := testPage()
	o := startObserver(t, p, testConfig())

	waitFor(t, "initial snapshot", func() bool {
		return o.Snapshot().ActiveSection == "intro"
	})

	o.AdoptHash("")
	if got := o.Snapshot().ActiveSection; got != "intro" {
		t.Errorf("ActiveSection = %q, want intro after empty adoption", got)
	}
}
