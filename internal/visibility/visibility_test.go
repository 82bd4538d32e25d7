package visibility

import (
	"testing"

	"github.com/mlmathbook/mlmath/internal/docview"
)

func metrics() docview.Metrics {
	return docview.Metrics{ScrollTop: 0, ViewportHeight: 600, DocumentHeight: 3000}
}

func TestFullyVisibleAndFullyHidden(t *testing.T) {
	cfg := DefaultConfig()
	headings := []docview.HeadingBox{
		{ID: "inside", Top: 200, Height: 40},   // fully inside effective viewport
		{ID: "above", Top: -500, Height: 40},   // fully above
		{ID: "below", Top: 2000, Height: 40},   // fully below
		{ID: "header", Top: 10, Height: 40},    // hidden under the fixed header
		{ID: "zero", Top: 300, Height: 0},      // degenerate box
	}

	vis := Calculate(headings, metrics(), cfg)

	if vis[0].Visibility != 1.0 {
		t.Errorf("inside visibility = %v, want 1.0", vis[0].Visibility)
	}
	if !vis[0].IsInView {
		t.Error("inside should be in view")
	}
	for _, i := range []int{1, 2, 3} {
		if vis[i].Visibility != 0 {
			t.Errorf("%s visibility = %v, want 0", vis[i].ID, vis[i].Visibility)
		}
		if vis[i].IsInView {
			t.Errorf("%s should not be in view", vis[i].ID)
		}
	}
	if vis[4].Visibility != 0 || vis[4].Weight < 0 {
		t.Errorf("zero-height box should degrade to zero visibility, got %+v", vis[4])
	}
}

func TestResultOrderMatchesInput(t *testing.T) {
	cfg := DefaultConfig()
	headings := []docview.HeadingBox{
		{ID: "c", Top: 400, Height: 40},
		{ID: "a", Top: 100, Height: 40},
		{ID: "b", Top: 250, Height: 40},
	}
	vis := Calculate(headings, metrics(), cfg)
	for i, want := range []string{"c", "a", "b"} {
		if vis[i].ID != want {
			t.Errorf("vis[%d].ID = %q, want %q", i, vis[i].ID, want)
		}
	}
}

func TestWeightMonotonicInVisibility(t *testing.T) {
	// Slide a fixed-size heading out from under the fixed header: visibility
	// rises with each step (and position moves toward the ideal line with it),
	// so weight must never decrease.
	cfg := DefaultConfig()
	m := metrics()
	prevVis, prevWeight := -1.0, -1.0
	for _, top := range []float64{40, 60, 80} { // header offset is 80
		sv := Calculate([]docview.HeadingBox{{ID: "h", Top: top, Height: 100}}, m, cfg)[0]
		if sv.Visibility <= prevVis {
			t.Fatalf("visibility at top=%v is %v, not above %v", top, sv.Visibility, prevVis)
		}
		if sv.Weight < prevWeight {
			t.Errorf("weight at top=%v dropped to %v from %v while visibility rose", top, sv.Weight, prevWeight)
		}
		prevVis, prevWeight = sv.Visibility, sv.Weight
	}
}

func TestMostRelevantDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	headings := []docview.HeadingBox{
		{ID: "first", Top: 150, Height: 40},
		{ID: "second", Top: 150, Height: 40}, // identical geometry: tie
		{ID: "far", Top: 550, Height: 40},
	}
	vis := Calculate(headings, metrics(), cfg)

	a := MostRelevant(vis)
	b := MostRelevant(vis)
	if a == nil || b == nil {
		t.Fatal("MostRelevant returned nil for visible input")
	}
	if a.ID != b.ID {
		t.Errorf("non-deterministic: %q then %q", a.ID, b.ID)
	}
	if a.ID != "first" {
		t.Errorf("tie went to %q, want first occurrence", a.ID)
	}
}

func TestMostRelevantNothingInView(t *testing.T) {
	cfg := DefaultConfig()
	vis := Calculate([]docview.HeadingBox{{ID: "gone", Top: -400, Height: 40}}, metrics(), cfg)
	if got := MostRelevant(vis); got != nil {
		t.Errorf("MostRelevant = %+v, want nil", got)
	}
	if got := MostRelevant(nil); got != nil {
		t.Errorf("MostRelevant(nil) = %+v, want nil", got)
	}
}

func TestOversizedSectionCapped(t *testing.T) {
	if got := sizeScore(1300, 520); got != 0.5 {
		t.Errorf("sizeScore for >2x viewport = %v, want 0.5", got)
	}
	if got := sizeScore(260, 520); got != 0.5 {
		t.Errorf("sizeScore for half viewport = %v, want 0.5", got)
	}
	if got := sizeScore(780, 520); got != 1.0 {
		t.Errorf("sizeScore for 1.5x viewport = %v, want 1.0", got)
	}
}

func TestReadingProgressBoundaries(t *testing.T) {
	m := docview.Metrics{ScrollTop: 0, ViewportHeight: 600, DocumentHeight: 3000}
	if got := ReadingProgress(m); got != 0 {
		t.Errorf("progress at top = %v, want 0", got)
	}

	m.ScrollTop = 2400 // documentHeight - viewportHeight
	if got := ReadingProgress(m); got != 1 {
		t.Errorf("progress at bottom = %v, want 1", got)
	}

	m.ScrollTop = 1200
	if got := ReadingProgress(m); got != 0.5 {
		t.Errorf("progress at midpoint = %v, want 0.5", got)
	}

	// Whole document fits: nothing to scroll, fully read.
	fits := docview.Metrics{ScrollTop: 0, ViewportHeight: 600, DocumentHeight: 400}
	if got := ReadingProgress(fits); got != 1 {
		t.Errorf("progress for fitting document = %v, want 1", got)
	}
}

func TestNextPrevious(t *testing.T) {
	cfg := DefaultConfig()
	m := docview.Metrics{ScrollTop: 1000, ViewportHeight: 600, DocumentHeight: 5000}
	// Absolute tops: 0, 900, 1300, 2600.
	headings := []docview.HeadingBox{
		{ID: "a", Top: 0 - 1000, Height: 40},
		{ID: "b", Top: 900 - 1000, Height: 40},
		{ID: "c", Top: 1300 - 1000, Height: 40},
		{ID: "d", Top: 2600 - 1000, Height: 40},
	}
	vis := Calculate(headings, m, cfg)

	// Reading line is at 1080: next should be c (1300), previous b (900).
	next := Next(vis, m, cfg)
	if next == nil || next.ID != "c" {
		t.Fatalf("Next = %+v, want c", next)
	}
	prev := Previous(vis, m, cfg)
	if prev == nil || prev.ID != "b" {
		t.Fatalf("Previous = %+v, want b", prev)
	}
}

func TestNextNilAtDocumentEnd(t *testing.T) {
	cfg := DefaultConfig()
	m := docview.Metrics{ScrollTop: 4400, ViewportHeight: 600, DocumentHeight: 5000}
	headings := []docview.HeadingBox{
		{ID: "last", Top: 2600 - 4400, Height: 40},
	}
	vis := Calculate(headings, m, cfg)
	if got := Next(vis, m, cfg); got != nil {
		t.Errorf("Next at end = %+v, want nil", got)
	}
}

func TestPreviousNilAtDocumentStart(t *testing.T) {
	cfg := DefaultConfig()
	m := docview.Metrics{ScrollTop: 0, ViewportHeight: 600, DocumentHeight: 5000}
	headings := []docview.HeadingBox{
		{ID: "first", Top: 200, Height: 40},
	}
	vis := Calculate(headings, m, cfg)
	if got := Previous(vis, m, cfg); got != nil {
		t.Errorf("Previous at start = %+v, want nil", got)
	}
}
