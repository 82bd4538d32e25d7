package docview

import "testing"

func samplePage() *Page {
	p := NewPage(600, 3000)
	p.SetLayout([]Heading{
		{ID: "intro", Title: "Introduction", Level: 1, Top: 0, Height: 40},
		{ID: "basics", Title: "Basics", Level: 2, Top: 900, Height: 32},
		{ID: "advanced", Title: "Advanced", Level: 2, Top: 2100, Height: 32},
	}, 3000)
	return p
}

func TestHeadingsAreViewportRelative(t *testing.T) {
	p := samplePage()
	p.SetScrollTop(900)

	boxes := p.Headings()
	if len(boxes) != 3 {
		t.Fatalf("headings = %d, want 3", len(boxes))
	}
	if boxes[0].Top != -900 {
		t.Errorf("intro top = %v, want -900", boxes[0].Top)
	}
	if boxes[1].Top != 0 {
		t.Errorf("basics top = %v, want 0", boxes[1].Top)
	}
	if boxes[2].Top != 1200 {
		t.Errorf("advanced top = %v, want 1200", boxes[2].Top)
	}
}

func TestScrollClamping(t *testing.T) {
	p := samplePage()

	p.SetScrollTop(-50)
	if got := p.Metrics().ScrollTop; got != 0 {
		t.Errorf("scrollTop after negative set = %v, want 0", got)
	}

	p.SetScrollTop(99999)
	if got := p.Metrics().ScrollTop; got != 2400 {
		t.Errorf("scrollTop after overscroll = %v, want 2400", got)
	}
}

func TestScrollClampWhenDocumentFits(t *testing.T) {
	p := NewPage(600, 400)
	p.SetScrollTop(100)
	if got := p.Metrics().ScrollTop; got != 0 {
		t.Errorf("scrollTop = %v, want 0 when document fits viewport", got)
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	p := samplePage()
	ch, cancel := p.Subscribe()
	defer cancel()

	p.SetScrollTop(100)
	ev := <-ch
	if ev.Kind != EventScroll {
		t.Errorf("event kind = %v, want EventScroll", ev.Kind)
	}

	p.Resize(500)
	ev = <-ch
	if ev.Kind != EventResize {
		t.Errorf("event kind = %v, want EventResize", ev.Kind)
	}

	p.SetFragmentExternal("basics")
	ev = <-ch
	if ev.Kind != EventHashChange || ev.Hash != "basics" {
		t.Errorf("event = %+v, want hashchange basics", ev)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	p := samplePage()
	ch, cancel := p.Subscribe()
	cancel()

	p.SetScrollTop(100)
	select {
	case ev := <-ch:
		t.Errorf("received %+v after unsubscribe", ev)
	default:
	}
}

func TestUserScrollEmitsInputThenScroll(t *testing.T) {
	p := samplePage()
	ch, cancel := p.Subscribe()
	defer cancel()

	p.UserScroll(300)
	first := <-ch
	second := <-ch
	if first.Kind != EventInput {
		t.Errorf("first event = %v, want EventInput", first.Kind)
	}
	if second.Kind != EventScroll {
		t.Errorf("second event = %v, want EventScroll", second.Kind)
	}
	if got := p.Metrics().ScrollTop; got != 300 {
		t.Errorf("scrollTop = %v, want 300", got)
	}
}

func TestFragmentHistory(t *testing.T) {
	p := samplePage()

	p.ReplaceFragment("intro")
	if p.HistoryLen() != 0 {
		t.Errorf("history after replace = %d, want 0", p.HistoryLen())
	}
	if p.Fragment() != "intro" {
		t.Errorf("fragment = %q, want intro", p.Fragment())
	}

	p.PushFragment("basics")
	if p.HistoryLen() != 1 {
		t.Errorf("history after push = %d, want 1", p.HistoryLen())
	}
	if p.Fragment() != "basics" {
		t.Errorf("fragment = %q, want basics", p.Fragment())
	}
}
