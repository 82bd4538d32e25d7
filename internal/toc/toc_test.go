package toc

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Vectors and Vector Spaces", "vectors-and-vector-spaces"},
		{"What is a Matrix?", "what-is-a-matrix"},
		{"  Gradient   Descent  ", "gradient-descent"},
		{"Eigenvalues & Eigenvectors", "eigenvalues-eigenvectors"},
		{"Already-Hyphenated Title", "already-hyphenated-title"},
		{"--- weird --- input ---", "weird-input"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractHeadingsAssignsIDs(t *testing.T) {
	html := `<h1>Introduction</h1><p>text</p><h2 id="custom">Basics</h2><h3>Vector Basics</h3>`

	out, headings, err := ExtractHeadings(html)
	if err != nil {
		t.Fatalf("ExtractHeadings error: %v", err)
	}

	if len(headings) != 3 {
		t.Fatalf("headings = %d, want 3", len(headings))
	}
	want := []Heading{
		{ID: "introduction", Title: "Introduction", Level: 1},
		{ID: "custom", Title: "Basics", Level: 2},
		{ID: "vector-basics", Title: "Vector Basics", Level: 3},
	}
	for i, w := range want {
		if headings[i] != w {
			t.Errorf("headings[%d] = %+v, want %+v", i, headings[i], w)
		}
	}

	if !strings.Contains(out, `id="introduction"`) {
		t.Error("output HTML should carry the generated id")
	}
	if !strings.Contains(out, `id="custom"`) {
		t.Error("output HTML should keep the author-assigned id")
	}
}

func TestExtractHeadingsDeduplicatesSlugs(t *testing.T) {
	html := `<h2>Vectors</h2><h2>Vectors</h2><h2>Vectors</h2>`

	_, headings, err := ExtractHeadings(html)
	if err != nil {
		t.Fatalf("ExtractHeadings error: %v", err)
	}

	want := []string{"vectors", "vectors-2", "vectors-3"}
	for i, w := range want {
		if headings[i].ID != w {
			t.Errorf("headings[%d].ID = %q, want %q", i, headings[i].ID, w)
		}
	}
}

func TestExtractHeadingsAvoidsAuthorIDCollision(t *testing.T) {
	html := `<h2 id="vectors">Pinned</h2><h2>Vectors</h2>`

	_, headings, err := ExtractHeadings(html)
	if err != nil {
		t.Fatalf("ExtractHeadings error: %v", err)
	}
	if headings[0].ID != "vectors" {
		t.Errorf("author id = %q, want vectors", headings[0].ID)
	}
	if headings[1].ID != "vectors-2" {
		t.Errorf("generated id = %q, want vectors-2", headings[1].ID)
	}
}

func TestExtractHeadingsEmptyContent(t *testing.T) {
	_, headings, err := ExtractHeadings("<p>no headings here</p>")
	if err != nil {
		t.Fatalf("ExtractHeadings error: %v", err)
	}
	if len(headings) != 0 {
		t.Errorf("headings = %d, want 0", len(headings))
	}
}

func TestBuildHierarchyNesting(t *testing.T) {
	headings := []Heading{
		{ID: "a", Level: 1},
		{ID: "b", Level: 2},
		{ID: "c", Level: 2},
		{ID: "d", Level: 3},
		{ID: "e", Level: 2},
	}

	roots := BuildHierarchy(headings)

	if len(roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(roots))
	}
	root := roots[0]
	if root.ID != "a" {
		t.Errorf("root = %q, want a", root.ID)
	}
	if len(root.Children) != 3 {
		t.Fatalf("root children = %d, want 3", len(root.Children))
	}
	if root.Children[0].ID != "b" || root.Children[1].ID != "c" || root.Children[2].ID != "e" {
		t.Errorf("children = %q %q %q, want b c e",
			root.Children[0].ID, root.Children[1].ID, root.Children[2].ID)
	}
	if len(root.Children[1].Children) != 1 || root.Children[1].Children[0].ID != "d" {
		t.Errorf("second child should own d, got %+v", root.Children[1].Children)
	}
}

func TestBuildHierarchyLevelSkip(t *testing.T) {
	// h1 directly followed by h3 nests one deep, not two.
	roots := BuildHierarchy([]Heading{
		{ID: "top", Level: 1},
		{ID: "deep", Level: 3},
	})
	if len(roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(roots))
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].ID != "deep" {
		t.Fatalf("level-skip child = %+v, want deep directly under top", roots[0].Children)
	}
	if len(roots[0].Children[0].Children) != 0 {
		t.Error("deep should have no children")
	}
}

func TestUpdateActiveStatesIsPure(t *testing.T) {
	roots := BuildHierarchy([]Heading{
		{ID: "a", Level: 1},
		{ID: "b", Level: 2},
		{ID: "c", Level: 3},
	})

	updated := UpdateActiveStates(roots, "c")

	flatOld := Flatten(roots)
	for _, it := range flatOld {
		if it.IsActive {
			t.Errorf("original tree mutated: %q is active", it.ID)
		}
	}

	flatNew := Flatten(updated)
	for _, it := range flatNew {
		if (it.ID == "c") != it.IsActive {
			t.Errorf("item %q active = %v", it.ID, it.IsActive)
		}
	}
}

func TestFlattenPreOrder(t *testing.T) {
	roots := BuildHierarchy([]Heading{
		{ID: "a", Level: 1},
		{ID: "b", Level: 2},
		{ID: "c", Level: 3},
		{ID: "d", Level: 2},
		{ID: "e", Level: 1},
	})

	flat := Flatten(roots)
	want := []string{"a", "b", "c", "d", "e"}
	if len(flat) != len(want) {
		t.Fatalf("flat = %d items, want %d", len(flat), len(want))
	}
	for i, w := range want {
		if flat[i].ID != w {
			t.Errorf("flat[%d] = %q, want %q", i, flat[i].ID, w)
		}
	}
}
