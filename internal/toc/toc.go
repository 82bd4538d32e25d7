// Package toc extracts heading structure from rendered chapter HTML and
// builds the hierarchical outline that drives the table-of-contents panel.
// It is the single authority for heading ids: every extracted heading leaves
// with an id written back into the markup so hash navigation and scroll
// targets resolve later.
package toc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Heading is one navigable heading found in a document render.
type Heading struct {
	ID    string
	Title string
	Level int
}

// Item is one entry in the hierarchical outline.
type Item struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Level    int     `json:"level"`
	Slug     string  `json:"slug"`
	IsActive bool    `json:"isActive"`
	Children []*Item `json:"children,omitempty"`
}

// ExtractHeadings scans h1-h6 in document order, assigns missing ids
// (slugified title, deduplicated with -2, -3, ... suffixes), and returns the
// updated HTML alongside the heading records.
func ExtractHeadings(html string) (string, []Heading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil, fmt.Errorf("parsing content: %w", err)
	}

	sl := newSlugger()
	// Pre-claim author-assigned ids so generated slugs never collide with them.
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok && id != "" {
			sl.claim(id)
		}
	})

	var headings []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Text())
		level := int(goquery.NodeName(s)[1] - '0')

		id, ok := s.Attr("id")
		if !ok || id == "" {
			id = sl.unique(Slugify(title))
			s.SetAttr("id", id)
		}

		headings = append(headings, Heading{ID: id, Title: title, Level: level})
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", nil, fmt.Errorf("serializing content: %w", err)
	}
	return out, headings, nil
}

// BuildHierarchy nests each heading under the most recent prior heading with
// a strictly lower level, via a single stack pass. Level skips nest one deep
// rather than synthesizing intermediate levels.
func BuildHierarchy(headings []Heading) []*Item {
	var roots []*Item
	var stack []*Item

	for _, h := range headings {
		item := &Item{ID: h.ID, Title: h.Title, Level: h.Level, Slug: h.ID}

		for len(stack) > 0 && stack[len(stack)-1].Level >= item.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, item)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, item)
		}
		stack = append(stack, item)
	}

	return roots
}

// UpdateActiveStates returns a structurally new tree with IsActive set on the
// item matching activeID (and cleared everywhere else). The input is never
// mutated.
func UpdateActiveStates(items []*Item, activeID string) []*Item {
	if items == nil {
		return nil
	}
	out := make([]*Item, len(items))
	for i, it := range items {
		clone := *it
		clone.IsActive = it.ID == activeID
		clone.Children = UpdateActiveStates(it.Children, activeID)
		out[i] = &clone
	}
	return out
}

// Flatten returns the outline in pre-order as a flat list.
func Flatten(items []*Item) []*Item {
	var out []*Item
	var walk func([]*Item)
	walk = func(items []*Item) {
		for _, it := range items {
			out = append(out, it)
			walk(it.Children)
		}
	}
	walk(items)
	return out
}
