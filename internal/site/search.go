package site

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mlmathbook/mlmath/internal/content"
)

// SearchEntry is one searchable section of the book. The client-side search
// matches against Title and Content and links to Path.
type SearchEntry struct {
	Path    string `json:"path"`
	Chapter string `json:"chapter"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BuildSearchIndex flattens rendered chapters into per-section search
// entries: each heading becomes an entry holding the text that follows it
// up to the next heading.
func BuildSearchIndex(rendered []*content.Rendered) []SearchEntry {
	var entries []SearchEntry
	for _, r := range rendered {
		sections, err := splitSections(r)
		if err != nil {
			// A chapter that fails to re-parse just gets a single
			// whole-chapter entry instead of per-section ones.
			entries = append(entries, SearchEntry{
				Path:    r.Chapter.Slug + ".html",
				Chapter: r.Chapter.Title,
				Title:   r.Chapter.Title,
				Content: r.Chapter.Description,
			})
			continue
		}
		entries = append(entries, sections...)
	}
	return entries
}

// splitSections walks the chapter body and groups text under the nearest
// preceding heading.
func splitSections(r *content.Rendered) ([]SearchEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.HTML))
	if err != nil {
		return nil, err
	}

	var entries []SearchEntry
	current := -1

	doc.Find("body").Children().Each(func(_ int, sel *goquery.Selection) {
		node := goquery.NodeName(sel)
		if len(node) == 2 && node[0] == 'h' && node[1] >= '1' && node[1] <= '6' {
			id, _ := sel.Attr("id")
			entries = append(entries, SearchEntry{
				Path:    r.Chapter.Slug + ".html#" + id,
				Chapter: r.Chapter.Title,
				Title:   strings.TrimSpace(sel.Text()),
			})
			current = len(entries) - 1
			return
		}
		if current < 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		if entries[current].Content != "" {
			entries[current].Content += " "
		}
		entries[current].Content += text
	})

	return entries, nil
}

// WriteSearchIndex serializes entries to a JSON file for the client script.
func WriteSearchIndex(entries []SearchEntry, path string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
