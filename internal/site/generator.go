// Package site renders the book into a static HTML tree: one page per
// published chapter with a table-of-contents sidebar, an index page, a
// lexical search index, and the stylesheet and reader script as assets.
package site

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/mlmathbook/mlmath/internal/content"
)

// Generator builds the static site from rendered chapter content.
type Generator struct {
	Loader    *content.Loader
	OutputDir string
	SiteName  string

	// OnPage, when set, is called once per written chapter page.
	OnPage func(slug string)
}

// NewGenerator creates a Generator writing to outputDir.
func NewGenerator(loader *content.Loader, outputDir string) *Generator {
	return &Generator{
		Loader:    loader,
		OutputDir: outputDir,
		SiteName:  "Interactive ML Mathematics",
	}
}

// pageData is the template payload for a chapter page.
type pageData struct {
	SiteName    string
	Chapter     content.Chapter
	Content     template.HTML
	SidebarHTML template.HTML
	Previous    *content.Chapter
	Next        *content.Chapter
}

// indexData is the template payload for the landing page.
type indexData struct {
	SiteName string
	Chapters []indexChapter
}

type indexChapter struct {
	Chapter content.Chapter
	Written bool
}

// Generate writes the full site. Returns the number of chapter pages written.
func (g *Generator) Generate() (int, error) {
	rendered, err := g.Loader.LoadAll()
	if err != nil {
		return 0, fmt.Errorf("loading chapters: %w", err)
	}
	if len(rendered) == 0 {
		return 0, fmt.Errorf("no chapter sources found")
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "reader.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	entries := BuildSearchIndex(rendered)
	if err := WriteSearchIndex(entries, filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	pageTmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}
	indexTmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing index template: %w", err)
	}

	written := make(map[string]bool, len(rendered))
	for _, r := range rendered {
		if err := g.renderPage(pageTmpl, r); err != nil {
			return 0, fmt.Errorf("rendering %s: %w", r.Chapter.Slug, err)
		}
		written[r.Chapter.Slug] = true
		if g.OnPage != nil {
			g.OnPage(r.Chapter.Slug)
		}
	}

	if err := g.renderIndex(indexTmpl, written); err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}

	return len(rendered), nil
}

func (g *Generator) renderPage(tmpl *template.Template, r *content.Rendered) error {
	prev, next := content.Navigation(r.Chapter.Slug)

	data := pageData{
		SiteName:    g.SiteName,
		Chapter:     r.Chapter,
		Content:     template.HTML(r.HTML),
		SidebarHTML: template.HTML(OutlineHTML(r.Outline)),
		Previous:    prev,
		Next:        next,
	}

	f, err := os.Create(filepath.Join(g.OutputDir, r.Chapter.Slug+".html"))
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

func (g *Generator) renderIndex(tmpl *template.Template, written map[string]bool) error {
	var chapters []indexChapter
	for _, ch := range content.Published() {
		chapters = append(chapters, indexChapter{Chapter: ch, Written: written[ch.Slug]})
	}

	f, err := os.Create(filepath.Join(g.OutputDir, "index.html"))
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, indexData{SiteName: g.SiteName, Chapters: chapters})
}
