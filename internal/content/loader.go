package content

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/mlmathbook/mlmath/internal/toc"
)

// Rendered is a chapter body converted to HTML with its heading outline.
type Rendered struct {
	Chapter  Chapter
	HTML     string
	Headings []toc.Heading
	Outline  []*toc.Item
}

// Loader reads chapter markdown from a content directory and renders it.
// Heading ids are assigned by the outline extractor, not by the markdown
// renderer, so the document and its table of contents can never disagree.
type Loader struct {
	dir string
	md  goldmark.Markdown
}

// NewLoader creates a Loader rooted at the given content directory.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Discover returns the relative paths of all markdown files under the
// content directory, sorted.
func (l *Loader) Discover() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(l.dir), "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("globbing content dir: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Orphans returns discovered markdown files that no registered chapter
// claims: neither <slug>.md nor <slug>/index.md for any registry entry.
// A typo in a filename otherwise fails silently as a "not written" chapter.
func (l *Loader) Orphans() ([]string, error) {
	found, err := l.Discover()
	if err != nil {
		return nil, err
	}

	claimed := make(map[string]bool)
	for _, ch := range Chapters() {
		claimed[ch.Slug+".md"] = true
		claimed[ch.Slug+"/index.md"] = true
	}

	var orphans []string
	for _, p := range found {
		if !claimed[p] {
			orphans = append(orphans, p)
		}
	}
	return orphans, nil
}

// Load renders the chapter with the given slug. The markdown file is
// expected at <dir>/<slug>.md or <dir>/<slug>/index.md.
func (l *Loader) Load(slug string) (*Rendered, error) {
	ch, ok := BySlug(slug)
	if !ok {
		return nil, fmt.Errorf("unknown chapter %q", slug)
	}

	src, err := l.readChapterSource(slug)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := l.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("rendering chapter %q: %w", slug, err)
	}

	body, headings, err := toc.ExtractHeadings(buf.String())
	if err != nil {
		return nil, fmt.Errorf("extracting headings for %q: %w", slug, err)
	}

	return &Rendered{
		Chapter:  ch,
		HTML:     body,
		Headings: headings,
		Outline:  toc.BuildHierarchy(headings),
	}, nil
}

// LoadAll renders every published chapter that has a source file. Chapters
// without one are skipped, not errors; the registry may run ahead of the
// written content.
func (l *Loader) LoadAll() ([]*Rendered, error) {
	if orphans, err := l.Orphans(); err == nil {
		for _, p := range orphans {
			log.Printf("content: %s matches no registered chapter, skipping", p)
		}
	}

	var out []*Rendered
	for _, ch := range Published() {
		r, err := l.Load(ch.Slug)
		if err != nil {
			var missing *notWrittenError
			if errors.As(err, &missing) {
				continue
			}
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// notWrittenError marks a registered chapter with no markdown source yet.
type notWrittenError struct {
	slug string
}

func (e *notWrittenError) Error() string {
	return fmt.Sprintf("chapter %q has no markdown source", e.slug)
}

// Source returns the raw markdown for a chapter.
func (l *Loader) Source(slug string) ([]byte, error) {
	if _, ok := BySlug(slug); !ok {
		return nil, fmt.Errorf("unknown chapter %q", slug)
	}
	return l.readChapterSource(slug)
}

func (l *Loader) readChapterSource(slug string) ([]byte, error) {
	for _, p := range []string{
		filepath.Join(l.dir, slug+".md"),
		filepath.Join(l.dir, slug, "index.md"),
	} {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading chapter source: %w", err)
		}
	}
	return nil, &notWrittenError{slug: slug}
}
