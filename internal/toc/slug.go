package toc

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-fragment-safe id from heading text: lower-case,
// non-word characters stripped (hyphens kept), whitespace collapsed to single
// hyphens, hyphen runs collapsed, edges trimmed.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// slugger hands out unique slugs within one document render. The first
// occurrence keeps the bare slug so existing fragment links stay stable;
// duplicates get -2, -3, ... in document order.
type slugger struct {
	seen map[string]int
}

func newSlugger() *slugger {
	return &slugger{seen: make(map[string]int)}
}

// claim reserves an id that already exists in the document.
func (s *slugger) claim(id string) {
	if _, ok := s.seen[id]; !ok {
		s.seen[id] = 1
	}
}

func (s *slugger) unique(base string) string {
	if base == "" {
		base = "section"
	}
	n, ok := s.seen[base]
	if !ok {
		s.seen[base] = 1
		return base
	}
	for {
		n++
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, taken := s.seen[candidate]; !taken {
			s.seen[base] = n
			s.seen[candidate] = 1
			return candidate
		}
	}
}
