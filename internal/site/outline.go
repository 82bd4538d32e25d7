package site

import (
	"fmt"
	"html"
	"strings"

	"github.com/mlmathbook/mlmath/internal/toc"
)

// OutlineHTML renders a chapter outline as nested lists for the sidebar.
// Each entry links to its heading anchor and carries a data-section attribute
// so the reader script can flip active states as the viewport moves.
func OutlineHTML(items []*toc.Item) string {
	var b strings.Builder
	writeOutlineLevel(&b, items, 0)
	return b.String()
}

func writeOutlineLevel(b *strings.Builder, items []*toc.Item, depth int) {
	if len(items) == 0 {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s<ul class=\"toc-list toc-depth-%d\">\n", indent, depth)
	for _, item := range items {
		fmt.Fprintf(b, "%s  <li class=\"toc-item\">\n", indent)
		fmt.Fprintf(b, "%s    <a href=\"#%s\" class=\"toc-link\" data-section=\"%s\">%s</a>\n",
			indent, item.ID, item.ID, html.EscapeString(item.Title))
		writeOutlineLevel(b, item.Children, depth+1)
		fmt.Fprintf(b, "%s  </li>\n", indent)
	}
	fmt.Fprintf(b, "%s</ul>\n", indent)
}
