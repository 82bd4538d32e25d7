package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mlmathbook/mlmath/internal/content"
	"github.com/mlmathbook/mlmath/internal/toc"
)

// handleListChapters returns the published chapter registry.
func (s *Server) handleListChapters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	pub := content.Published()
	sb.WriteString(fmt.Sprintf("%d published chapter(s):\n", len(pub)))

	for _, ch := range pub {
		sb.WriteString(fmt.Sprintf("\n%d. %s (slug: %s)\n", ch.Order, ch.Title, ch.Slug))
		sb.WriteString(fmt.Sprintf("   %s\n", ch.Description))
		sb.WriteString(fmt.Sprintf("   Difficulty: %s, reading time: %d min\n", ch.Difficulty, ch.ReadingTime))
		for _, sec := range ch.Sections {
			sb.WriteString(fmt.Sprintf("   - %s (#%s)\n", sec.Title, sec.Slug))
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetChapter returns a chapter's raw markdown.
func (s *Server) handleGetChapter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slug"), nil
	}

	src, err := s.loader.Source(slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chapter not available: %v", err)), nil
	}

	return mcp.NewToolResultText(string(src)), nil
}

// handleGetOutline returns the heading hierarchy of a chapter.
func (s *Server) handleGetOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slug"), nil
	}

	rendered, err := s.loader.Load(slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chapter not available: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Outline of %s:\n", rendered.Chapter.Title))
	var walk func(items []*toc.Item, depth int)
	walk = func(items []*toc.Item, depth int) {
		for _, it := range items {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(fmt.Sprintf("- %s (#%s)\n", it.Title, it.ID))
			walk(it.Children, depth+1)
		}
	}
	walk(rendered.Outline, 0)

	return mcp.NewToolResultText(sb.String()), nil
}

// searchHit is one matching line with its chapter and section context.
type searchHit struct {
	chapter string
	section string
	line    string
}

// handleSearchContent performs a case-insensitive lexical search across all
// published chapter sources.
func (s *Server) handleSearchContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	needle := strings.ToLower(query)
	var hits []searchHit

	for _, ch := range content.Published() {
		src, err := s.loader.Source(ch.Slug)
		if err != nil {
			continue
		}

		section := ""
		for _, line := range strings.Split(string(src), "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "#") {
				section = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			}
			if trimmed == "" || !strings.Contains(strings.ToLower(trimmed), needle) {
				continue
			}
			hits = append(hits, searchHit{chapter: ch.Slug, section: section, line: trimmed})
			if len(hits) >= limit {
				break
			}
		}
		if len(hits) >= limit {
			break
		}
	}

	if len(hits) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No matches for %q.", query)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d match(es) for %q:\n", len(hits), query))
	for i, h := range hits {
		sb.WriteString(fmt.Sprintf("\n--- Match %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Chapter: %s\n", h.chapter))
		if h.section != "" {
			sb.WriteString(fmt.Sprintf("Section: %s\n", h.section))
		}
		sb.WriteString(h.line)
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
