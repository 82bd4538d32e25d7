package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func setupContentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	probability := `# Probability Theory

Intro text about uncertainty.

## Probability Fundamentals

The axioms of probability.

## Bayes' Theorem

Posterior equals likelihood times prior over evidence.
`
	if err := os.WriteFile(filepath.Join(dir, "probability.md"), []byte(probability), 0o644); err != nil {
		t.Fatal(err)
	}

	optimization := `# Optimization Theory

## Gradient Descent

Follow the negative gradient downhill.
`
	if err := os.WriteFile(filepath.Join(dir, "optimization.md"), []byte(optimization), 0o644); err != nil {
		t.Fatal(err)
	}

	return dir
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_chapters", listChaptersTool, "list_chapters"},
		{"get_chapter", getChapterTool, "get_chapter"},
		{"get_outline", getOutlineTool, "get_outline"},
		{"search_content", searchContentTool, "search_content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestHandleListChapters(t *testing.T) {
	srv := NewServer(setupContentDir(t))

	result, err := srv.handleListChapters(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}

	text := resultText(t, result)
	for _, want := range []string{"linear-algebra", "probability", "optimization", "Beginner"} {
		if !strings.Contains(text, want) {
			t.Errorf("listing missing %q", want)
		}
	}
}

func TestHandleGetChapter(t *testing.T) {
	srv := NewServer(setupContentDir(t))
	ctx := context.Background()

	t.Run("existing chapter", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"slug": "probability"}

		result, err := srv.handleGetChapter(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if !strings.Contains(resultText(t, result), "## Bayes' Theorem") {
			t.Error("chapter markdown missing heading")
		}
	})

	t.Run("unknown chapter", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"slug": "quantum-computing"}

		result, err := srv.handleGetChapter(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unknown chapter")
		}
	})

	t.Run("missing slug", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGetChapter(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing slug")
		}
	})
}

func TestHandleGetOutline(t *testing.T) {
	srv := NewServer(setupContentDir(t))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"slug": "probability"}

	result, err := srv.handleGetOutline(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "#bayes-theorem") {
		t.Errorf("outline missing section id, got:\n%s", text)
	}
	// The h2 is nested under the h1.
	if !strings.Contains(text, "  - Bayes' Theorem") {
		t.Errorf("outline not indented, got:\n%s", text)
	}
}

func TestHandleSearchContent(t *testing.T) {
	srv := NewServer(setupContentDir(t))
	ctx := context.Background()

	t.Run("match with section context", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "posterior"}

		result, err := srv.handleSearchContent(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}

		text := resultText(t, result)
		if !strings.Contains(text, "Chapter: probability") {
			t.Errorf("missing chapter context, got:\n%s", text)
		}
		if !strings.Contains(text, "Section: Bayes' Theorem") {
			t.Errorf("missing section context, got:\n%s", text)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "eigenfaces"}

		result, err := srv.handleSearchContent(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Error("no matches should not be a tool error")
		}
		if !strings.Contains(resultText(t, result), "No matches") {
			t.Error("expected no-match message")
		}
	})

	t.Run("limit respected", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "the", "limit": float64(2)}

		result, err := srv.handleSearchContent(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(resultText(t, result), "--- Match") > 2 {
			t.Error("limit not respected")
		}
	})
}
