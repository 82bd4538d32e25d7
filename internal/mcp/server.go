// Package mcp exposes the book to AI agents over the Model Context Protocol:
// chapter listings, rendered chapter content, heading outlines, and lexical
// content search.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/mlmathbook/mlmath/internal/content"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes book content tools.
type Server struct {
	loader *content.Loader
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server reading chapters from contentDir.
func NewServer(contentDir string) *Server {
	s := &Server{
		loader: content.NewLoader(contentDir),
	}

	s.mcp = server.NewMCPServer(
		"mlmath",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listChaptersTool, s.handleListChapters)
	s.mcp.AddTool(getChapterTool, s.handleGetChapter)
	s.mcp.AddTool(getOutlineTool, s.handleGetOutline)
	s.mcp.AddTool(searchContentTool, s.handleSearchContent)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
