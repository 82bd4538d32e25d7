package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listChaptersTool defines the list_chapters MCP tool.
var listChaptersTool = mcp.NewTool("list_chapters",
	mcp.WithDescription("List all published chapters with their difficulty, reading time, and section structure."),
)

// getChapterTool defines the get_chapter MCP tool.
var getChapterTool = mcp.NewTool("get_chapter",
	mcp.WithDescription("Get the full markdown content of a chapter."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Chapter slug, e.g. linear-algebra"),
	),
)

// getOutlineTool defines the get_outline MCP tool.
var getOutlineTool = mcp.NewTool("get_outline",
	mcp.WithDescription("Get the hierarchical heading outline of a chapter, with the section ids used in URLs."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Chapter slug, e.g. linear-algebra"),
	),
)

// searchContentTool defines the search_content MCP tool.
var searchContentTool = mcp.NewTool("search_content",
	mcp.WithDescription("Search chapter content for a term. Returns matching chapters and sections."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search term"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)
