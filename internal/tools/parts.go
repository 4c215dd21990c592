package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cadscout/cadscout/internal/recognition"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListPartsTool handles the part_list MCP tool.
type ListPartsTool struct {
	engine *recognition.Engine
}

// NewListPartsTool creates a ListPartsTool.
func NewListPartsTool(engine *recognition.Engine) *ListPartsTool {
	return &ListPartsTool{engine: engine}
}

// Definition returns the MCP tool definition for part_list.
func (t *ListPartsTool) Definition() mcp.Tool {
	return mcp.NewTool("part_list",
		mcp.WithDescription(
			"List the part names the engine can resolve: the built-in demo "+
				"document plus any JSON part files in the local part library.",
		),
	)
}

// Handle processes the part_list tool call.
func (t *ListPartsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.engine.Headless() {
		return mcp.NewToolResultText(
			"No part source is wired - the engine runs headless. " +
				"Any name passed to part_analyze yields deterministic sample data.",
		), nil
	}

	names := t.engine.PartNames()
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Parts (%d)\n\n", len(names))
	if len(names) == 0 {
		sb.WriteString("No parts available. Add JSON part files to the part library.\n")
	}
	for _, name := range names {
		fmt.Fprintf(&sb, "- %s\n", name)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
