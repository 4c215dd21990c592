package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cadscout/cadscout/internal/recognition"
	"github.com/mark3labs/mcp-go/mcp"
)

// InvalidateCacheTool handles the cache_invalidate MCP tool.
type InvalidateCacheTool struct {
	engine *recognition.Engine
}

// NewInvalidateCacheTool creates an InvalidateCacheTool.
func NewInvalidateCacheTool(engine *recognition.Engine) *InvalidateCacheTool {
	return &InvalidateCacheTool{engine: engine}
}

// Definition returns the MCP tool definition for cache_invalidate.
func (t *InvalidateCacheTool) Definition() mcp.Tool {
	return mcp.NewTool("cache_invalidate",
		mcp.WithDescription(
			"Drop cached analysis results. With a key, drops that part's entry; "+
				"without one, clears the whole cache. Use after part geometry "+
				"changed outside the engine's view.",
		),
		mcp.WithString("key",
			mcp.Description("Part name whose cached result should be dropped. Omit to clear everything."),
		),
	)
}

// Handle processes the cache_invalidate tool call.
func (t *InvalidateCacheTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := strings.TrimSpace(req.GetString("key", ""))
	t.engine.InvalidateCache(key)

	if key == "" {
		return mcp.NewToolResultText("Analysis cache cleared."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Cache entry for %q dropped (no-op if absent).", key)), nil
}
