package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cadscout/cadscout/internal/recognition"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultHistoryLimit caps history output when the caller gives no limit.
const defaultHistoryLimit = 10

// HistoryTool handles the analysis_history MCP tool.
type HistoryTool struct {
	engine *recognition.Engine
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(engine *recognition.Engine) *HistoryTool {
	return &HistoryTool{engine: engine}
}

// Definition returns the MCP tool definition for analysis_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("analysis_history",
		mcp.WithDescription(
			"Show past analysis outcomes, most recent first. Every part_analyze "+
				"call appends one entry, cache hits included.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum entries to return (default 10)."),
		),
	)
}

// Handle processes the analysis_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	history := t.engine.History()
	total := len(history)

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Analysis History (%d total)\n\n", total)
	if total == 0 {
		sb.WriteString("No analyses recorded yet.\n")
		return mcp.NewToolResultText(sb.String()), nil
	}

	shown := 0
	for i := total - 1; i >= 0 && shown < limit; i-- {
		r := history[i]
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		fmt.Fprintf(&sb, "%d. [%s] features=%d confidence=%.2f warnings=%d (%.4fs)\n",
			total-i, status, len(r.Features), r.Confidence, len(r.Warnings), r.Duration)
		shown++
	}
	if shown < total {
		fmt.Fprintf(&sb, "\nShowing %d of %d\n", shown, total)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
