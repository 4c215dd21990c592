package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cadscout/cadscout/internal/recognition"
	"github.com/mark3labs/mcp-go/mcp"
)

// AnalyzeTool handles the part_analyze MCP tool: it runs the recognition
// engine against a named part and returns the full analysis payload.
type AnalyzeTool struct {
	engine *recognition.Engine
}

// NewAnalyzeTool creates an AnalyzeTool bound to the given engine.
func NewAnalyzeTool(engine *recognition.Engine) *AnalyzeTool {
	return &AnalyzeTool{engine: engine}
}

// Definition returns the MCP tool definition for part_analyze.
func (t *AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("part_analyze",
		mcp.WithDescription(
			"Analyze a named part for geometric features (holes, fillets, pockets, ...). "+
				"Runs every registered detector, deduplicates their findings, and returns "+
				"features with confidence scores, manufacturing recommendations, and any "+
				"detector warnings. Results for a name are cached until the detector set changes.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Part name to analyze. Use part_list to see resolvable names. "+
				"Without a CAD document wired, any name yields deterministic sample data."),
		),
		mcp.WithBoolean("use_cache",
			mcp.Description("Reuse a previously computed result for this name when available (default true)."),
		),
	)
}

// Handle processes the part_analyze tool call.
func (t *AnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("'name' is required - the part to analyze"), nil
	}
	useCache := boolArg(req, "use_cache", true)

	result := t.engine.Analyze(name, useCache)

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding analysis result: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Analysis: %s\n\n", name)
	if !result.Success {
		sb.WriteString("**Failed** - the part could not be resolved.\n\n")
	} else {
		fmt.Fprintf(&sb, "- **Features**: %d\n", len(result.Features))
		fmt.Fprintf(&sb, "- **Confidence**: %.2f\n", result.Confidence)
		fmt.Fprintf(&sb, "- **Analysis time**: %.4fs\n\n", result.Duration)
		for i, f := range result.Features {
			fmt.Fprintf(&sb, "%d. %s @ (%.1f, %.1f, %.1f) - %s (c=%.2f)\n",
				i+1, f.Type, f.Location[0], f.Location[1], f.Location[2],
				f.Description, f.Confidence)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("**Recommendations**:\n")
	for _, r := range result.Recommendations {
		fmt.Fprintf(&sb, "- %s\n", r)
	}
	if len(result.Warnings) > 0 {
		sb.WriteString("\n**Warnings**:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}
	sb.WriteString("\n```json\n")
	sb.Write(payload)
	sb.WriteString("\n```\n")

	return mcp.NewToolResultText(sb.String()), nil
}
