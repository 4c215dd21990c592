package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cadscout/cadscout/internal/recognition"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListDetectorsTool handles the detector_list MCP tool.
type ListDetectorsTool struct {
	engine *recognition.Engine
}

// NewListDetectorsTool creates a ListDetectorsTool.
func NewListDetectorsTool(engine *recognition.Engine) *ListDetectorsTool {
	return &ListDetectorsTool{engine: engine}
}

// Definition returns the MCP tool definition for detector_list.
func (t *ListDetectorsTool) Definition() mcp.Tool {
	return mcp.NewTool("detector_list",
		mcp.WithDescription(
			"List the registered feature detectors by name, sorted. "+
				"These are the strategies part_analyze runs against a part.",
		),
	)
}

// Handle processes the detector_list tool call.
func (t *ListDetectorsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := t.engine.Detectors()
	provides := t.engine.DetectorProvides()

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Detectors (%d)\n\n", len(names))
	if len(names) == 0 {
		sb.WriteString("No detectors registered - part_analyze will find nothing.\n")
	}
	for _, name := range names {
		if fts := provides[name]; len(fts) > 0 {
			kinds := make([]string, len(fts))
			for i, ft := range fts {
				kinds[i] = string(ft)
			}
			fmt.Fprintf(&sb, "- %s (provides: %s)\n", name, strings.Join(kinds, ", "))
			continue
		}
		fmt.Fprintf(&sb, "- %s\n", name)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// UnregisterDetectorTool handles the detector_unregister MCP tool.
// Registering new detectors is a Go-level extension point; removal only
// needs a name, so it is exposed remotely.
type UnregisterDetectorTool struct {
	engine *recognition.Engine
}

// NewUnregisterDetectorTool creates an UnregisterDetectorTool.
func NewUnregisterDetectorTool(engine *recognition.Engine) *UnregisterDetectorTool {
	return &UnregisterDetectorTool{engine: engine}
}

// Definition returns the MCP tool definition for detector_unregister.
func (t *UnregisterDetectorTool) Definition() mcp.Tool {
	return mcp.NewTool("detector_unregister",
		mcp.WithDescription(
			"Remove a detector from the active set by name. "+
				"Clears the analysis cache, since cached results were computed "+
				"with the old detector set.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Detector name to remove (see detector_list)."),
		),
	)
}

// Handle processes the detector_unregister tool call.
func (t *UnregisterDetectorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("'name' is required - the detector to remove"), nil
	}

	if !t.engine.Unregister(name) {
		return mcp.NewToolResultError(fmt.Sprintf("no detector named %q is registered", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Removed detector %q. The analysis cache was cleared.", name,
	)), nil
}
