package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cadscout/cadscout/internal/patterns"
	"github.com/cadscout/cadscout/internal/recognition"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListPatternsTool handles the pattern_list MCP tool.
type ListPatternsTool struct {
	catalog *patterns.Store
}

// NewListPatternsTool creates a ListPatternsTool.
func NewListPatternsTool(catalog *patterns.Store) *ListPatternsTool {
	return &ListPatternsTool{catalog: catalog}
}

// Definition returns the MCP tool definition for pattern_list.
func (t *ListPatternsTool) Definition() mcp.Tool {
	return mcp.NewTool("pattern_list",
		mcp.WithDescription(
			"List the feature pattern catalog: named dimension envelopes per "+
				"feature type that heuristic detectors use to judge plausibility.",
		),
		mcp.WithString("feature_type",
			mcp.Description("Filter by feature type (e.g. 'hole', 'fillet'). Omit for everything."),
		),
	)
}

// Handle processes the pattern_list tool call.
func (t *ListPatternsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	featureType := strings.TrimSpace(req.GetString("feature_type", ""))

	entries, err := t.catalog.List(featureType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing patterns: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Pattern Catalog (%d)\n\n", len(entries))
	if len(entries) == 0 {
		sb.WriteString("No patterns match.\n")
	}
	for _, p := range entries {
		spec, _ := json.Marshal(p.Spec)
		fmt.Fprintf(&sb, "- **%s/%s**: `%s`\n", p.FeatureType, p.Name, spec)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// SetPatternTool handles the pattern_set MCP tool.
type SetPatternTool struct {
	catalog *patterns.Store
}

// NewSetPatternTool creates a SetPatternTool.
func NewSetPatternTool(catalog *patterns.Store) *SetPatternTool {
	return &SetPatternTool{catalog: catalog}
}

// Definition returns the MCP tool definition for pattern_set.
func (t *SetPatternTool) Definition() mcp.Tool {
	return mcp.NewTool("pattern_set",
		mcp.WithDescription(
			"Insert or replace a pattern envelope in the catalog. The spec is a "+
				"JSON object of dimension bounds, e.g. "+
				`{"min_diameter": 1.0, "max_diameter": 100.0}.`,
		),
		mcp.WithString("feature_type",
			mcp.Required(),
			mcp.Description("Feature type the pattern applies to (hole, fillet, chamfer, ...)."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Pattern name within the feature type (e.g. 'circular')."),
		),
		mcp.WithString("spec",
			mcp.Required(),
			mcp.Description("JSON object with the envelope values."),
		),
	)
}

// Handle processes the pattern_set tool call.
func (t *SetPatternTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	featureType := strings.TrimSpace(req.GetString("feature_type", ""))
	name := strings.TrimSpace(req.GetString("name", ""))
	specText := strings.TrimSpace(req.GetString("spec", ""))

	if featureType == "" || name == "" || specText == "" {
		return mcp.NewToolResultError("'feature_type', 'name', and 'spec' are all required"), nil
	}
	if !recognition.FeatureType(featureType).Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown feature type %q", featureType)), nil
	}

	var spec map[string]any
	if err := json.Unmarshal([]byte(specText), &spec); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'spec' must be a JSON object: %v", err)), nil
	}

	if err := t.catalog.Upsert(featureType, name, spec); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saving pattern: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Pattern %s/%s saved.", featureType, name)), nil
}
