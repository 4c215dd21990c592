// Package prompts implements the MCP prompts shipped with the server.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// InspectPrompt handles the part-inspect MCP prompt.
// It instructs the AI how to drive a feature inspection session.
type InspectPrompt struct{}

// NewInspectPrompt creates an InspectPrompt.
func NewInspectPrompt() *InspectPrompt {
	return &InspectPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *InspectPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("part-inspect",
		mcp.WithPromptDescription(
			"Inspect a part for manufacturing features. Walks through listing "+
				"parts, running the analysis, and interpreting confidence scores "+
				"and recommendations.",
		),
	)
}

// Handle processes the part-inspect prompt request.
func (p *InspectPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Part feature inspection",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please inspect a part for me:\n\n" +
						"1. Run `part_list` and show me the available parts\n" +
						"2. Run `part_analyze` on the part I pick\n" +
						"3. Summarize the features found, grouped by type, with their confidence\n" +
						"4. Explain each recommendation in one sentence\n" +
						"5. If there are warnings, tell me which detector failed and whether the result is still usable",
				),
			},
		},
	}, nil
}
