// Package resources implements the MCP resource handlers.
//
// Resources provide read-only data the host can consume for context.
// They use URI-based addressing (cadscout://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cadscout/cadscout/internal/recognition"
	"github.com/mark3labs/mcp-go/mcp"
)

// EngineStatus is the JSON payload served at cadscout://engine/status.
type EngineStatus struct {
	Detectors      []string `json:"detectors"`
	HistoryLength  int      `json:"history_length"`
	CachedResults  int      `json:"cached_results"`
	Headless       bool     `json:"headless"`
	CatalogEnabled bool     `json:"catalog_enabled"`
}

// Handler manages the engine status resource.
type Handler struct {
	engine         *recognition.Engine
	catalogEnabled bool
}

// NewHandler creates a resource Handler.
func NewHandler(engine *recognition.Engine, catalogEnabled bool) *Handler {
	return &Handler{engine: engine, catalogEnabled: catalogEnabled}
}

// StatusResource returns the MCP resource definition for engine status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"cadscout://engine/status",
		"Recognition Engine Status",
		mcp.WithResourceDescription("Registered detectors, history length, cache size, and mode"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns the current engine status as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	status := EngineStatus{
		Detectors:      h.engine.Detectors(),
		HistoryLength:  len(h.engine.History()),
		CachedResults:  h.engine.CacheLen(),
		Headless:       h.engine.Headless(),
		CatalogEnabled: h.catalogEnabled,
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
