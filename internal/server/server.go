// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools/prompts/resources that depend on them.
// No business logic lives here — only wiring.
package server

import (
	"log"

	"github.com/cadscout/cadscout/internal/document"
	"github.com/cadscout/cadscout/internal/patterns"
	"github.com/cadscout/cadscout/internal/prompts"
	"github.com/cadscout/cadscout/internal/recognition"
	"github.com/cadscout/cadscout/internal/resources"
	"github.com/cadscout/cadscout/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts, and
// resources registered. This is the single place where all dependencies
// are resolved.
//
// The returned cleanup function closes the pattern catalog's database
// connection and must be called on shutdown (typically via defer). It is
// always non-nil and safe to call even if the catalog failed to open.
func New() (*server.MCPServer, func(), error) {
	// --- Target resolution ---
	//
	// The demo document is layered over the on-disk part library, so
	// user-supplied part files can shadow nothing but extend everything.
	resolver := document.Chain{
		document.Demo(),
		document.NewLibrary(document.DefaultLibraryDir()),
	}

	// --- Pattern catalog ---
	//
	// The catalog is an independent subsystem: if it fails to open, the
	// engine keeps working with built-in envelopes and the pattern tools
	// are simply not registered.
	cleanup := noop
	catalog, catErr := patterns.New(patterns.DefaultConfig())
	if catErr != nil {
		log.Printf("WARNING: pattern catalog disabled: %v", catErr)
		catalog = nil
	} else {
		cleanup = func() {
			if err := catalog.Close(); err != nil {
				log.Printf("WARNING: pattern catalog close: %v", err)
			}
		}
	}

	// --- Recognition engine ---
	//
	// Stock probes always run; the edge heuristics only make sense with
	// real part geometry, so EdgeProbe joins only when a resolver exists.
	engine := recognition.NewDefault(resolver)
	if err := engine.Register(recognition.NewEdgeProbe(catalog), true); err != nil {
		return nil, cleanup, err
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"cadscout",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register engine tools ---

	analyzeTool := tools.NewAnalyzeTool(engine)
	s.AddTool(analyzeTool.Definition(), analyzeTool.Handle)

	partListTool := tools.NewListPartsTool(engine)
	s.AddTool(partListTool.Definition(), partListTool.Handle)

	detectorListTool := tools.NewListDetectorsTool(engine)
	s.AddTool(detectorListTool.Definition(), detectorListTool.Handle)

	unregisterTool := tools.NewUnregisterDetectorTool(engine)
	s.AddTool(unregisterTool.Definition(), unregisterTool.Handle)

	historyTool := tools.NewHistoryTool(engine)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	invalidateTool := tools.NewInvalidateCacheTool(engine)
	s.AddTool(invalidateTool.Definition(), invalidateTool.Handle)

	// --- Register catalog tools (only when the catalog is available) ---

	if catalog != nil {
		patternListTool := tools.NewListPatternsTool(catalog)
		s.AddTool(patternListTool.Definition(), patternListTool.Handle)

		patternSetTool := tools.NewSetPatternTool(catalog)
		s.AddTool(patternSetTool.Definition(), patternSetTool.Handle)
	}

	// --- Register prompts ---

	inspectPrompt := prompts.NewInspectPrompt()
	s.AddPrompt(inspectPrompt.Definition(), inspectPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(engine, catalog != nil)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, cleanup, nil
}

// noop is the default cleanup function when the catalog is disabled.
func noop() {}

// serverInstructions returns the system instructions that tell the AI how
// to use cadscout effectively.
func serverInstructions() string {
	return `You have access to cadscout, a geometric feature recognition MCP server for CAD parts.

## What cadscout does
cadscout runs a set of pluggable feature detectors against a part and returns
recognized features (holes, fillets, chamfers, pockets, ...), each with a
location, dimensions in millimeters, and a confidence score in [0, 1]. It
merges and deduplicates detector output, computes an aggregate confidence,
and attaches fixed manufacturing recommendations per feature type.

## Typical workflow
1. Call part_list to see which parts are resolvable.
2. Call part_analyze with a part name. The response embeds the full JSON
   payload (features_found, confidence_score, recommendations, warnings).
3. Interpret the result for the user: group features by type, flag low
   confidence (< 0.5) as "heuristic only", and surface warnings.

## Things to know
- Results are cached per part name; the cache is cleared automatically when
  the detector set changes, or manually with cache_invalidate.
- A warning like "Detector X failed: ..." means one detector degraded; the
  rest of the result is still valid. Never treat warnings as a failed run.
- success=false only means the part name could not be resolved at all.
- Without a CAD document, the engine substitutes deterministic sample data
  so every tool still works headless.
- The pattern catalog (pattern_list / pattern_set) holds plausible dimension
  envelopes; heuristic detectors use it to score hole candidates. Adjust it
  when the user works with unusually small or large features.
- Detector registration is an in-process Go API; remotely you can only
  remove detectors (detector_unregister).`
}
