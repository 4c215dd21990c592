package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/cadscout/cadscout/internal/document"
	"github.com/cadscout/cadscout/internal/patterns"
	"github.com/cadscout/cadscout/internal/recognition"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Test helpers ---

// makeReq builds a CallToolRequest with the given arguments.
func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("content is %T, want text", res.Content[0])
	}
	return tc.Text
}

// newTestEngine creates an engine over the demo document with the stock
// detectors.
func newTestEngine(t *testing.T) *recognition.Engine {
	t.Helper()
	return recognition.NewDefault(document.Demo())
}

// newTestCatalog creates a pattern catalog in a temp directory.
func newTestCatalog(t *testing.T) *patterns.Store {
	t.Helper()
	s, err := patterns.New(patterns.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("creating test catalog: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// --- part_analyze ---

func TestAnalyzeTool_Definition(t *testing.T) {
	def := NewAnalyzeTool(newTestEngine(t)).Definition()
	if def.Name != "part_analyze" {
		t.Errorf("name = %q, want part_analyze", def.Name)
	}
	if def.Description == "" {
		t.Error("description is empty")
	}
}

func TestAnalyzeTool_Success(t *testing.T) {
	tool := NewAnalyzeTool(newTestEngine(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{"name": "bracket"}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	text := resultText(t, res)
	if !strings.Contains(text, "## Analysis: bracket") {
		t.Errorf("missing header in output:\n%s", text)
	}
	if !strings.Contains(text, "```json") {
		t.Error("output should embed the JSON payload")
	}
	if !strings.Contains(text, `"confidence_score"`) {
		t.Error("JSON payload should use the documented field names")
	}
	if !strings.Contains(text, "Through hole, 8mm diameter") {
		t.Error("stock hole feature missing from summary")
	}
}

func TestAnalyzeTool_MissingName(t *testing.T) {
	tool := NewAnalyzeTool(newTestEngine(t))

	for _, args := range []map[string]any{
		{},
		{"name": ""},
		{"name": "   "},
	} {
		res, err := tool.Handle(context.Background(), makeReq(args))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if !res.IsError {
			t.Errorf("args %v: expected an error result", args)
		}
	}
}

func TestAnalyzeTool_UnresolvableName(t *testing.T) {
	tool := NewAnalyzeTool(newTestEngine(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{"name": "no_such_part"}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	// An unresolvable part is a domain outcome, not a tool error.
	if res.IsError {
		t.Fatal("unresolvable part should not be a tool error")
	}
	text := resultText(t, res)
	if !strings.Contains(text, "**Failed**") {
		t.Errorf("missing failure marker:\n%s", text)
	}
	if !strings.Contains(text, `"success": false`) {
		t.Errorf("payload should report success=false:\n%s", text)
	}
}

func TestAnalyzeTool_CacheFlag(t *testing.T) {
	engine := newTestEngine(t)
	tool := NewAnalyzeTool(engine)

	_, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"name": "bracket", "use_cache": false,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if engine.CacheLen() != 0 {
		t.Error("use_cache=false must not populate the cache")
	}

	_, err = tool.Handle(context.Background(), makeReq(map[string]any{"name": "bracket"}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if engine.CacheLen() != 1 {
		t.Error("default caching should populate the cache")
	}
}

// --- part_list ---

func TestListPartsTool(t *testing.T) {
	tool := NewListPartsTool(newTestEngine(t))

	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := resultText(t, res)
	for _, name := range []string{"bracket", "cover_plate"} {
		if !strings.Contains(text, "- "+name) {
			t.Errorf("missing part %q:\n%s", name, text)
		}
	}
}

func TestListPartsTool_Headless(t *testing.T) {
	tool := NewListPartsTool(recognition.NewDefault(nil))

	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "headless") {
		t.Errorf("headless mode should be called out:\n%s", text)
	}
}

// --- detector_list / detector_unregister ---

func TestListDetectorsTool(t *testing.T) {
	tool := NewListDetectorsTool(newTestEngine(t))

	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "## Detectors (2)") {
		t.Errorf("unexpected header:\n%s", text)
	}
	// Sorted: mock_fillet before mock_hole.
	fillet := strings.Index(text, "mock_fillet")
	hole := strings.Index(text, "mock_hole")
	if fillet < 0 || hole < 0 || fillet > hole {
		t.Errorf("detector names missing or unsorted:\n%s", text)
	}
	if !strings.Contains(text, "provides: hole") {
		t.Errorf("declared feature types missing:\n%s", text)
	}
}

func TestUnregisterDetectorTool(t *testing.T) {
	engine := newTestEngine(t)
	tool := NewUnregisterDetectorTool(engine)

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{"name": "mock_hole"}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if len(engine.Detectors()) != 1 {
		t.Errorf("detectors after removal = %v", engine.Detectors())
	}

	// Removing again reports an error result.
	res, err = tool.Handle(context.Background(), makeReq(map[string]any{"name": "mock_hole"}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.IsError {
		t.Error("removing an absent detector should be an error result")
	}
	if !strings.Contains(resultText(t, res), `no detector named "mock_hole"`) {
		t.Errorf("unexpected error text: %s", resultText(t, res))
	}
}

func TestUnregisterDetectorTool_MissingName(t *testing.T) {
	tool := NewUnregisterDetectorTool(newTestEngine(t))

	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.IsError {
		t.Error("expected an error result without a name")
	}
}

// --- analysis_history ---

func TestHistoryTool_Empty(t *testing.T) {
	tool := NewHistoryTool(newTestEngine(t))

	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(resultText(t, res), "No analyses recorded yet.") {
		t.Errorf("unexpected output: %s", resultText(t, res))
	}
}

func TestHistoryTool_NewestFirstWithLimit(t *testing.T) {
	engine := newTestEngine(t)
	engine.Analyze("bracket", false)
	engine.Analyze("cover_plate", false)
	engine.Analyze("no_such_part", false)

	tool := NewHistoryTool(engine)
	res, err := tool.Handle(context.Background(), makeReq(map[string]any{"limit": float64(2)}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	text := resultText(t, res)
	if !strings.Contains(text, "(3 total)") {
		t.Errorf("unexpected header:\n%s", text)
	}
	// Newest entry is the failed lookup.
	if !strings.Contains(text, "1. [failed]") {
		t.Errorf("newest entry should be first and failed:\n%s", text)
	}
	if !strings.Contains(text, "Showing 2 of 3") {
		t.Errorf("limit footer missing:\n%s", text)
	}
}

// --- cache_invalidate ---

func TestInvalidateCacheTool(t *testing.T) {
	engine := newTestEngine(t)
	engine.Analyze("bracket", true)
	engine.Analyze("cover_plate", true)

	tool := NewInvalidateCacheTool(engine)

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{"key": "bracket"}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(resultText(t, res), `"bracket"`) {
		t.Errorf("unexpected output: %s", resultText(t, res))
	}
	if engine.CacheLen() != 1 {
		t.Errorf("cache entries = %d, want 1", engine.CacheLen())
	}

	res, err = tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(resultText(t, res), "cache cleared") {
		t.Errorf("unexpected output: %s", resultText(t, res))
	}
	if engine.CacheLen() != 0 {
		t.Errorf("cache entries = %d, want 0", engine.CacheLen())
	}
}

// --- pattern_list / pattern_set ---

func TestListPatternsTool(t *testing.T) {
	tool := NewListPatternsTool(newTestCatalog(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{"feature_type": "hole"}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "hole/circular") {
		t.Errorf("missing seeded pattern:\n%s", text)
	}
	if strings.Contains(text, "fillet/") {
		t.Errorf("filter leaked other feature types:\n%s", text)
	}
}

func TestSetPatternTool(t *testing.T) {
	catalog := newTestCatalog(t)
	tool := NewSetPatternTool(catalog)

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"feature_type": "chamfer",
		"name":         "edge_break",
		"spec":         `{"min_width": 0.2, "max_width": 5.0}`,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	p, err := catalog.Get("chamfer", "edge_break")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Spec["max_width"] != 5.0 {
		t.Errorf("stored spec = %v", p.Spec)
	}
}

func TestSetPatternTool_Validation(t *testing.T) {
	tool := NewSetPatternTool(newTestCatalog(t))

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing args", map[string]any{}},
		{"unknown feature type", map[string]any{
			"feature_type": "slot", "name": "x", "spec": "{}",
		}},
		{"spec not json", map[string]any{
			"feature_type": "hole", "name": "x", "spec": "not json",
		}},
		{"spec not object", map[string]any{
			"feature_type": "hole", "name": "x", "spec": "[1, 2]",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tool.Handle(context.Background(), makeReq(tt.args))
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if !res.IsError {
				t.Error("expected an error result")
			}
		})
	}
}

// --- helpers ---

func TestIntArg(t *testing.T) {
	req := makeReq(map[string]any{"n": float64(7), "s": "x"})

	if got := intArg(req, "n", 1); got != 7 {
		t.Errorf("intArg(n) = %d, want 7", got)
	}
	if got := intArg(req, "missing", 1); got != 1 {
		t.Errorf("intArg(missing) = %d, want default 1", got)
	}
	if got := intArg(req, "s", 1); got != 1 {
		t.Errorf("intArg(s) = %d, want default 1 for non-number", got)
	}
}

func TestBoolArg(t *testing.T) {
	req := makeReq(map[string]any{"b": false})

	if got := boolArg(req, "b", true); got {
		t.Error("boolArg(b) = true, want false")
	}
	if got := boolArg(req, "missing", true); !got {
		t.Error("boolArg(missing) = false, want default true")
	}
}
