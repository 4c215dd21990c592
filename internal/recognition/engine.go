package recognition

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cadscout/cadscout/internal/document"
)

// Engine is the analysis orchestrator: it owns the detector registry, the
// per-name result cache, and the append-only history, and is the only
// entry point for running an analysis.
//
// A single mutex guards all state. Analyze holds it for the whole run, so
// a registration change can never interleave with an in-flight cache
// lookup — the cache is always cleared before the next analysis sees the
// new detector set.
type Engine struct {
	mu       sync.Mutex
	registry *Registry
	resolver document.Resolver // nil: headless mode, placeholders substitute
	cache    map[string]*AnalysisResult
	history  []*AnalysisResult
}

// New creates an engine with the given detectors registered in order.
// resolver may be nil, putting the engine in headless mode: named targets
// that cannot be resolved become deterministic placeholders instead of
// failures.
func New(resolver document.Resolver, detectors ...Detector) *Engine {
	e := &Engine{
		registry: NewRegistry(),
		resolver: resolver,
		cache:    make(map[string]*AnalysisResult),
	}
	for _, d := range detectors {
		// Overwrite semantics: last registration wins, as with Register.
		_ = e.registry.Register(d, true)
	}
	return e
}

// NewDefault creates an engine with the stock detector set.
func NewDefault(resolver document.Resolver) *Engine {
	return New(resolver, DefaultDetectors()...)
}

// Register adds or replaces a detector. With overwrite disabled, a name
// collision returns ErrDuplicateDetector without mutating anything.
// Any successful mutation clears the result cache: cached results were
// computed with a different detector set.
func (e *Engine) Register(d Detector, overwrite bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.registry.Register(d, overwrite); err != nil {
		return err
	}
	e.cache = make(map[string]*AnalysisResult)
	return nil
}

// Unregister removes the named detector, reporting whether it was
// present. The cache is cleared on success.
func (e *Engine) Unregister(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.registry.Unregister(name) {
		return false
	}
	e.cache = make(map[string]*AnalysisResult)
	return true
}

// Detectors returns the registered detector names, sorted.
func (e *Engine) Detectors() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Names()
}

// DetectorProvides maps each registered detector name to the feature
// types it declares. Informational, mirroring Detector.Provides.
func (e *Engine) DetectorProvides() map[string][]FeatureType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string][]FeatureType, e.registry.Len())
	for _, d := range e.registry.detectors() {
		out[d.Name()] = d.Provides()
	}
	return out
}

// Analyze runs every registered detector against the target and returns
// the merged, deduplicated result.
//
// target is either a string (a part name, resolved through the engine's
// resolver) or an already-resolved object handed directly to detectors.
// For string targets with caching enabled, a cached result is returned
// as-is — the identical pointer, no detector runs — and still appended to
// history.
//
// The only failure mode is an unresolvable name while a resolver is
// wired: that returns Success=false with an explanatory recommendation.
// Detector failures degrade to Warnings entries.
func (e *Engine) Analyze(target any, useCache bool) *AnalysisResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj := target
	if name, ok := target.(string); ok {
		if useCache {
			if cached, hit := e.cache[name]; hit {
				e.history = append(e.history, cached)
				return cached
			}
		}
		resolved, found := false, false
		if e.resolver != nil {
			obj, found = e.resolver.Resolve(name)
			resolved = true
		}
		switch {
		case resolved && !found:
			result := &AnalysisResult{
				Success:         false,
				Features:        []GeometricFeature{},
				Recommendations: []string{fmt.Sprintf("Analysis failed: part %q not found", name)},
				Warnings:        []string{},
			}
			log.Printf("WARNING: analysis target %q not found", name)
			e.history = append(e.history, result)
			return result
		case !resolved:
			// Headless: substitute a deterministic placeholder so
			// offline use and tests never fail on missing infrastructure.
			obj = document.Placeholder{Name: name}
		}
	}

	result := e.run(obj)
	e.history = append(e.history, result)
	if name, ok := target.(string); ok && useCache {
		e.cache[name] = result
	}
	return result
}

// run executes the fresh-run procedure: detect, merge, dedup, score,
// recommend. The clock covers exactly these steps.
func (e *Engine) run(obj any) *AnalysisResult {
	start := time.Now()

	var all []GeometricFeature
	warnings := []string{}
	for _, d := range e.registry.detectors() {
		feats, warning := RunDetector(d, obj)
		if warning != "" {
			warnings = append(warnings, warning)
		}
		all = append(all, feats...)
	}

	features := dedupe(all)

	return &AnalysisResult{
		Success:         true,
		Features:        features,
		Duration:        time.Since(start).Seconds(),
		Confidence:      meanConfidence(features),
		Recommendations: recommend(features),
		Warnings:        warnings,
	}
}

// dedupe collapses features sharing (type, location, description) to the
// highest-confidence variant. On equal confidence the first-seen feature
// wins, and output preserves first-seen order.
func dedupe(features []GeometricFeature) []GeometricFeature {
	slot := make(map[dedupKey]int)
	out := make([]GeometricFeature, 0, len(features))
	for _, f := range features {
		key := f.key()
		if i, seen := slot[key]; seen {
			if f.Confidence > out[i].Confidence {
				out[i] = f
			}
			continue
		}
		slot[key] = len(out)
		out = append(out, f)
	}
	return out
}

// InvalidateCache removes the cached result for key, or clears the whole
// cache when key is empty. Absent keys are a no-op.
func (e *Engine) InvalidateCache(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if key == "" {
		e.cache = make(map[string]*AnalysisResult)
		return
	}
	delete(e.cache, key)
}

// CacheLen returns the number of cached results.
func (e *Engine) CacheLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cache)
}

// History returns a snapshot of the full analysis history, oldest first.
// The slice is a copy; the results it points to are shared and read-only.
func (e *Engine) History() []*AnalysisResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*AnalysisResult, len(e.history))
	copy(out, e.history)
	return out
}

// Headless reports whether the engine runs without a resolver.
func (e *Engine) Headless() bool {
	return e.resolver == nil
}

// PartNames lists the names resolvable by the engine's resolver, or nil
// in headless mode.
func (e *Engine) PartNames() []string {
	if e.resolver == nil {
		return nil
	}
	return e.resolver.PartNames()
}
