package recognition

import (
	"fmt"

	"github.com/cadscout/cadscout/internal/document"
	"github.com/cadscout/cadscout/internal/patterns"
)

// HoleProbe is a deterministic canned detector: it reports the same
// through hole for any target. It exists so headless runs and tests have
// stable, known output.
type HoleProbe struct{}

func (HoleProbe) Name() string            { return "mock_hole" }
func (HoleProbe) Provides() []FeatureType { return []FeatureType{FeatureHole} }

func (HoleProbe) Detect(target any) ([]GeometricFeature, error) {
	return []GeometricFeature{{
		Type:        FeatureHole,
		Location:    Point{10.0, 20.0, 0.0},
		Dimensions:  map[string]float64{"diameter": 8.0, "depth": 15.0},
		Confidence:  0.92,
		Description: "Through hole, 8mm diameter",
	}}, nil
}

// FilletProbe is the fillet counterpart of HoleProbe.
type FilletProbe struct{}

func (FilletProbe) Name() string            { return "mock_fillet" }
func (FilletProbe) Provides() []FeatureType { return []FeatureType{FeatureFillet} }

func (FilletProbe) Detect(target any) ([]GeometricFeature, error) {
	return []GeometricFeature{{
		Type:        FeatureFillet,
		Location:    Point{5.0, 5.0, 0.0},
		Dimensions:  map[string]float64{"radius": 2.0},
		Confidence:  0.88,
		Description: "Edge fillet, 2mm radius",
	}}, nil
}

// Fallback envelope for EdgeProbe when no pattern catalog is available.
const (
	fallbackMinDiameter = 1.0
	fallbackMaxDiameter = 100.0
)

// filletEdgeThreshold is the naive edge count above which EdgeProbe
// assumes the part carries fillets.
const filletEdgeThreshold = 10

// EdgeProbe inspects real part topology: circular edges become hole
// candidates, and a high edge count hints at fillets. Confidence is
// raised when a hole diameter sits inside the catalog's plausible
// envelope and lowered otherwise.
//
// Targets that are not *document.Part (e.g. headless placeholders) yield
// no features.
type EdgeProbe struct {
	catalog *patterns.Store // nil means use fallback constants
}

// NewEdgeProbe creates an EdgeProbe. catalog may be nil.
func NewEdgeProbe(catalog *patterns.Store) *EdgeProbe {
	return &EdgeProbe{catalog: catalog}
}

func (*EdgeProbe) Name() string { return "edge_probe" }

func (*EdgeProbe) Provides() []FeatureType {
	return []FeatureType{FeatureHole, FeatureFillet}
}

func (p *EdgeProbe) Detect(target any) ([]GeometricFeature, error) {
	part, ok := target.(*document.Part)
	if !ok {
		return nil, nil
	}

	minD, maxD := fallbackMinDiameter, fallbackMaxDiameter
	if p.catalog != nil {
		if lo, hi, ok := p.catalog.DiameterEnvelope(); ok {
			minD, maxD = lo, hi
		}
	}

	var feats []GeometricFeature
	for _, edge := range part.Edges {
		if edge.Kind != document.EdgeCircle {
			continue
		}
		diameter := edge.Radius * 2
		confidence := 0.3
		if diameter >= minD && diameter <= maxD {
			confidence = 0.55
		}
		feats = append(feats, GeometricFeature{
			Type:        FeatureHole,
			Location:    Point(edge.Center),
			Dimensions:  map[string]float64{"diameter": diameter},
			Confidence:  confidence,
			Description: fmt.Sprintf("Potential circular hole, %.1fmm diameter", diameter),
		})
	}

	if len(part.Edges) > filletEdgeThreshold {
		feats = append(feats, GeometricFeature{
			Type:        FeatureFillet,
			Location:    Point{0, 0, 0},
			Dimensions:  map[string]float64{"radius": 1.0},
			Confidence:  0.3,
			Description: "Heuristic fillet indication",
		})
	}
	return feats, nil
}

// DefaultDetectors returns the stock detector set registered by a fresh
// engine: the two canned probes, matching headless behavior of the
// original advisor.
func DefaultDetectors() []Detector {
	return []Detector{HoleProbe{}, FilletProbe{}}
}
