// Package recognition implements the geometric feature recognition engine:
// a pluggable detector registry plus an analysis orchestrator that merges,
// deduplicates, and scores detector output.
//
// The engine runs in two modes:
//   - Resolved mode: a document.Resolver maps part names to in-memory
//     part objects (the CAD host stand-in).
//   - Headless mode: no resolver is wired; string targets are substituted
//     with a deterministic placeholder so tests and offline use never fail
//     on missing infrastructure.
//
// Detectors are isolated: one faulty detector contributes a warning, not a
// failed analysis. See RunDetector.
package recognition

// FeatureType identifies the kind of a recognized geometric feature.
// The set is closed — detectors must report one of these values.
type FeatureType string

// All recognizable feature types.
const (
	FeatureHole        FeatureType = "hole"
	FeatureFillet      FeatureType = "fillet"
	FeatureChamfer     FeatureType = "chamfer"
	FeatureBoss        FeatureType = "boss"
	FeatureCut         FeatureType = "cut"
	FeaturePocket      FeatureType = "pocket"
	FeatureRib         FeatureType = "rib"
	FeatureGroove      FeatureType = "groove"
	FeatureThread      FeatureType = "thread"
	FeatureCounterbore FeatureType = "counterbore"
	FeatureCountersink FeatureType = "countersink"
	FeatureKeyway      FeatureType = "keyway"
	FeatureTap         FeatureType = "tap"
	FeatureDraft       FeatureType = "draft"
)

// FeatureTypes lists every valid FeatureType in declaration order.
var FeatureTypes = []FeatureType{
	FeatureHole, FeatureFillet, FeatureChamfer, FeatureBoss,
	FeatureCut, FeaturePocket, FeatureRib, FeatureGroove,
	FeatureThread, FeatureCounterbore, FeatureCountersink,
	FeatureKeyway, FeatureTap, FeatureDraft,
}

// Valid reports whether t is one of the known feature types.
func (t FeatureType) Valid() bool {
	for _, ft := range FeatureTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// Point is a 3D location in millimeters.
type Point [3]float64

// GeometricFeature is a single recognized feature. It is a value object:
// treat it as immutable once constructed — deduplication identity is
// (Type, Location, Description), nothing else.
type GeometricFeature struct {
	// Type is the feature classification (one of FeatureTypes).
	Type FeatureType `json:"feature_type"`
	// Location is the feature's reference point.
	Location Point `json:"location"`
	// Dimensions maps dimension names ("diameter", "radius", "depth")
	// to values. Millimeters by convention, never enforced.
	Dimensions map[string]float64 `json:"dimensions"`
	// Confidence is the detector's self-reported certainty in [0, 1].
	Confidence float64 `json:"confidence"`
	// Description is a free-text human-readable label.
	Description string `json:"description"`
}

// dedupKey is the composite identity used when merging detector output.
// Dimensions are deliberately excluded: two detectors reporting the same
// feature may disagree on measured values.
type dedupKey struct {
	Type        FeatureType
	Location    Point
	Description string
}

func (f GeometricFeature) key() dedupKey {
	return dedupKey{Type: f.Type, Location: f.Location, Description: f.Description}
}
