package recognition

import (
	"fmt"
	"log"
)

// Detector is the capability contract for a feature-detection strategy.
//
// Detect may assume target is whatever the caller supplied — a resolved
// part object or a headless placeholder — and must not mutate it.
// Implementations report problems through the error return; the engine
// never calls Detect directly, only through RunDetector, so a failing
// detector degrades to a warning instead of aborting the analysis.
type Detector interface {
	// Name is the unique registry key for this detector.
	Name() string
	// Provides declares which feature types this detector can return.
	// Informational only — never enforced.
	Provides() []FeatureType
	// Detect runs the strategy against the target.
	Detect(target any) ([]GeometricFeature, error)
}

// RunDetector invokes d.Detect with full failure isolation: a returned
// error or a panic is logged and converted into a warning string, and the
// detector contributes zero features for this run. The returned warning is
// empty on success.
func RunDetector(d Detector, target any) (features []GeometricFeature, warning string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARNING: detector %q panicked: %v", d.Name(), r)
			features = nil
			warning = fmt.Sprintf("Detector %s failed: %v", d.Name(), r)
		}
	}()

	features, err := d.Detect(target)
	if err != nil {
		log.Printf("WARNING: detector %q failed: %v", d.Name(), err)
		return nil, fmt.Sprintf("Detector %s failed: %v", d.Name(), err)
	}
	return features, ""
}
