package recognition

// recommendations maps each feature type to its fixed advisory line.
// This is a static lookup: the text never depends on the feature's
// measured dimensions.
var recommendations = map[FeatureType]string{
	FeatureHole:        "Consider standard drill sizes for holes",
	FeatureFillet:      "Fillets can improve stress distribution",
	FeatureChamfer:     "Chamfers ease assembly and deburring",
	FeatureBoss:        "Check boss wall thickness against the base material",
	FeatureCut:         "Verify cut depth leaves sufficient remaining stock",
	FeaturePocket:      "Match pocket corner radii to available tooling",
	FeatureRib:         "Keep rib thickness below 60% of the adjoining wall",
	FeatureGroove:      "Confirm groove width against standard tooling",
	FeatureThread:      "Prefer standard metric thread pitches",
	FeatureCounterbore: "Match counterbore depth to the fastener head height",
	FeatureCountersink: "Use an 82 or 90 degree countersink angle",
	FeatureKeyway:      "Check keyway dimensions against shaft standards",
	FeatureTap:         "Verify the tap drill size for the specified thread",
	FeatureDraft:       "Confirm draft angles meet molding requirements",
}

// noRecommendations is emitted when the feature set produced no advice.
const noRecommendations = "No specific recommendations - consider adding more detectors"

// recommend derives one advisory line per distinct feature type present,
// in first-seen order of the deduplicated features.
func recommend(features []GeometricFeature) []string {
	seen := make(map[FeatureType]bool)
	var recs []string
	for _, f := range features {
		if seen[f.Type] {
			continue
		}
		seen[f.Type] = true
		if text, ok := recommendations[f.Type]; ok {
			recs = append(recs, text)
		}
	}
	if len(recs) == 0 {
		recs = append(recs, noRecommendations)
	}
	return recs
}
