package recognition

// AnalysisResult is the aggregate outcome of one analysis run.
//
// Results are immutable after construction. The engine may hand the same
// *AnalysisResult to multiple callers on cache hits — treat it as
// read-only. The JSON field names form the serialization contract
// consumed by UI layers and MCP clients.
type AnalysisResult struct {
	// Success is false only when a named target could not be resolved
	// at all. Individual detector failures never clear it.
	Success bool `json:"success"`
	// Features is the deduplicated feature list, in first-seen order.
	Features []GeometricFeature `json:"features_found"`
	// Duration is the elapsed wall-clock time of the detector run and
	// aggregation, in seconds. Target resolution is excluded.
	Duration float64 `json:"analysis_time"`
	// Confidence is the arithmetic mean of feature confidences,
	// 0.0 when Features is empty.
	Confidence float64 `json:"confidence_score"`
	// Recommendations holds one fixed suggestion per distinct feature
	// type present, or a single generic line when nothing matched.
	Recommendations []string `json:"recommendations"`
	// Warnings holds one entry per detector that failed internally.
	Warnings []string `json:"warnings"`
}

// meanConfidence computes the aggregate confidence over features.
func meanConfidence(features []GeometricFeature) float64 {
	if len(features) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, f := range features {
		sum += f.Confidence
	}
	return sum / float64(len(features))
}
