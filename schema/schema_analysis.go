package schema

// PredictiveReport is the full output of a predictive analysis pass over a
// workspace: per-flight signals plus campaign-level opportunities and the
// combined alert feed.
type PredictiveReport struct {
	Signals       []FlightSignals    `json:"signals"`
	Opportunities []OpportunityScore `json:"opportunities"`
	Alerts        []PredictiveAlert  `json:"alerts"`
}

// AttributionReport is the output of an attribution run: the results for
// the requested model, plus the per-model comparison when one was asked for.
type AttributionReport struct {
	Model      AttributionModel    `json:"model"`
	Results    []AttributionResult `json:"results"`
	Comparison *ModelComparison    `json:"comparison,omitempty"`
}

// LiftReport is the output of an incrementality pass over a workspace's
// experiments.
type LiftReport struct {
	Results []IncrementalityResult `json:"results"`
}

// OverlapReport is the output of an audience overlap pass.
type OverlapReport struct {
	Matrix      *OverlapMatrix       `json:"matrix"`
	UniqueReach *UniqueReachEstimate `json:"uniqueReach"`
	Performance []SegmentPerformance `json:"performance,omitempty"`
}
