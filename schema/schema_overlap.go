package schema

// OverlapMatrix is a symmetric pairwise overlap estimate for a segment set.
// Values[i][j] == Values[j][i] and the diagonal is exactly 1.0.
type OverlapMatrix struct {
	SegmentIDs   []string    `json:"segmentIds"`
	SegmentNames []string    `json:"segmentNames"`
	Values       [][]float64 `json:"values"`
}

// At returns the overlap for a pair of matrix positions.
func (m *OverlapMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// UniqueReachEstimate is the deduplicated audience size of a segment set.
// The estimate accumulates marginal new reach segment by segment, so it
// depends on segment order; it is an approximation of dedup, not an exact
// inclusion-exclusion count. Total is floored at the largest individual
// reach and never exceeds SumIndividual.
type UniqueReachEstimate struct {
	Total         int64    `json:"total"`
	SumIndividual int64    `json:"sumIndividual"`
	MaxIndividual int64    `json:"maxIndividual"`
	DedupRate     float64  `json:"dedupRate"`
	SegmentOrder  []string `json:"segmentOrder"`
}

// SegmentPerformance is the accumulated performance attributed to one
// segment across all placements that target it. Placement metrics are
// split equally among the placement's segments before accumulation.
type SegmentPerformance struct {
	SegmentID   string  `json:"segmentId"`
	SegmentName string  `json:"segmentName"`
	Placements  int     `json:"placements"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Conversions float64 `json:"conversions"`
	Spend       float64 `json:"spend"`
	CTR         float64 `json:"ctr"`
	CVR         float64 `json:"cvr"`
	CPA         float64 `json:"cpa"`
	CPM         float64 `json:"cpm"`
	ROAS        float64 `json:"roas"`
}

// LookalikeMatch is a library segment scored for similarity to a base
// segment.
type LookalikeMatch struct {
	Segment Segment  `json:"segment"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// ExpansionGoals are the targets an audience plan is trying to hit.
// Zero values mean the goal is not set.
type ExpansionGoals struct {
	TargetReach       int64   `json:"targetReach,omitempty"`
	TargetCPA         float64 `json:"targetCpa,omitempty"`
	TargetCVR         float64 `json:"targetCvr,omitempty"`
	TargetConversions float64 `json:"targetConversions,omitempty"`
}

// ExpansionSnapshot is the current observed position against those goals.
type ExpansionSnapshot struct {
	CurrentReach         int64   `json:"currentReach"`
	CPA                  float64 `json:"cpa"`
	CVR                  float64 `json:"cvr"`
	ProjectedConversions float64 `json:"projectedConversions"`
}

// ExpansionRecommendation is one prioritized suggestion for closing a gap
// between goals and the current position.
type ExpansionRecommendation struct {
	Priority  Priority  `json:"priority"`
	Reason    string    `json:"reason"`
	Suggested []Segment `json:"suggested"`
	Impact    string    `json:"impact"`
}
