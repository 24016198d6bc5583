package schema

// MetricsFactor describes one risk factor for display purposes.
type MetricsFactor struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

// MetricsModel describes one attribution model for display purposes.
type MetricsModel struct {
	Name    string `json:"name"`
	Rule    string `json:"rule"`
	Default bool   `json:"default,omitempty"` // Only used for JSON output
}

// MetricsRenderModel contains all processed data needed for displaying the
// scoring methodology: the risk factor table and the attribution models.
type MetricsRenderModel struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Factors     []MetricsFactor `json:"factors"`
	Formula     string          `json:"formula"`
	Models      []MetricsModel  `json:"models"`
}
