package schema

import "time"

// AnalysisRunRecord represents a row from the adlens_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID     int64
	Command        string
	WorkspaceName  string
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	FlightsScanned int32
	ConfigParams   *string
}

// FlightSignalRecord represents a row from the adlens_flight_signals table:
// the persisted per-flight outcome of one analysis run.
type FlightSignalRecord struct {
	AnalysisID     int64
	FlightID       string
	FlightName     string
	AnalysisTime   time.Time
	RiskScore      float64
	RiskLevel      string
	PaceVariance   float64
	PacingStatus   string
	ProjectedSpend float64
	AlertCount     int32
}

// AttributionRowRecord represents a row from the adlens_attribution_results
// table: one channel's credit under one model as computed by a recorded
// attribution run.
type AttributionRowRecord struct {
	AnalysisID  int64
	Model       string
	Channel     string
	ChannelType string
	Credit      float64
	Conversions float64
	Revenue     float64
	Cost        float64
	ROAS        float64
}
