package schema

import "time"

// PredictiveAlert is a transient signal produced by the predictive
// functions. Alerts are never persisted by the analytics core; callers
// decide what to render or route.
type PredictiveAlert struct {
	ID             string        `json:"id"`
	Type           AlertType     `json:"type"`
	Severity       AlertSeverity `json:"severity"`
	Message        string        `json:"message"`
	EntityID       string        `json:"entityId"`
	EntityName     string        `json:"entityName"`
	Metric         string        `json:"metric,omitempty"`
	Current        float64       `json:"current,omitempty"`
	Projected      float64       `json:"projected,omitempty"`
	Threshold      float64       `json:"threshold,omitempty"`
	Impact         string        `json:"impact,omitempty"`
	Recommendation string        `json:"recommendation,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}

// BudgetPacingAnalysis describes how a flight's spend tracks the linear
// ideal. PaceVariance is a percentage; ProjectedSpend extrapolates the
// observed daily rate across the full flight, capped by the engine's
// spend-cap ratio.
type BudgetPacingAnalysis struct {
	FlightID       string           `json:"flightId"`
	FlightName     string           `json:"flightName"`
	Budget         float64          `json:"budget"`
	TotalDays      int              `json:"totalDays"`
	DaysElapsed    int              `json:"daysElapsed"`
	DaysRemaining  int              `json:"daysRemaining"`
	IdealSpend     float64          `json:"idealSpend"`
	ActualSpend    float64          `json:"actualSpend"`
	PaceVariance   float64          `json:"paceVariance"`
	ProjectedSpend float64          `json:"projectedSpend"`
	Status         PacingStatus     `json:"status"`
	Alert          *PredictiveAlert `json:"alert,omitempty"`
}

// PerformancePrediction is a linear projection of one flight metric to the
// end of the flight. Confidence ramps linearly over the first week of
// observed data.
type PerformancePrediction struct {
	FlightID       string           `json:"flightId"`
	FlightName     string           `json:"flightName"`
	Metric         PredictionMetric `json:"metric"`
	CurrentValue   float64          `json:"currentValue"`
	DailyRate      float64          `json:"dailyRate"`
	ProjectedValue float64          `json:"projectedValue"`
	Goal           float64          `json:"goal,omitempty"`
	Trend          TrendDirection   `json:"trend"`
	Confidence     float64          `json:"confidence"`
	Alert          *PredictiveAlert `json:"alert,omitempty"`
}

// RiskFactor is one weighted contributor to a delivery risk score.
type RiskFactor struct {
	Key    FactorKey `json:"key"`
	Name   string    `json:"name"`
	Score  float64   `json:"score"`
	Weight float64   `json:"weight"`
}

// Weighted returns the factor's contribution to the overall score.
func (f RiskFactor) Weighted() float64 {
	return f.Score * f.Weight
}

// DeliveryRiskAssessment is the weighted-factor risk verdict for a flight.
// RiskScore stays in [0,100]; factors missing their inputs are absent from
// Factors and contribute nothing.
type DeliveryRiskAssessment struct {
	FlightID   string           `json:"flightId"`
	FlightName string           `json:"flightName"`
	RiskScore  float64          `json:"riskScore"`
	RiskLevel  RiskLevel        `json:"riskLevel"`
	Factors    []RiskFactor     `json:"factors"`
	Alert      *PredictiveAlert `json:"alert,omitempty"`
}

// Breakdown returns the factor scores keyed for tabular rendering.
func (a *DeliveryRiskAssessment) Breakdown() map[FactorKey]float64 {
	out := make(map[FactorKey]float64, len(a.Factors))
	for _, f := range a.Factors {
		out[f.Key] = f.Score
	}
	return out
}

// OpportunityScore is a heuristic improvement suggestion for a campaign or
// one of its flights.
type OpportunityScore struct {
	CampaignID   string           `json:"campaignId"`
	CampaignName string           `json:"campaignName"`
	FlightID     string           `json:"flightId,omitempty"`
	FlightName   string           `json:"flightName,omitempty"`
	Type         OpportunityType  `json:"type"`
	Score        float64          `json:"score"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Impact       string           `json:"impact,omitempty"`
	Alert        *PredictiveAlert `json:"alert,omitempty"`
}
