// Package schema has the campaign data model, enums and result records for all parts of adlens.
package schema

// FlightSignals bundles the predictive outputs for one flight produced by
// a single analysis pass: pacing against budget, weighted delivery risk,
// and per-metric projections. Absent members mean the flight lacked the
// data for that computation.
type FlightSignals struct {
	Flight      Flight                  `json:"flight"`
	Pacing      *BudgetPacingAnalysis   `json:"pacing,omitempty"`
	Risk        *DeliveryRiskAssessment `json:"risk,omitempty"`
	Predictions []PerformancePrediction `json:"predictions,omitempty"`
}

// AlertCount returns how many alerts this flight's signals carry.
func (s *FlightSignals) AlertCount() int {
	n := 0
	if s.Pacing != nil && s.Pacing.Alert != nil {
		n++
	}
	if s.Risk != nil && s.Risk.Alert != nil {
		n++
	}
	for _, p := range s.Predictions {
		if p.Alert != nil {
			n++
		}
	}
	return n
}

// Alerts returns the alerts embedded in this flight's signals.
func (s *FlightSignals) Alerts() []PredictiveAlert {
	var out []PredictiveAlert
	if s.Pacing != nil && s.Pacing.Alert != nil {
		out = append(out, *s.Pacing.Alert)
	}
	if s.Risk != nil && s.Risk.Alert != nil {
		out = append(out, *s.Risk.Alert)
	}
	for _, p := range s.Predictions {
		if p.Alert != nil {
			out = append(out, *p.Alert)
		}
	}
	return out
}
