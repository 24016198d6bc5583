package core

import (
	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// FlightSignalsBuilder assembles the per-flight predictive signals.
type FlightSignalsBuilder struct {
	cfg     *contract.Config
	flight  schema.Flight
	signals schema.FlightSignals
}

// NewFlightSignalsBuilder is the starting point for building flight signals.
func NewFlightSignalsBuilder(cfg *contract.Config, f schema.Flight) *FlightSignalsBuilder {
	return &FlightSignalsBuilder{
		cfg:     cfg,
		flight:  f,
		signals: schema.FlightSignals{Flight: f},
	}
}

// ComputePacing evaluates budget pacing for the flight.
func (b *FlightSignalsBuilder) ComputePacing() *FlightSignalsBuilder {
	b.signals.Pacing = AnalyzeBudgetPacing(&b.flight, b.cfg.Now, b.cfg.Engine)
	return b
}

// ComputeRisk scores delivery risk for the flight.
func (b *FlightSignalsBuilder) ComputeRisk() *FlightSignalsBuilder {
	b.signals.Risk = AssessDeliveryRisk(&b.flight, b.cfg.Now, b.cfg.Engine)
	return b
}

// ComputePredictions forecasts every metric the flight carries a goal for.
func (b *FlightSignalsBuilder) ComputePredictions() *FlightSignalsBuilder {
	for _, metric := range schema.AllPredictionMetrics {
		if goalMetricValue(&b.flight, metric) <= 0 {
			continue
		}
		if p := PredictPerformance(&b.flight, metric, b.cfg.Now, b.cfg.Engine); p != nil {
			b.signals.Predictions = append(b.signals.Predictions, *p)
		}
	}
	return b
}

// Build finalizes the construction and returns the completed signals object.
func (b *FlightSignalsBuilder) Build() schema.FlightSignals {
	return b.signals
}
