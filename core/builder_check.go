package core

import (
	"context"
	"math"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// CheckResultBuilder builds the check result using a builder pattern.
type CheckResultBuilder struct {
	ctx             context.Context
	cfg             *contract.Config
	source          contract.WorkspaceSource
	mgr             contract.StoreManager
	signals         []schema.FlightSignals
	maxValues       map[schema.CheckSignal]float64
	maxValueFlights map[schema.CheckSignal][]schema.CheckMaxValueFlight
	avgValues       map[schema.CheckSignal]float64
	failedFlights   []schema.CheckFailedFlight
	result          *schema.CheckResult
}

// NewCheckResultBuilder creates a new builder for check results.
func NewCheckResultBuilder(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) *CheckResultBuilder {
	return &CheckResultBuilder{
		ctx:    ctx,
		cfg:    cfg,
		source: source,
		mgr:    mgr,
	}
}

// RunAnalysis computes the per-flight signals the policy gates evaluate. The
// standard report header is suppressed; check prints its own compact output.
func (b *CheckResultBuilder) RunAnalysis() (*CheckResultBuilder, error) {
	report, err := runPredictiveAnalysis(WithSuppressHeader(b.ctx), b.cfg, b.source, b.mgr, "check")
	if err != nil {
		return nil, err
	}
	b.signals = report.Signals
	return b, nil
}

// ComputeMetrics calculates max and average values per signal and identifies
// the flights that exceed their thresholds.
func (b *CheckResultBuilder) ComputeMetrics() *CheckResultBuilder {
	b.maxValues = make(map[schema.CheckSignal]float64)
	b.maxValueFlights = make(map[schema.CheckSignal][]schema.CheckMaxValueFlight)
	b.avgValues = make(map[schema.CheckSignal]float64)

	for _, signal := range schema.AllCheckSignals {
		maxValue := 0.0
		var flightsWithMax []schema.CheckMaxValueFlight
		sumValue := 0.0
		flightCount := 0

		for i := range b.signals {
			value, ok := signalValue(&b.signals[i], signal)
			if !ok {
				continue
			}
			sumValue += value
			flightCount++
			if value > maxValue {
				maxValue = value
				flightsWithMax = []schema.CheckMaxValueFlight{{
					FlightID:   b.signals[i].Flight.ID,
					FlightName: b.signals[i].Flight.Name,
				}}
			} else if value == maxValue && maxValue > 0 {
				// Include flights that tie for the max value
				flightsWithMax = append(flightsWithMax, schema.CheckMaxValueFlight{
					FlightID:   b.signals[i].Flight.ID,
					FlightName: b.signals[i].Flight.Name,
				})
			}
		}

		b.maxValues[signal] = maxValue
		b.maxValueFlights[signal] = flightsWithMax
		if flightCount > 0 {
			b.avgValues[signal] = sumValue / float64(flightCount)
		}
	}

	// Check all flights against thresholds for all signals
	b.failedFlights = []schema.CheckFailedFlight{}
	for i := range b.signals {
		for _, signal := range schema.AllCheckSignals {
			value, ok := signalValue(&b.signals[i], signal)
			if !ok {
				continue
			}
			threshold := b.cfg.CheckThresholds[signal]
			if value > threshold {
				b.failedFlights = append(b.failedFlights, schema.CheckFailedFlight{
					FlightID:   b.signals[i].Flight.ID,
					FlightName: b.signals[i].Flight.Name,
					Signal:     signal,
					Value:      value,
					Threshold:  threshold,
				})
			}
		}
	}

	return b
}

// BuildResult constructs the final CheckResult.
func (b *CheckResultBuilder) BuildResult() *CheckResultBuilder {
	b.result = &schema.CheckResult{
		Passed:          len(b.failedFlights) == 0,
		FailedFlights:   b.failedFlights,
		TotalFlights:    len(b.signals),
		CheckedSignals:  schema.AllCheckSignals,
		Thresholds:      b.cfg.CheckThresholds,
		MaxValues:       b.maxValues,
		MaxValueFlights: b.maxValueFlights,
		AvgValues:       b.avgValues,
	}
	return b
}

// GetResult returns the built CheckResult.
func (b *CheckResultBuilder) GetResult() *schema.CheckResult {
	return b.result
}

// signalValue extracts the gated value for one signal from a flight's
// computed signals. Pacing gates on the variance magnitude, so under and
// over delivery both count against the threshold.
func signalValue(s *schema.FlightSignals, signal schema.CheckSignal) (float64, bool) {
	switch signal {
	case schema.RiskSignal:
		if s.Risk == nil {
			return 0, false
		}
		return s.Risk.RiskScore, true
	case schema.PacingSignal:
		if s.Pacing == nil {
			return 0, false
		}
		return math.Abs(s.Pacing.PaceVariance), true
	default:
		return 0, false
	}
}
