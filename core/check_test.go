package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

func TestPrintCheckResult(t *testing.T) {
	// Test that printCheckResult doesn't panic with various inputs
	tests := []struct {
		name      string
		useEmojis bool
		result    schema.CheckResult
	}{
		{
			name: "all passed",
			result: schema.CheckResult{
				Passed:         true,
				FailedFlights:  []schema.CheckFailedFlight{},
				TotalFlights:   5,
				CheckedSignals: schema.AllCheckSignals,
				Thresholds: map[schema.CheckSignal]float64{
					schema.RiskSignal:   50.0,
					schema.PacingSignal: 25.0,
				},
				MaxValues: map[schema.CheckSignal]float64{
					schema.RiskSignal:   30.0,
					schema.PacingSignal: 12.0,
				},
				MaxValueFlights: map[schema.CheckSignal][]schema.CheckMaxValueFlight{
					schema.RiskSignal: {
						{FlightID: "fl-1", FlightName: "Brand Flight"},
						{FlightID: "fl-2", FlightName: "Retargeting Flight"},
					},
				},
				AvgValues: map[schema.CheckSignal]float64{
					schema.RiskSignal:   22.5,
					schema.PacingSignal: 8.0,
				},
			},
		},
		{
			name:      "all passed with emojis",
			useEmojis: true,
			result: schema.CheckResult{
				Passed:         true,
				FailedFlights:  []schema.CheckFailedFlight{},
				TotalFlights:   2,
				CheckedSignals: schema.AllCheckSignals,
				Thresholds: map[schema.CheckSignal]float64{
					schema.RiskSignal:   50.0,
					schema.PacingSignal: 25.0,
				},
				MaxValues: map[schema.CheckSignal]float64{
					schema.RiskSignal: 10.0,
				},
				AvgValues: map[schema.CheckSignal]float64{
					schema.RiskSignal: 10.0,
				},
			},
		},
		{
			name: "some failed",
			result: schema.CheckResult{
				Passed: false,
				FailedFlights: []schema.CheckFailedFlight{
					{
						FlightID:   "fl-1",
						FlightName: "Brand Flight",
						Signal:     schema.RiskSignal,
						Value:      75.5,
						Threshold:  50.0,
					},
				},
				TotalFlights:   5,
				CheckedSignals: schema.AllCheckSignals,
				Thresholds: map[schema.CheckSignal]float64{
					schema.RiskSignal:   50.0,
					schema.PacingSignal: 25.0,
				},
				MaxValues: map[schema.CheckSignal]float64{
					schema.RiskSignal:   75.5,
					schema.PacingSignal: 18.0,
				},
			},
		},
		{
			name:      "many failures truncate with emojis",
			useEmojis: true,
			result: schema.CheckResult{
				Passed: false,
				FailedFlights: []schema.CheckFailedFlight{
					{FlightID: "fl-1", Signal: schema.PacingSignal, Value: 90, Threshold: 25},
					{FlightID: "fl-2", Signal: schema.PacingSignal, Value: 80, Threshold: 25},
					{FlightID: "fl-3", Signal: schema.PacingSignal, Value: 70, Threshold: 25},
					{FlightID: "fl-4", Signal: schema.PacingSignal, Value: 60, Threshold: 25},
					{FlightID: "fl-5", Signal: schema.PacingSignal, Value: 50, Threshold: 25},
					{FlightID: "fl-6", Signal: schema.PacingSignal, Value: 40, Threshold: 25},
					{FlightID: "fl-7", Signal: schema.PacingSignal, Value: 30, Threshold: 25},
				},
				TotalFlights:   7,
				CheckedSignals: schema.AllCheckSignals,
				Thresholds: map[schema.CheckSignal]float64{
					schema.RiskSignal:   50.0,
					schema.PacingSignal: 25.0,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{
				WorkspacePath: "/ws/export.json",
				Now:           builderNow,
				UseEmojis:     tt.useEmojis,
			}

			// Just ensure it doesn't panic
			assert.NotPanics(t, func() {
				printCheckResult(&tt.result, cfg, time.Second)
			})
		})
	}
}
