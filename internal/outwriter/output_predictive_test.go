package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

func predictiveConfig() *contract.Config {
	return &contract.Config{
		Output:          schema.TextOut,
		Precision:       2,
		UseColors:       false,
		Width:           160,
		Workers:         2,
		SnapshotBackend: schema.SQLiteBackend,
	}
}

func TestWritePacingTable(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	results := []schema.BudgetPacingAnalysis{
		{
			FlightID:       "fl-1",
			FlightName:     "Spring Push",
			Budget:         10000,
			TotalDays:      20,
			DaysElapsed:    10,
			DaysRemaining:  10,
			IdealSpend:     5000,
			ActualSpend:    6500,
			PaceVariance:   30,
			ProjectedSpend: 13000,
			Status:         schema.OverPacing,
			Alert:          &schema.PredictiveAlert{ID: "al-1"},
		},
		{
			FlightID:     "fl-2",
			FlightName:   "Autumn Push",
			Budget:       5000,
			IdealSpend:   2500,
			ActualSpend:  2500,
			PaceVariance: 0,
			Status:       schema.OnTrack,
		},
	}

	cfg := predictiveConfig()
	cfg.Detail = true

	var buf bytes.Buffer
	err := writePacingTable(results, cfg, fmtFloat, intFmt, 10*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Spring Push")
	assert.Contains(t, output, "+30.00% ▲")
	assert.Contains(t, output, "Over Pacing")
	assert.Contains(t, output, "On Track")
	assert.Contains(t, output, "13000.00") // Projected column from Detail
	assert.Contains(t, output, "Showing top 2 flights by pacing variance (1 alerting)")
	assert.Contains(t, output, "Snapshot backend: sqlite")
}

func TestWriteCSVResultsForPacing(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	results := []schema.BudgetPacingAnalysis{
		{
			FlightID:     "fl-1",
			FlightName:   "Spring Push",
			Budget:       10000,
			PaceVariance: -12.5,
			Status:       schema.UnderPacing,
		},
	}

	var buf bytes.Buffer
	err := writeCSVResultsForPacing(&buf, results, fmtFloat, intFmt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "pace_variance")
	assert.Contains(t, lines[1], "fl-1")
	assert.Contains(t, lines[1], "-12.50")
	assert.Contains(t, lines[1], "under_pacing")
}

func TestWritePredictionTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	results := []schema.PerformancePrediction{
		{
			FlightID:       "fl-1",
			FlightName:     "Spring Push",
			Metric:         schema.ConversionsMetric,
			CurrentValue:   100,
			DailyRate:      10,
			ProjectedValue: 200,
			Goal:           500,
			Trend:          schema.GrowingTrend,
			Confidence:     0.8,
		},
		{
			FlightID:       "fl-2",
			FlightName:     "Autumn Push",
			Metric:         schema.SpendMetric,
			CurrentValue:   4000,
			ProjectedValue: 8000,
			Trend:          schema.StableTrend,
			Confidence:     0.5,
		},
	}

	cfg := predictiveConfig()
	cfg.Detail = true

	var buf bytes.Buffer
	err := writePredictionTable(results, cfg, fmtFloat, 10*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Conversions")
	assert.Contains(t, output, "Growing")
	assert.Contains(t, output, "80.00%") // Confidence column from Detail
	// Goal column falls back to a dash when no goal is set
	assert.Contains(t, output, "-")
	assert.Contains(t, output, "Showing 2 predictions (1 goals at risk)")
}

func TestWriteJSONResultsForPredictions(t *testing.T) {
	results := []schema.PerformancePrediction{
		{FlightID: "fl-1", Metric: schema.ClicksMetric, ProjectedValue: 1200},
	}

	var buf bytes.Buffer
	err := writeJSONResultsForPredictions(&buf, results)
	require.NoError(t, err)

	var parsed []map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, float64(1), parsed[0]["rank"])
	assert.Equal(t, "clicks", parsed[0]["metric"])
}

func TestFormatTopFactors(t *testing.T) {
	tests := []struct {
		name       string
		assessment *schema.DeliveryRiskAssessment
		expected   string
	}{
		{
			name: "ordered by weighted contribution",
			assessment: &schema.DeliveryRiskAssessment{
				Factors: []schema.RiskFactor{
					{Key: schema.FactorEngagement, Name: "Engagement", Score: 90, Weight: 0.15},
					{Key: schema.FactorBudgetPacing, Name: "Budget Pacing", Score: 80, Weight: 0.30},
					{Key: schema.FactorTimePressure, Name: "Time Pressure", Score: 20, Weight: 0.20},
				},
			},
			expected: "Budget Pacing > Engagement",
		},
		{
			name: "single factor",
			assessment: &schema.DeliveryRiskAssessment{
				Factors: []schema.RiskFactor{
					{Key: schema.FactorFlightStatus, Name: "Flight Status", Score: 100, Weight: 0.10},
				},
			},
			expected: "Flight Status",
		},
		{
			name:       "no factors",
			assessment: &schema.DeliveryRiskAssessment{},
			expected:   "Not applicable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatTopFactors(tt.assessment))
		})
	}
}

func TestWriteRiskTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	results := []schema.DeliveryRiskAssessment{
		{
			FlightID:   "fl-1",
			FlightName: "Risky Flight",
			RiskScore:  72,
			RiskLevel:  schema.CriticalRisk,
			Factors: []schema.RiskFactor{
				{Key: schema.FactorBudgetPacing, Name: "Budget Pacing", Score: 90, Weight: 0.30},
				{Key: schema.FactorDeliveryGap, Name: "Delivery vs Forecast", Score: 60, Weight: 0.25},
			},
		},
		{
			FlightID:   "fl-2",
			FlightName: "Calm Flight",
			RiskScore:  12,
			RiskLevel:  schema.LowRisk,
		},
	}

	cfg := predictiveConfig()
	cfg.Detail = true

	var buf bytes.Buffer
	err := writeRiskTable(results, cfg, fmtFloat, 10*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Risky Flight")
	assert.Contains(t, output, "Critical")
	assert.Contains(t, output, "Low")
	assert.Contains(t, output, "Budget Pacing > Delivery vs Forecast")
	assert.Contains(t, output, "Showing top 2 flights by delivery risk (1 high or critical)")
}

func TestWriteJSONResultsForRisk(t *testing.T) {
	results := []schema.DeliveryRiskAssessment{
		{FlightID: "fl-1", FlightName: "Risky Flight", RiskScore: 72, RiskLevel: schema.CriticalRisk},
		{FlightID: "fl-2", FlightName: "Calm Flight", RiskScore: 12, RiskLevel: schema.LowRisk},
	}

	var buf bytes.Buffer
	err := writeJSONResultsForRisk(&buf, results)
	require.NoError(t, err)

	var parsed []map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	assert.Equal(t, float64(1), parsed[0]["rank"])
	assert.Equal(t, "Critical", parsed[0]["label"])
	assert.Equal(t, float64(2), parsed[1]["rank"])
	assert.Equal(t, "Low", parsed[1]["label"])
}

func TestWriteCSVResultsForRisk(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	results := []schema.DeliveryRiskAssessment{
		{
			FlightID:   "fl-1",
			FlightName: "Risky Flight",
			RiskScore:  55,
			RiskLevel:  schema.HighRisk,
			Factors: []schema.RiskFactor{
				{Key: schema.FactorBudgetPacing, Name: "Budget Pacing", Score: 90, Weight: 0.30},
			},
		},
	}

	var buf bytes.Buffer
	err := writeCSVResultsForRisk(&buf, results, fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "risk_score")
	assert.Contains(t, lines[1], "55.00")
	assert.Contains(t, lines[1], "high")
	assert.Contains(t, lines[1], "Budget Pacing")
}

func TestWriteOpportunityTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	results := []schema.OpportunityScore{
		{
			CampaignID:   "cmp-1",
			CampaignName: "Brand Push",
			Type:         schema.BudgetReallocation,
			Score:        85,
			Title:        "Shift budget toward Search Brand",
			Description:  "Search Brand converts at 2x the campaign average",
		},
	}

	cfg := predictiveConfig()
	cfg.Detail = true

	var buf bytes.Buffer
	err := writeOpportunityTable(results, cfg, fmtFloat, 10*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Brand Push")
	assert.Contains(t, output, "Budget Reallocation")
	assert.Contains(t, output, "Shift budget toward Search Brand")
	assert.Contains(t, output, "converts at 2x") // Description column from Detail
	assert.Contains(t, output, "Showing top 1 opportunities")
}

func TestWriteJSONResultsForOpportunities(t *testing.T) {
	results := []schema.OpportunityScore{
		{CampaignID: "cmp-1", CampaignName: "Brand Push", Score: 85, Type: schema.AudienceExpansion},
	}

	var buf bytes.Buffer
	err := writeJSONResultsForOpportunities(&buf, results)
	require.NoError(t, err)

	var parsed []map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, float64(1), parsed[0]["rank"])
	assert.Equal(t, "Critical", parsed[0]["label"])
	assert.Equal(t, "audience_expansion", parsed[0]["type"])
}

func TestWriteAlertTable(t *testing.T) {
	alerts := []schema.PredictiveAlert{
		{
			ID:             "al-1",
			Type:           schema.PacingAlert,
			Severity:       schema.CriticalSeverity,
			Message:        "Projected to exceed budget by 40%",
			EntityID:       "fl-1",
			EntityName:     "Spring Push",
			Recommendation: "Reduce daily caps",
		},
		{
			ID:         "al-2",
			Type:       schema.PerformanceAlert,
			Severity:   schema.WarningSeverity,
			Message:    "Conversions trending below goal",
			EntityID:   "fl-2",
			EntityName: "Autumn Push",
		},
	}

	cfg := predictiveConfig()
	cfg.Detail = true

	var buf bytes.Buffer
	err := writeAlertTable(alerts, cfg, 10*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Spring Push")
	assert.Contains(t, output, "Critical")
	assert.Contains(t, output, "Warning")
	assert.Contains(t, output, "Reduce daily caps")
	assert.Contains(t, output, "Showing 2 alerts (1 critical)")
}

func TestWriteCSVResultsForAlerts(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	alerts := []schema.PredictiveAlert{
		{
			ID:         "al-1",
			Type:       schema.RiskAlert,
			Severity:   schema.CriticalSeverity,
			Message:    "Delivery risk is critical",
			EntityID:   "fl-1",
			EntityName: "Spring Push",
			Current:    72,
			Threshold:  70,
			Timestamp:  time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	err := writeCSVResultsForAlerts(&buf, alerts, fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "severity")
	assert.Contains(t, lines[1], "al-1")
	assert.Contains(t, lines[1], "critical")
	assert.Contains(t, lines[1], "2025-09-01T12:00:00Z")
}
