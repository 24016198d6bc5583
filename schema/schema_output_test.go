package schema_test

import (
	"testing"

	"github.com/adlens/adlens/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetRiskLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"Critical Score Upper", 100.0, "Critical"},
		{"Critical Score Lower", 70.0, "Critical"},
		{"High Score Upper", 69.9, "High"},
		{"High Score Lower", 50.0, "High"},
		{"Moderate Score Upper", 49.9, "Moderate"},
		{"Moderate Score Lower", 30.0, "Moderate"},
		{"Low Score Upper", 29.9, "Low"},
		{"Low Score Lower", 0.0, "Low"},
		{"Negative Score", -10.0, "Low"}, // Edge case
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := schema.GetRiskLabel(tt.score)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestEnrichRiskResults(t *testing.T) {
	assessments := []schema.DeliveryRiskAssessment{
		{FlightID: "fl-1", FlightName: "Spring Launch", RiskScore: 82.0, RiskLevel: schema.CriticalRisk},
		{FlightID: "fl-2", FlightName: "Retargeting", RiskScore: 41.5, RiskLevel: schema.MediumRisk},
		{FlightID: "fl-3", FlightName: "Always On", RiskScore: 12.0, RiskLevel: schema.LowRisk},
	}

	enriched := schema.EnrichRiskResults(assessments)

	assert.Len(t, enriched, 3)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, "Critical", enriched[0].Label)
	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, "Moderate", enriched[1].Label)
	assert.Equal(t, 3, enriched[2].Rank)
	assert.Equal(t, "Low", enriched[2].Label)
	assert.Equal(t, "fl-1", enriched[0].FlightID)
}

func TestEnrichRiskResultsEmpty(t *testing.T) {
	assert.Empty(t, schema.EnrichRiskResults(nil))
}

func TestEnrichOpportunities(t *testing.T) {
	opps := []schema.OpportunityScore{
		{CampaignID: "c-1", Type: schema.BudgetReallocation, Score: 80},
		{CampaignID: "c-1", Type: schema.CreativeRefresh, Score: 55},
	}

	enriched := schema.EnrichOpportunities(opps)

	assert.Len(t, enriched, 2)
	assert.Equal(t, "Critical", enriched[0].Label)
	assert.Equal(t, "High", enriched[1].Label)
	assert.Equal(t, 2, enriched[1].Rank)
}
