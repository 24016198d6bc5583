package schema

// EnrichedRiskResult adds presentation data to a DeliveryRiskAssessment.
type EnrichedRiskResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	DeliveryRiskAssessment
}

// EnrichedOpportunity adds presentation data to an OpportunityScore.
type EnrichedOpportunity struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	OpportunityScore
}

// GetRiskLabel returns a plain text label for a risk or opportunity score.
func GetRiskLabel(score float64) string {
	switch {
	case score >= 70:
		return "Critical"
	case score >= 50:
		return "High"
	case score >= 30:
		return "Moderate"
	default:
		return "Low"
	}
}

// EnrichRiskResults adds rank and label to a list of risk assessments.
func EnrichRiskResults(assessments []DeliveryRiskAssessment) []EnrichedRiskResult {
	output := make([]EnrichedRiskResult, len(assessments))
	for i, a := range assessments {
		output[i] = EnrichedRiskResult{
			Rank:                   i + 1,
			Label:                  GetRiskLabel(a.RiskScore),
			DeliveryRiskAssessment: a,
		}
	}
	return output
}

// EnrichOpportunities adds rank and label to a list of opportunity scores.
func EnrichOpportunities(opps []OpportunityScore) []EnrichedOpportunity {
	output := make([]EnrichedOpportunity, len(opps))
	for i, o := range opps {
		output[i] = EnrichedOpportunity{
			Rank:             i + 1,
			Label:            GetRiskLabel(o.Score),
			OpportunityScore: o,
		}
	}
	return output
}
