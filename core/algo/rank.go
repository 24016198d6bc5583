package algo

import (
	"math"
	"sort"

	"github.com/adlens/adlens/schema"
)

// RankRiskResults sorts risk assessments by score in descending order and
// returns the top 'limit' entries. If limit is greater than the number of
// assessments, all are returned in sorted order.
func RankRiskResults(assessments []schema.DeliveryRiskAssessment, limit int) []schema.DeliveryRiskAssessment {
	sort.Slice(assessments, func(i, j int) bool {
		if assessments[i].RiskScore != assessments[j].RiskScore {
			return assessments[i].RiskScore > assessments[j].RiskScore
		}
		return assessments[i].FlightID < assessments[j].FlightID
	})
	if len(assessments) > limit {
		return assessments[:limit]
	}
	return assessments
}

// RankOpportunities sorts opportunity scores in descending order and
// returns the top 'limit' entries.
func RankOpportunities(opps []schema.OpportunityScore, limit int) []schema.OpportunityScore {
	sort.Slice(opps, func(i, j int) bool {
		if opps[i].Score != opps[j].Score {
			return opps[i].Score > opps[j].Score
		}
		return opps[i].CampaignID < opps[j].CampaignID
	})
	if len(opps) > limit {
		return opps[:limit]
	}
	return opps
}

// RankPacingResults sorts pacing analyses by absolute pace variance in
// descending order, so the furthest-off-pace flights come first, and
// returns the top 'limit' entries.
func RankPacingResults(analyses []schema.BudgetPacingAnalysis, limit int) []schema.BudgetPacingAnalysis {
	sort.Slice(analyses, func(i, j int) bool {
		vi, vj := math.Abs(analyses[i].PaceVariance), math.Abs(analyses[j].PaceVariance)
		if vi != vj {
			return vi > vj
		}
		return analyses[i].FlightID < analyses[j].FlightID
	})
	if len(analyses) > limit {
		return analyses[:limit]
	}
	return analyses
}

// RankLookalikes sorts lookalike matches by score in descending order,
// breaking ties by segment ID, and returns the top 'limit' entries.
func RankLookalikes(matches []schema.LookalikeMatch, limit int) []schema.LookalikeMatch {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Segment.ID < matches[j].Segment.ID
	})
	if len(matches) > limit {
		return matches[:limit]
	}
	return matches
}

// SortAlerts orders alerts by severity (critical first), then newest
// first, then entity name for a stable order.
func SortAlerts(alerts []schema.PredictiveAlert) {
	sort.Slice(alerts, func(i, j int) bool {
		ri, rj := schema.SeverityRank(alerts[i].Severity), schema.SeverityRank(alerts[j].Severity)
		if ri != rj {
			return ri < rj
		}
		if !alerts[i].Timestamp.Equal(alerts[j].Timestamp) {
			return alerts[i].Timestamp.After(alerts[j].Timestamp)
		}
		return alerts[i].EntityName < alerts[j].EntityName
	})
}

// SortRecommendations orders expansion recommendations by priority,
// highest first, keeping the original order within a priority band.
func SortRecommendations(recs []schema.ExpansionRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return schema.PriorityRank(recs[i].Priority) < schema.PriorityRank(recs[j].Priority)
	})
}
