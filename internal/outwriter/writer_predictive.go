package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// writeJSONResultsForPacing writes the budget pacing results in JSON format.
func writeJSONResultsForPacing(w io.Writer, results []schema.BudgetPacingAnalysis) error {
	type JSONPacingResult struct {
		Rank int `json:"rank"`
		schema.BudgetPacingAnalysis
	}

	output := make([]JSONPacingResult, len(results))
	for i, r := range results {
		output[i] = JSONPacingResult{
			Rank:                 i + 1,
			BudgetPacingAnalysis: r,
		}
	}
	return writeJSON(w, output)
}

// writeCSVResultsForPacing writes the budget pacing results in CSV format.
func writeCSVResultsForPacing(w io.Writer, results []schema.BudgetPacingAnalysis, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"flight_id",
		"flight",
		"budget",
		"total_days",
		"days_elapsed",
		"days_remaining",
		"ideal_spend",
		"actual_spend",
		"pace_variance",
		"projected_spend",
		"status",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.FlightID,
				r.FlightName,
				fmtFloat(r.Budget),
				fmt.Sprintf(intFmt, r.TotalDays),
				fmt.Sprintf(intFmt, r.DaysElapsed),
				fmt.Sprintf(intFmt, r.DaysRemaining),
				fmtFloat(r.IdealSpend),
				fmtFloat(r.ActualSpend),
				fmtFloat(r.PaceVariance),
				fmtFloat(r.ProjectedSpend),
				string(r.Status),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForPredictions writes the performance predictions in JSON format.
func writeJSONResultsForPredictions(w io.Writer, results []schema.PerformancePrediction) error {
	type JSONPredictionResult struct {
		Rank int `json:"rank"`
		schema.PerformancePrediction
	}

	output := make([]JSONPredictionResult, len(results))
	for i, r := range results {
		output[i] = JSONPredictionResult{
			Rank:                  i + 1,
			PerformancePrediction: r,
		}
	}
	return writeJSON(w, output)
}

// writeCSVResultsForPredictions writes the performance predictions in CSV format.
func writeCSVResultsForPredictions(w io.Writer, results []schema.PerformancePrediction, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"flight_id",
		"flight",
		"metric",
		"current_value",
		"daily_rate",
		"projected_value",
		"goal",
		"trend",
		"confidence",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.FlightID,
				r.FlightName,
				string(r.Metric),
				fmtFloat(r.CurrentValue),
				fmtFloat(r.DailyRate),
				fmtFloat(r.ProjectedValue),
				fmtFloat(r.Goal),
				string(r.Trend),
				fmtFloat(r.Confidence),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForRisk writes the delivery risk assessments in JSON format
// with rank and plain label added.
func writeJSONResultsForRisk(w io.Writer, results []schema.DeliveryRiskAssessment) error {
	return writeJSON(w, schema.EnrichRiskResults(results))
}

// writeCSVResultsForRisk writes the delivery risk assessments in CSV format.
func writeCSVResultsForRisk(w io.Writer, results []schema.DeliveryRiskAssessment, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"flight_id",
		"flight",
		"risk_score",
		"risk_level",
		"label",
		"factors",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range results {
			factorKeys := make([]schema.FactorKey, len(r.Factors))
			for j, f := range r.Factors {
				factorKeys[j] = f.Key
			}
			rec := []string{
				strconv.Itoa(i + 1),
				r.FlightID,
				r.FlightName,
				fmtFloat(r.RiskScore),
				string(r.RiskLevel),
				schema.GetRiskLabel(r.RiskScore),
				schema.FormatFactorNames(factorKeys),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForOpportunities writes the opportunity scores in JSON
// format with rank and plain label added.
func writeJSONResultsForOpportunities(w io.Writer, results []schema.OpportunityScore) error {
	return writeJSON(w, schema.EnrichOpportunities(results))
}

// writeCSVResultsForOpportunities writes the opportunity scores in CSV format.
func writeCSVResultsForOpportunities(w io.Writer, results []schema.OpportunityScore, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"campaign_id",
		"campaign",
		"flight_id",
		"type",
		"score",
		"label",
		"title",
		"description",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.CampaignID,
				r.CampaignName,
				r.FlightID,
				string(r.Type),
				fmtFloat(r.Score),
				schema.GetRiskLabel(r.Score),
				r.Title,
				r.Description,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCSVResultsForAlerts writes the alert feed in CSV format.
func writeCSVResultsForAlerts(w io.Writer, alerts []schema.PredictiveAlert, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"type",
		"severity",
		"entity_id",
		"entity",
		"metric",
		"current",
		"projected",
		"threshold",
		"message",
		"recommendation",
		"timestamp",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, a := range alerts {
			rec := []string{
				strconv.Itoa(i + 1),
				a.ID,
				string(a.Type),
				string(a.Severity),
				a.EntityID,
				a.EntityName,
				a.Metric,
				fmtFloat(a.Current),
				fmtFloat(a.Projected),
				fmtFloat(a.Threshold),
				strings.ReplaceAll(a.Message, "\n", " "),
				a.Recommendation,
				a.Timestamp.Format(contract.DateTimeFormat),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
