package outwriter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintPacingResults outputs the budget pacing results, dispatching based on the output format configured.
func PrintPacingResults(results []schema.BudgetPacingAnalysis, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForPacing(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForPacing(w, results, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePacingTable(results, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writePacingTable generates and writes the human-readable table.
func writePacingTable(results []schema.BudgetPacingAnalysis, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Flight", "Budget", "Ideal", "Actual", "Variance", "Status"}
	if cfg.Detail {
		headers = append(headers, "Projected", "Days Left")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	alertCount := 0
	for i, r := range results {
		if r.Alert != nil {
			alertCount++
		}
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.FlightName, GetMaxTableNameWidth(cfg)),
			fmtFloat(r.Budget),
			fmtFloat(r.IdealSpend),
			fmtFloat(r.ActualSpend),
			formatSignedDelta(cfg, r.PaceVariance, "%"),
			pacingStatusLabel(r.Status, cfg),
		}
		if cfg.Detail {
			row = append(row,
				fmtFloat(r.ProjectedSpend),
				fmt.Sprintf(intFmt, r.DaysRemaining),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d flights by pacing variance (%d alerting)\n", len(results), alertCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}

// pacingStatusLabel colors the pacing status for table output.
func pacingStatusLabel(status schema.PacingStatus, cfg *contract.Config) string {
	label := schema.DisplayEnum(status)
	if !cfg.UseColors {
		return label
	}
	switch status {
	case schema.OnTrack:
		return color.New(color.FgGreen).Sprint(label)
	case schema.UnderPacing:
		return color.New(color.FgYellow).Sprint(label)
	case schema.OverPacing:
		return color.New(color.FgRed).Sprint(label)
	default:
		return label
	}
}

// PrintPredictionResults outputs the performance predictions, dispatching based on the output format configured.
func PrintPredictionResults(results []schema.PerformancePrediction, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForPredictions(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForPredictions(w, results, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionTable(results, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writePredictionTable generates and writes the human-readable table.
func writePredictionTable(results []schema.PerformancePrediction, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Flight", "Metric", "Current", "Projected", "Goal", "Trend"}
	if cfg.Detail {
		headers = append(headers, "Daily Rate", "Confidence")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	goalsAtRisk := 0
	for i, r := range results {
		goal := "-"
		if r.Goal > 0 {
			goal = fmtFloat(r.Goal)
			if r.ProjectedValue < r.Goal {
				goalsAtRisk++
			}
		}
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.FlightName, GetMaxTableNameWidth(cfg)),
			schema.DisplayEnum(r.Metric),
			fmtFloat(r.CurrentValue),
			fmtFloat(r.ProjectedValue),
			goal,
			trendLabel(r.Trend, cfg),
		}
		if cfg.Detail {
			row = append(row,
				fmtFloat(r.DailyRate),
				formatPercent(fmtFloat, r.Confidence),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d predictions (%d goals at risk)\n", len(results), goalsAtRisk); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}

// trendLabel colors the trend direction for table output.
func trendLabel(trend schema.TrendDirection, cfg *contract.Config) string {
	label := schema.DisplayEnum(trend)
	if !cfg.UseColors {
		return label
	}
	switch trend {
	case schema.GrowingTrend:
		return color.New(color.FgGreen).Sprint(label)
	case schema.DecliningTrend:
		return color.New(color.FgRed).Sprint(label)
	default:
		return label
	}
}

// PrintRiskResults outputs the delivery risk assessments, dispatching based on the output format configured.
func PrintRiskResults(results []schema.DeliveryRiskAssessment, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForRisk(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForRisk(w, results, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRiskTable(results, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeRiskTable generates and writes the human-readable table.
func writeRiskTable(results []schema.DeliveryRiskAssessment, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Flight", "Score", "Label", "Top Factors"}
	if cfg.Detail {
		for _, key := range schema.AllFactorKeys {
			headers = append(headers, schema.FactorName(key))
		}
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.FlightName, GetMaxTableNameWidth(cfg)),
			fmtFloat(r.RiskScore),
			riskLabel(r.RiskScore, cfg),
			formatTopFactors(&r),
		}
		if cfg.Detail {
			breakdown := r.Breakdown()
			for _, key := range schema.AllFactorKeys {
				row = append(row, fmtFloat(breakdown[key]))
			}
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	numCritical := 0
	for _, r := range results {
		if r.RiskLevel == schema.CriticalRisk || r.RiskLevel == schema.HighRisk {
			numCritical++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d flights by delivery risk (%d high or critical)\n", len(results), numCritical); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}

// riskLabel picks the colored or plain label depending on config.
func riskLabel(score float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetRiskColorLabel(score)
	}
	return schema.GetRiskLabel(score)
}

const topNFactors = 2

// formatTopFactors lists the highest weighted contributors to the risk score.
func formatTopFactors(a *schema.DeliveryRiskAssessment) string {
	if len(a.Factors) == 0 {
		return "Not applicable"
	}

	factors := make([]schema.RiskFactor, len(a.Factors))
	copy(factors, a.Factors)
	sort.Slice(factors, func(i, j int) bool {
		return factors[i].Weighted() > factors[j].Weighted()
	})

	var parts []string
	limit := min(len(factors), topNFactors)
	for i := range limit {
		parts = append(parts, factors[i].Name)
	}
	return strings.Join(parts, " > ")
}

// PrintOpportunityResults outputs the opportunity scores, dispatching based on the output format configured.
func PrintOpportunityResults(results []schema.OpportunityScore, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForOpportunities(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForOpportunities(w, results, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOpportunityTable(results, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeOpportunityTable generates and writes the human-readable table.
func writeOpportunityTable(results []schema.OpportunityScore, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Campaign", "Type", "Score", "Label", "Title"}
	if cfg.Detail {
		headers = append(headers, "Description")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.CampaignName, GetMaxTableNameWidth(cfg)),
			schema.DisplayEnum(r.Type),
			fmtFloat(r.Score),
			riskLabel(r.Score, cfg),
			r.Title,
		}
		if cfg.Detail {
			row = append(row, r.Description)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d opportunities\n", len(results)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}

// PrintAlertResults outputs the alert feed, dispatching based on the output format configured.
func PrintAlertResults(alerts []schema.PredictiveAlert, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, alerts)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForAlerts(w, alerts, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAlertTable(alerts, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeAlertTable generates and writes the human-readable table.
func writeAlertTable(alerts []schema.PredictiveAlert, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Severity", "Type", "Entity", "Message"}
	if cfg.Detail {
		headers = append(headers, "Recommendation")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	numCritical := 0
	for i, a := range alerts {
		if a.Severity == schema.CriticalSeverity {
			numCritical++
		}
		severity := schema.DisplayEnum(a.Severity)
		if cfg.UseColors {
			severity = contract.GetSeverityColorLabel(a.Severity)
		}
		row := []string{
			strconv.Itoa(i + 1),
			severity,
			schema.DisplayEnum(a.Type),
			contract.TruncateName(a.EntityName, GetMaxTableNameWidth(cfg)),
			a.Message,
		}
		if cfg.Detail {
			row = append(row, a.Recommendation)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d alerts (%d critical)\n", len(alerts), numCritical); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}
