package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// PrintMetricsReport displays the workspace summary together with the scoring
// methodology reference (risk factor weights and attribution models).
func PrintMetricsReport(metrics *schema.WorkspaceMetrics, cfg *contract.Config, duration time.Duration) error {
	// Build the complete render model with all processed data
	renderModel := buildMetricsRenderModel(cfg)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONMetrics(w, metrics, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMetrics(w, metrics, renderModel)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printMetricsText(w, metrics, renderModel, cfg, duration)
		}, "Wrote text")
	}
}

// printMetricsText displays metrics in human-readable text format.
func printMetricsText(w io.Writer, metrics *schema.WorkspaceMetrics, renderModel *schema.MetricsRenderModel, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	workspaceTitle := "Workspace Summary"
	methodologyTitle := renderModel.Title
	if cfg.UseEmojis {
		workspaceTitle = "🗂️  " + workspaceTitle
		methodologyTitle = "📐 " + methodologyTitle
	}

	if _, err := fmt.Fprintf(w, "%s\n", workspaceTitle); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "=================\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Workspace: %s\n", metrics.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Campaigns: %d, Flights: %d (%d active, %d with delivery), Placements: %d\n", metrics.Campaigns, metrics.Flights, metrics.ActiveFlights, metrics.FlightsWithData, metrics.Placements); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Paths: %d (%d touchpoints), Experiments: %d, Segments: %d\n", metrics.Paths, metrics.Touchpoints, metrics.Experiments, metrics.Segments); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Channels: %s\n", strings.Join(metrics.Channels, ", ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Budget: %s, Spend: %s, Revenue: %s\n", fmtFloat(metrics.TotalBudget), fmtFloat(metrics.TotalSpend), fmtFloat(metrics.TotalRevenue)); err != nil {
		return err
	}
	if !metrics.EarliestStart.IsZero() && !metrics.LatestEnd.IsZero() {
		if _, err := fmt.Fprintf(w, "Window: %s → %s\n", metrics.EarliestStart.Format(time.DateOnly), metrics.LatestEnd.Format(time.DateOnly)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", methodologyTitle); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", renderModel.Description); err != nil {
		return err
	}
	for _, factor := range renderModel.Factors {
		if _, err := fmt.Fprintf(w, "   %s (%.2f): %s\n", factor.Name, factor.Weight, factor.Description); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "   Formula: Score = %s\n\n", renderModel.Formula); err != nil {
		return err
	}

	modelNames := make([]string, len(renderModel.Models))
	for i, m := range renderModel.Models {
		modelNames[i] = m.Name
		if m.Default {
			modelNames[i] += " (default)"
		}
	}
	if _, err := fmt.Fprintf(w, "Attribution models: %s\n", strings.Join(modelNames, ", ")); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers.\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// buildMetricsRenderModel constructs the complete render model with all processed data.
func buildMetricsRenderModel(cfg *contract.Config) *schema.MetricsRenderModel {
	weights := cfg.Engine.RiskWeights

	factors := make([]schema.MetricsFactor, 0, len(schema.AllFactorKeys))
	for _, key := range schema.AllFactorKeys {
		factors = append(factors, schema.MetricsFactor{
			Key:         string(key),
			Name:        schema.FactorName(key),
			Description: schema.FactorDescription(key),
			Weight:      weights[key],
		})
	}

	models := make([]schema.MetricsModel, 0, len(schema.AllAttributionModels))
	for _, m := range schema.AllAttributionModels {
		models = append(models, schema.MetricsModel{
			Name:    string(m),
			Rule:    attributionModelRule(m),
			Default: m == cfg.Model,
		})
	}

	return &schema.MetricsRenderModel{
		Title:       "Delivery Risk Factors",
		Description: "Risk score = weighted sum of factor scores, each in [0,100]",
		Factors:     factors,
		Formula:     formatWeights(weights),
		Models:      models,
	}
}

// attributionModelRule states how each model splits conversion credit.
func attributionModelRule(m schema.AttributionModel) string {
	switch m {
	case schema.FirstTouchModel:
		return "All credit to the first touchpoint"
	case schema.LastTouchModel:
		return "All credit to the last touchpoint"
	case schema.LinearModel:
		return "Equal credit across all touchpoints"
	case schema.TimeDecayModel:
		return "Exponential decay favoring touchpoints close to conversion"
	case schema.PositionBasedModel:
		return "40% first, 40% last, 20% spread across the middle"
	default:
		return ""
	}
}

// formatWeights formats weights for display in formulas.
func formatWeights(weights map[schema.FactorKey]float64) string {
	var parts []string
	for _, key := range schema.AllFactorKeys {
		if weight, ok := weights[key]; ok && weight > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", weight, string(key)))
		}
	}
	return strings.Join(parts, "+")
}
