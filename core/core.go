// Package core has core logic for attribution, incrementality, prediction
// and audience overlap analysis.
package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/adlens/adlens/core/agg"
	"github.com/adlens/adlens/core/algo"
	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/internal/outwriter"
	"github.com/adlens/adlens/schema"
)

// ExecutorFunc is the shared shape of every command entry point, so the CLI
// layer can wire commands to the core uniformly.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error

// GetAttributionResults credits conversions to channels under the configured
// model and returns the report without rendering it, so embedders like the
// MCP server can serialize the results themselves.
func GetAttributionResults(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) (*schema.AttributionReport, time.Duration, error) {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	// --- 0. Begin Analysis Tracking (if configured) ---
	var analysisID int64
	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	if analysisStore != nil {
		configParams := map[string]any{
			"model":        string(cfg.Model),
			"all_models":   cfg.AllModels,
			"workspace":    cfg.WorkspacePath,
			"result_limit": cfg.ResultLimit,
		}
		var err error
		analysisID, err = analysisStore.BeginAnalysisRun(time.Now(), "attribution", contract.WorkspaceLabel(cfg.WorkspacePath), configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
			analysisID = 0
		}
	}

	key := generateSnapshotKey(ctx, cfg, source, "attribution", string(cfg.Model), strconv.FormatBool(cfg.AllModels))
	report, err := cachedReport(cfg, mgr, key, func() (*schema.AttributionReport, error) {
		ws, err := loadWorkspace(ctx, cfg, source)
		if err != nil {
			return nil, err
		}
		return buildAttributionReport(cfg, ws)
	})
	if err != nil {
		return nil, 0, err
	}

	// --- 2. End Analysis Tracking (full ranking, before the render limit) ---
	if analysisStore != nil && analysisID > 0 {
		if err := analysisStore.RecordAttributionRows(analysisID, cfg.Model, report.Results); err != nil {
			contract.LogWarn("Analysis tracking failed for RecordAttributionRows", err)
		}
		// Attribution scans paths, not flights, so the flight count stays zero.
		if err := analysisStore.EndAnalysisRun(analysisID, time.Now(), 0); err != nil {
			contract.LogWarn("Failed to finalize analysis tracking", err)
		}
	}

	// Snapshots store the full ranking; the result limit applies at render time.
	if len(report.Results) > cfg.ResultLimit {
		report.Results = report.Results[:cfg.ResultLimit]
	}

	return report, time.Since(start), nil
}

// ExecuteAttribution credits conversions to channels under the configured
// model, optionally alongside a side-by-side run of every model.
func ExecuteAttribution(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error {
	report, duration, err := GetAttributionResults(ctx, cfg, source, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintAttributionReport(report, cfg, duration)
}

func buildAttributionReport(cfg *contract.Config, ws *schema.Workspace) (*schema.AttributionReport, error) {
	results, err := CalculateAttribution(ws.Paths, cfg.Model, cfg.Engine)
	if err != nil {
		return nil, err
	}
	report := &schema.AttributionReport{Model: cfg.Model, Results: results}

	if cfg.AllModels {
		comparison, err := CompareModels(ws.Paths, cfg.Engine)
		if err != nil {
			return nil, err
		}
		report.Comparison = comparison
	}
	return report, nil
}

// ExecuteCompare diffs channel credit between two attribution models and
// reports which channels gain or lose when switching.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, _ contract.StoreManager) error {
	start := time.Now()

	if !cfg.CompareMode {
		return errors.New("compare requires --base-model")
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogCompareHeader(cfg)
	}

	ws, err := loadWorkspace(ctx, cfg, source)
	if err != nil {
		return err
	}

	baseResults, err := CalculateAttribution(ws.Paths, cfg.BaseModel, cfg.Engine)
	if err != nil {
		return err
	}
	targetResults, err := CalculateAttribution(ws.Paths, cfg.TargetModel, cfg.Engine)
	if err != nil {
		return err
	}

	result := compareAttributionModels(baseResults, targetResults, cfg.BaseModel, cfg.TargetModel, cfg.ResultLimit)

	duration := time.Since(start)
	return outwriter.PrintComparisonResults(result, cfg, duration)
}

// GetLiftResults evaluates every holdout experiment in the workspace and
// returns the incrementality results without rendering them.
func GetLiftResults(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, _ contract.StoreManager) ([]schema.IncrementalityResult, time.Duration, error) {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	ws, err := loadWorkspace(ctx, cfg, source)
	if err != nil {
		return nil, 0, err
	}

	results, err := CalculateAllIncrementality(ws.Experiments, cfg.Engine)
	if err != nil {
		return nil, 0, err
	}
	if len(results) > cfg.ResultLimit {
		results = results[:cfg.ResultLimit]
	}

	return results, time.Since(start), nil
}

// ExecuteLift evaluates every holdout experiment in the workspace and
// reports incremental lift with its statistical significance.
func ExecuteLift(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error {
	results, duration, err := GetLiftResults(ctx, cfg, source, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintLiftReport(&schema.LiftReport{Results: results}, cfg, duration)
}

// ExecutePacing reports budget pacing for every flight, worst variance first.
func ExecutePacing(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error {
	start := time.Now()

	report, err := runPredictiveAnalysis(ctx, cfg, source, mgr, "pacing")
	if err != nil {
		return err
	}

	var analyses []schema.BudgetPacingAnalysis
	for i := range report.Signals {
		if report.Signals[i].Pacing != nil {
			analyses = append(analyses, *report.Signals[i].Pacing)
		}
	}
	ranked := algo.RankPacingResults(analyses, cfg.ResultLimit)

	duration := time.Since(start)
	return outwriter.PrintPacingResults(ranked, cfg, duration)
}

// ExecuteForecast projects end-of-flight performance for every flight, or
// renders a day-by-day spend curve when a single flight is requested.
func ExecuteForecast(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error {
	start := time.Now()

	report, err := runPredictiveAnalysis(ctx, cfg, source, mgr, "forecast")
	if err != nil {
		return err
	}

	if cfg.FlightFilter == "" {
		predictions := collectPredictions(report.Signals, cfg.ResultLimit)
		duration := time.Since(start)
		return outwriter.PrintPredictionResults(predictions, cfg, duration)
	}

	signals := findFlightSignals(report.Signals, cfg.FlightFilter)
	if signals == nil {
		return fmt.Errorf("flight %q not found in workspace", cfg.FlightFilter)
	}
	curve := BuildSpendCurve(&signals.Flight, cfg.Now, cfg.CurvePoints, cfg.CurveWindow, cfg.Engine)
	if curve == nil {
		return fmt.Errorf("flight %q is missing the dates or delivery data a spend curve needs", cfg.FlightFilter)
	}

	duration := time.Since(start)
	return outwriter.PrintSpendCurve(curve, cfg, duration)
}

// GetRiskResults scores delivery risk for every flight and returns the
// ranked assessments without rendering them.
func GetRiskResults(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) ([]schema.DeliveryRiskAssessment, time.Duration, error) {
	start := time.Now()

	report, err := runPredictiveAnalysis(ctx, cfg, source, mgr, "risk")
	if err != nil {
		return nil, 0, err
	}

	var assessments []schema.DeliveryRiskAssessment
	for i := range report.Signals {
		if report.Signals[i].Risk != nil {
			assessments = append(assessments, *report.Signals[i].Risk)
		}
	}
	ranked := algo.RankRiskResults(assessments, cfg.ResultLimit)

	return ranked, time.Since(start), nil
}

// ExecuteRisk scores delivery risk for every flight, riskiest first.
func ExecuteRisk(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error {
	ranked, duration, err := GetRiskResults(ctx, cfg, source, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintRiskResults(ranked, cfg, duration)
}

// ExecuteOpportunities surfaces scored optimization openings per campaign.
func ExecuteOpportunities(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error {
	start := time.Now()

	report, err := runPredictiveAnalysis(ctx, cfg, source, mgr, "opportunities")
	if err != nil {
		return err
	}
	ranked := algo.RankOpportunities(report.Opportunities, cfg.ResultLimit)

	duration := time.Since(start)
	return outwriter.PrintOpportunityResults(ranked, cfg, duration)
}

// ExecuteAlerts prints the combined alert feed, most severe first.
func ExecuteAlerts(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error {
	start := time.Now()

	report, err := runPredictiveAnalysis(ctx, cfg, source, mgr, "alerts")
	if err != nil {
		return err
	}

	alerts := report.Alerts
	if len(alerts) > cfg.ResultLimit {
		alerts = alerts[:cfg.ResultLimit]
	}

	duration := time.Since(start)
	return outwriter.PrintAlertResults(alerts, cfg, duration)
}

// GetOverlapResults estimates pairwise audience overlap, deduplicated reach
// and per-segment performance, returning the report without rendering it.
func GetOverlapResults(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) (*schema.OverlapReport, time.Duration, error) {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	key := generateSnapshotKey(ctx, cfg, source, "overlap")
	report, err := cachedReport(cfg, mgr, key, func() (*schema.OverlapReport, error) {
		ws, err := loadWorkspace(ctx, cfg, source)
		if err != nil {
			return nil, err
		}
		return buildOverlapReport(cfg, ws), nil
	})
	if err != nil {
		return nil, 0, err
	}

	return report, time.Since(start), nil
}

// ExecuteOverlap estimates pairwise audience overlap, deduplicated reach and
// per-segment performance for the workspace's segment library.
func ExecuteOverlap(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error {
	report, duration, err := GetOverlapResults(ctx, cfg, source, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintOverlapReport(report, cfg, duration)
}

func buildOverlapReport(cfg *contract.Config, ws *schema.Workspace) *schema.OverlapReport {
	segments := filterSegments(ws.Segments, cfg.Excludes)
	placements := collectPlacements(filterCampaigns(ws.Campaigns, cfg.Excludes))

	return &schema.OverlapReport{
		Matrix:      CalculateOverlapMatrix(segments, cfg.Engine),
		UniqueReach: CalculateUniqueReach(segments, cfg.Engine),
		Performance: AggregateSegmentPerformance(placements, segments, cfg.Engine),
	}
}

// ExecuteSegments rolls placement performance up to the segments each
// placement targets.
func ExecuteSegments(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, _ contract.StoreManager) error {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	ws, err := loadWorkspace(ctx, cfg, source)
	if err != nil {
		return err
	}

	segments := filterSegments(ws.Segments, cfg.Excludes)
	placements := collectPlacements(filterCampaigns(ws.Campaigns, cfg.Excludes))
	performance := AggregateSegmentPerformance(placements, segments, cfg.Engine)
	if len(performance) > cfg.ResultLimit {
		performance = performance[:cfg.ResultLimit]
	}

	duration := time.Since(start)
	return outwriter.PrintSegmentResults(performance, cfg, duration)
}

// ExecuteLookalike ranks library segments by similarity to a seed segment.
func ExecuteLookalike(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, _ contract.StoreManager) error {
	start := time.Now()

	if cfg.SeedSegment == "" {
		return errors.New("lookalike requires --segment")
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	ws, err := loadWorkspace(ctx, cfg, source)
	if err != nil {
		return err
	}

	base := ws.SegmentByID(cfg.SeedSegment)
	if base == nil {
		return fmt.Errorf("segment %q not found in workspace", cfg.SeedSegment)
	}

	matches := FindLookalikeSegments(base, ws.Segments, cfg.Excludes, cfg.Engine)
	ranked := algo.RankLookalikes(matches, cfg.ResultLimit)

	duration := time.Since(start)
	return outwriter.PrintLookalikeResults(base, ranked, cfg, duration)
}

// ExecuteExpand measures the current audience position against the requested
// goals and recommends library segments that close the gaps.
func ExecuteExpand(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, _ contract.StoreManager) error {
	start := time.Now()

	goals := &schema.ExpansionGoals{
		TargetReach:       cfg.TargetReach,
		TargetCPA:         cfg.TargetCPA,
		TargetCVR:         cfg.TargetCVR,
		TargetConversions: cfg.TargetConversions,
	}
	if goals.TargetReach == 0 && goals.TargetCPA == 0 && goals.TargetCVR == 0 && goals.TargetConversions == 0 {
		return errors.New("expand requires at least one --target-* goal")
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	ws, err := loadWorkspace(ctx, cfg, source)
	if err != nil {
		return err
	}

	current := targetedSegments(ws)
	snapshot := buildExpansionSnapshot(cfg, ws, current)
	recommendations := GenerateExpansionRecommendations(current, goals, snapshot, ws.Segments, cfg.Engine)

	duration := time.Since(start)
	return outwriter.PrintExpansionResults(goals, snapshot, recommendations, cfg, duration)
}

// targetedSegments returns the unique segments referenced by any placement,
// in library order.
func targetedSegments(ws *schema.Workspace) []schema.Segment {
	targeted := make(map[string]struct{})
	for _, p := range ws.Placements() {
		for _, id := range p.SegmentIDs {
			targeted[id] = struct{}{}
		}
	}

	var current []schema.Segment
	for _, s := range ws.Segments {
		if _, ok := targeted[s.ID]; ok {
			current = append(current, s)
		}
	}
	return current
}

// buildExpansionSnapshot derives the audience plan's current position from
// the targeted segments' deduplicated reach and observed performance.
func buildExpansionSnapshot(cfg *contract.Config, ws *schema.Workspace, current []schema.Segment) *schema.ExpansionSnapshot {
	reach := CalculateUniqueReach(current, cfg.Engine)

	var clicks, conversions, spend float64
	for _, perf := range AggregateSegmentPerformance(ws.Placements(), current, cfg.Engine) {
		clicks += perf.Clicks
		conversions += perf.Conversions
		spend += perf.Spend
	}

	return &schema.ExpansionSnapshot{
		CurrentReach:         reach.Total,
		CPA:                  algo.SafeDiv(spend, conversions),
		CVR:                  algo.SafeDiv(conversions, clicks) * 100,
		ProjectedConversions: conversions,
	}
}

// ExecuteMetrics prints a workspace summary: entity counts, channel roster,
// budget totals and the overall flight window.
func ExecuteMetrics(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, _ contract.StoreManager) error {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	ws, err := loadWorkspace(ctx, cfg, source)
	if err != nil {
		return err
	}
	metrics := agg.BuildWorkspaceMetrics(ws)

	duration := time.Since(start)
	return outwriter.PrintMetricsReport(metrics, cfg, duration)
}
