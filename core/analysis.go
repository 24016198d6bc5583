package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/adlens/adlens/core/agg"
	"github.com/adlens/adlens/core/algo"
	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/internal/outwriter"
	"github.com/adlens/adlens/schema"
)

// runPredictiveAnalysis performs the common Load, Filter, and Analysis steps
// behind every signal-driven command. The computed report is served from the
// snapshot store when a fresh snapshot exists, and each run is recorded to
// the analysis store when tracking is configured.
func runPredictiveAnalysis(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager, command string) (*schema.PredictiveReport, error) {
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
		startTime := time.Now()
		configParams := map[string]any{
			"anchor":       cfg.Now.Format(time.RFC3339),
			"workspace":    cfg.WorkspacePath,
			"workers":      cfg.Workers,
			"result_limit": cfg.ResultLimit,
		}
		var err error
		analysisID, err = analysisStore.BeginAnalysisRun(startTime, command, contract.WorkspaceLabel(cfg.WorkspacePath), configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
			analysisID = 0
		}
	}

	// --- 1. Load and Analyze (with snapshot caching) ---
	key := generateSnapshotKey(ctx, cfg, source, "predictive")
	report, err := cachedReport(cfg, mgr, key, func() (*schema.PredictiveReport, error) {
		ws, err := loadWorkspace(ctx, cfg, source)
		if err != nil {
			return nil, err
		}
		return analyzeWorkspace(cfg, ws), nil
	})
	if err != nil {
		return nil, err
	}

	// --- 2. End Analysis Tracking ---
	if analysisStore != nil && analysisID > 0 {
		recordFlightSignals(analysisStore, analysisID, cfg.GetAnalysisTime(), report.Signals)
		if err := analysisStore.EndAnalysisRun(analysisID, time.Now(), len(report.Signals)); err != nil {
			contract.LogWarn("Failed to finalize analysis tracking", err)
		}
	}

	return report, nil
}

// loadWorkspace loads the workspace behind the already-resolved config path.
func loadWorkspace(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource) (*schema.Workspace, error) {
	return source.Load(ctx, cfg.WorkspacePath)
}

// analyzeWorkspace runs every predictive engine over the workspace's
// non-excluded flights and assembles the combined report.
func analyzeWorkspace(cfg *contract.Config, ws *schema.Workspace) *schema.PredictiveReport {
	campaigns := filterCampaigns(ws.Campaigns, cfg.Excludes)
	flights := collectFlights(campaigns)

	// --- 1. Per-flight signals ---
	signals := analyzeFlights(cfg, flights)

	// --- 2. Campaign-level opportunities ---
	var opportunities []schema.OpportunityScore
	for i := range campaigns {
		opportunities = append(opportunities, IdentifyOpportunities(&campaigns[i], cfg.Now, cfg.Engine)...)
	}
	opportunities = algo.RankOpportunities(opportunities, len(opportunities))

	// --- 3. Combined alert feed ---
	alerts := append(agg.CollectAlerts(signals), agg.CollectOpportunityAlerts(opportunities)...)
	algo.SortAlerts(alerts)

	return &schema.PredictiveReport{
		Signals:       signals,
		Opportunities: opportunities,
		Alerts:        alerts,
	}
}

// analyzeFlights processes all flights in parallel using a worker pool.
// It spawns cfg.Workers number of goroutines to analyze flights concurrently
// and aggregates their results into a single slice of schema.FlightSignals.
func analyzeFlights(cfg *contract.Config, flights []schema.Flight) []schema.FlightSignals {
	// Initialize channels based on the final number of flights to be processed.
	flightCh := make(chan schema.Flight, len(flights))
	signalCh := make(chan schema.FlightSignals, len(flights))
	var wg sync.WaitGroup

	// Start worker pool
	workers := max(1, cfg.Workers)
	for range workers {
		wg.Go(func() {
			for f := range flightCh {
				signalCh <- analyzeFlightSignals(cfg, f)
			}
		})
	}

	// Send flights to worker channel
	for _, f := range flights {
		flightCh <- f
	}
	close(flightCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(signalCh)

	signals := make([]schema.FlightSignals, 0, len(flights))
	for s := range signalCh {
		signals = append(signals, s)
	}

	// Worker scheduling makes channel order nondeterministic; sort by flight ID.
	sort.Slice(signals, func(i, j int) bool {
		return signals[i].Flight.ID < signals[j].Flight.ID
	})

	return signals
}

// analyzeFlightSignals computes all predictive signals for a single flight.
func analyzeFlightSignals(cfg *contract.Config, f schema.Flight) schema.FlightSignals {
	// 1. Initialize the builder
	builder := NewFlightSignalsBuilder(cfg, f)

	// 2. Execute the required steps in order (Method Chaining)
	builder.
		ComputePacing().
		ComputeRisk().
		ComputePredictions()

	// 3. Build the final result
	return builder.Build()
}

// recordFlightSignals persists the per-flight outcome of a run.
func recordFlightSignals(store contract.AnalysisStore, analysisID int64, analysisTime time.Time, signals []schema.FlightSignals) {
	for i := range signals {
		if err := store.RecordFlightSignals(analysisID, analysisTime, &signals[i]); err != nil {
			logTrackingError("RecordFlightSignals", signals[i].Flight.ID, err)
		}
	}
}

// logTrackingError logs database tracking errors to stderr without disrupting analysis.
func logTrackingError(operation, flightID string, err error) {
	contract.LogWarn(fmt.Sprintf("Analysis tracking failed for %s on %s", operation, flightID), err)
}

// filterCampaigns returns campaign copies with excluded flights removed.
// Campaigns left without flights are kept for campaign-level scans.
func filterCampaigns(campaigns []schema.Campaign, excludes []string) []schema.Campaign {
	if len(excludes) == 0 {
		return campaigns
	}
	out := make([]schema.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		kept := make([]schema.Flight, 0, len(c.Flights))
		for _, f := range c.Flights {
			if contract.ShouldExclude(f.ID, f.Name, excludes) {
				continue
			}
			kept = append(kept, f)
		}
		c.Flights = kept
		out = append(out, c)
	}
	return out
}

// collectFlights flattens the campaigns' flights in campaign order.
func collectFlights(campaigns []schema.Campaign) []schema.Flight {
	var flights []schema.Flight
	for i := range campaigns {
		flights = append(flights, campaigns[i].Flights...)
	}
	return flights
}

// collectPlacements flattens the campaigns' placements in campaign order.
func collectPlacements(campaigns []schema.Campaign) []schema.Placement {
	var placements []schema.Placement
	for i := range campaigns {
		for j := range campaigns[i].Flights {
			placements = append(placements, campaigns[i].Flights[j].Placements...)
		}
	}
	return placements
}

// filterSegments returns the segments not matched by the exclude entries.
func filterSegments(segments []schema.Segment, excludes []string) []schema.Segment {
	if len(excludes) == 0 {
		return segments
	}
	out := make([]schema.Segment, 0, len(segments))
	for _, s := range segments {
		if contract.ShouldExclude(s.ID, s.Name, excludes) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// collectPredictions flattens the per-flight predictions, capped at limit.
func collectPredictions(signals []schema.FlightSignals, limit int) []schema.PerformancePrediction {
	var out []schema.PerformancePrediction
	for i := range signals {
		out = append(out, signals[i].Predictions...)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// findFlightSignals returns the signals for the given flight ID, or nil.
func findFlightSignals(signals []schema.FlightSignals, flightID string) *schema.FlightSignals {
	for i := range signals {
		if signals[i].Flight.ID == flightID {
			return &signals[i]
		}
	}
	return nil
}
