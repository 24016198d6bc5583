// Package main provides a comprehensive performance benchmarking tool for the AdLens CLI.
// It generates synthetic workspace exports of increasing size, measures execution times
// across those sizes and command types, running each test multiple times, treating the
// first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - adlens binary installed and available in PATH
//
// Usage: go run benchmark/main.go [workspace-base-dir]
//
//	workspace-base-dir: Directory for the generated workspace exports.
//	Existing exports are reused so repeated runs time the same data.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/adlens/adlens/schema"
)

// BenchmarkResult holds the result of a benchmark run (no-snapshot average, cold run and average of warm runs).
type BenchmarkResult struct {
	Workspace      string
	Command        string
	NoSnapshotTime string
	ColdTime       string
	WarmTime       string
}

// WorkspaceSize holds the generation dimensions for one workspace tier.
type WorkspaceSize struct {
	Campaigns           int
	FlightsPerCampaign  int
	PlacementsPerFlight int
	Paths               int
	Segments            int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkspaceBase  string
	Timeout        time.Duration
	Workers        int
	NoSnapshotRuns int
	SnapshotRuns   int
	TestWorkspaces []string
	Sizes          map[string]WorkspaceSize
	FlightIDs      map[string]string
	ModelPairs     map[string][2]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [workspace-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workspaceBase := os.Args[1]

	config := BenchmarkConfig{
		WorkspaceBase:  workspaceBase,
		Timeout:        5 * time.Minute,
		Workers:        14,
		NoSnapshotRuns: 3,
		SnapshotRuns:   4,
		TestWorkspaces: []string{"starter", "midmarket", "enterprise", "holding-co"},
		Sizes: map[string]WorkspaceSize{
			"starter":    {Campaigns: 2, FlightsPerCampaign: 3, PlacementsPerFlight: 2, Paths: 500, Segments: 12},
			"midmarket":  {Campaigns: 5, FlightsPerCampaign: 6, PlacementsPerFlight: 3, Paths: 5000, Segments: 40},
			"enterprise": {Campaigns: 12, FlightsPerCampaign: 10, PlacementsPerFlight: 4, Paths: 50000, Segments: 120},
			"holding-co": {Campaigns: 25, FlightsPerCampaign: 16, PlacementsPerFlight: 5, Paths: 200000, Segments: 300},
		},
		FlightIDs: map[string]string{
			"starter":    "fl-01-01",
			"midmarket":  "fl-02-03",
			"enterprise": "fl-05-04",
			"holding-co": "fl-09-02",
		},
		ModelPairs: map[string][2]string{
			"starter":    {"first_touch", "last_touch"},
			"midmarket":  {"linear", "time_decay"},
			"enterprise": {"linear", "position_based"},
			"holding-co": {"first_touch", "position_based"},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateWorkspaces(config); err != nil {
		fmt.Printf("Workspace generation failed: %v\n", err)
		os.Exit(1)
	}

	// Clear snapshots using adlens snapshot clear
	fmt.Printf("Clearing snapshots...\n")
	clearCmd := exec.Command("adlens", "snapshot", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear snapshots: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Snapshots cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the adlens binary is available.
func checkPrerequisites() error {
	if _, err := exec.LookPath("adlens"); err != nil {
		return fmt.Errorf("adlens binary not found in PATH")
	}
	return nil
}

// generateWorkspaces writes one synthetic export per size tier under the base
// directory. Existing exports are reused so repeated runs time the same data.
func generateWorkspaces(config BenchmarkConfig) error {
	for i, workspace := range config.TestWorkspaces {
		dir := filepath.Join(config.WorkspaceBase, workspace)
		path := filepath.Join(dir, "workspace.json")
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Reusing workspace %s\n", path)
			continue
		}

		size := config.Sizes[workspace]
		ws := buildWorkspace(workspace, size, int64(i+1))

		data, err := json.Marshal(ws)
		if err != nil {
			return fmt.Errorf("marshal workspace %s: %w", workspace, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create workspace dir %s: %w", dir, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write workspace %s: %w", path, err)
		}

		fmt.Printf("Generated workspace %s: %d campaigns, %d flights, %d paths, %d segments\n",
			workspace, size.Campaigns, size.Campaigns*size.FlightsPerCampaign, size.Paths, size.Segments)
	}
	return nil
}

// buildWorkspace assembles a synthetic but structurally realistic export.
// The seed pins the random draws so a regenerated tier benchmarks the same.
func buildWorkspace(name string, size WorkspaceSize, seed int64) *schema.Workspace {
	rng := rand.New(rand.NewSource(seed))
	now := time.Now().UTC().Truncate(time.Hour)

	channels := []struct {
		name string
		kind schema.ChannelType
	}{
		{"google_search", schema.SearchChannel},
		{"instagram", schema.SocialChannel},
		{"programmatic_display", schema.DisplayChannel},
		{"youtube", schema.VideoChannel},
		{"email_blast", schema.EmailChannel},
		{"partner_network", schema.AffiliateChannel},
		{"organic_search", schema.OrganicChannel},
		{"direct", schema.DirectChannel},
	}
	categories := []schema.SegmentCategory{
		schema.DemographicsCategory, schema.BehavioralCategory, schema.InterestCategory,
		schema.B2BCategory, schema.ContextualCategory,
	}

	ws := &schema.Workspace{Name: name, ExportedAt: now}

	for i := 0; i < size.Segments; i++ {
		ws.Segments = append(ws.Segments, schema.Segment{
			ID:        fmt.Sprintf("seg-%03d", i+1),
			Name:      fmt.Sprintf("Audience %03d", i+1),
			Category:  categories[i%len(categories)],
			Reach:     int64(50000 + rng.Intn(2000000)),
			CPMUplift: 0.5 + rng.Float64()*3,
		})
	}

	// Flight windows straddle now so pacing and forecasts have life left.
	for c := 0; c < size.Campaigns; c++ {
		campaign := schema.Campaign{
			ID:        fmt.Sprintf("cmp-%02d", c+1),
			Name:      fmt.Sprintf("Campaign %02d", c+1),
			StartDate: now.AddDate(0, 0, -45),
			EndDate:   now.AddDate(0, 0, 45),
			Status:    schema.ActiveStatus,
		}

		for f := 0; f < size.FlightsPerCampaign; f++ {
			budget := float64(10000 + rng.Intn(90000))
			elapsed := 0.2 + rng.Float64()*0.6 // fraction of the 30-day window already run
			start := now.AddDate(0, 0, -int(30*elapsed)-1)
			impressions := int64(500000 + rng.Intn(5000000))
			clicks := impressions / int64(20+rng.Intn(80))
			conversions := clicks / int64(20+rng.Intn(60))
			spend := budget * elapsed * (0.6 + rng.Float64()*0.8) // some flights over, some under

			flight := schema.Flight{
				ID:        fmt.Sprintf("fl-%02d-%02d", c+1, f+1),
				Name:      fmt.Sprintf("Flight %02d-%02d", c+1, f+1),
				StartDate: start,
				EndDate:   start.AddDate(0, 0, 30),
				Budget:    budget,
				Status:    schema.ActiveStatus,
				Performance: &schema.FlightPerformance{
					Impressions: impressions,
					Clicks:      clicks,
					Conversions: conversions,
					CTR:         float64(clicks) / float64(impressions) * 100,
					CVR:         float64(conversions) / float64(clicks) * 100,
					ROAS:        1 + rng.Float64()*5,
				},
				Delivery: &schema.FlightDelivery{
					ActualSpend:       spend,
					ActualImpressions: int64(float64(impressions) * elapsed),
					Pacing:            spend / (budget * elapsed),
					Status:            "delivering",
				},
				Forecast: &schema.FlightForecast{
					Impressions: impressions,
					Reach:       impressions / 3,
					Frequency:   2 + rng.Float64(),
				},
			}

			for p := 0; p < size.PlacementsPerFlight; p++ {
				var segIDs []string
				for s := 0; s < 1+rng.Intn(3); s++ {
					segIDs = append(segIDs, ws.Segments[rng.Intn(len(ws.Segments))].ID)
				}
				flight.Placements = append(flight.Placements, schema.Placement{
					ID:         fmt.Sprintf("pl-%s-%02d", flight.ID, p+1),
					Name:       fmt.Sprintf("Placement %02d", p+1),
					SegmentIDs: segIDs,
					Performance: &schema.PlacementPerformance{
						Impressions: impressions / int64(size.PlacementsPerFlight),
						Clicks:      clicks / int64(size.PlacementsPerFlight),
						Conversions: conversions / int64(size.PlacementsPerFlight),
						Spend:       spend / float64(size.PlacementsPerFlight),
					},
				})
			}

			campaign.TotalBudget += budget
			campaign.Flights = append(campaign.Flights, flight)
		}

		ws.Campaigns = append(ws.Campaigns, campaign)
	}

	for p := 0; p < size.Paths; p++ {
		touches := 1 + rng.Intn(5)
		start := now.AddDate(0, 0, -1-rng.Intn(30))
		path := schema.ConversionPath{
			ID:                    fmt.Sprintf("path-%06d", p+1),
			ConversionValue:       20 + rng.Float64()*480,
			TimeToConversionHours: float64(touches*6 + rng.Intn(48)),
		}
		for i := 0; i < touches; i++ {
			ch := channels[rng.Intn(len(channels))]
			path.Touchpoints = append(path.Touchpoints, schema.Touchpoint{
				Channel:     ch.name,
				ChannelType: ch.kind,
				Timestamp:   start.Add(time.Duration(i*6+rng.Intn(6)) * time.Hour),
				Cost:        rng.Float64() * 4,
			})
		}
		ws.Paths = append(ws.Paths, path)
	}

	// One holdout experiment per channel, each with a visible lift.
	for i, ch := range channels {
		control := schema.TestGroup{Spend: 5000, Conversions: float64(80 + rng.Intn(40))}
		test := schema.TestGroup{
			Spend:       5000 + rng.Float64()*2000,
			Conversions: control.Conversions * (1 + rng.Float64()*0.6),
		}
		control.Revenue = control.Conversions * 90
		test.Revenue = test.Conversions * 90
		ws.Experiments = append(ws.Experiments, schema.IncrementalityTest{
			ID:          fmt.Sprintf("exp-%02d", i+1),
			Channel:     ch.name,
			ChannelType: ch.kind,
			PeriodStart: now.AddDate(0, 0, -30),
			PeriodEnd:   now,
			Control:     control,
			Test:        test,
		})
	}

	return ws
}

// runBenchmarks executes all benchmark tests across configured workspaces
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d workspaces, %v timeout, %d workers, no-snapshot: %d runs, snapshot: %d runs\n",
		len(config.TestWorkspaces), config.Timeout, config.Workers, config.NoSnapshotRuns, config.SnapshotRuns)

	for _, workspace := range config.TestWorkspaces {
		fmt.Printf("Benchmarking %s\n", workspace)

		workspacePath := filepath.Join(config.WorkspaceBase, workspace)

		// Attribution analysis
		result := runBenchmarkSuite(config, workspace, workspacePath, "attribution", "attribution analysis", "")
		results = append(results, result)

		// Compare analysis
		models, hasModels := config.ModelPairs[workspace]
		if hasModels {
			args := fmt.Sprintf("--base-model %s --target-model %s", models[0], models[1])
			desc := fmt.Sprintf("compare analysis (%s -> %s)", models[0], models[1])
			result = runBenchmarkSuite(config, workspace, workspacePath, "compare", desc, args)
			results = append(results, result)
		}

		// Forecast analysis
		flightID, hasFlight := config.FlightIDs[workspace]
		if hasFlight {
			args := fmt.Sprintf("--flight %s --window \"30 days\" --points 30", flightID)
			desc := fmt.Sprintf("forecast analysis (%s)", flightID)
			result = runBenchmarkSuite(config, workspace, workspacePath, "forecast", desc, args)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs both no-snapshot and snapshot benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, workspace, workspacePath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, workspace)

	// Helper to run a benchmark phase
	runPhase := func(snapshotBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, workspacePath, command, extraArgs, snapshotBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-snapshot runs
	_, noSnapshotAvg := runPhase("none", config.NoSnapshotRuns, "No-snapshot")

	// Phase 2: Snapshot runs
	coldTime, warmAvg := runPhase("sqlite", config.SnapshotRuns, "Snapshot")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-snapshot average: %s, Cold time: %s, Warm average: %s\n", noSnapshotAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Workspace:      workspace,
		Command:        command,
		NoSnapshotTime: noSnapshotAvg,
		ColdTime:       coldTimeStr,
		WarmTime:       warmAvg,
	}
}

// runBenchmark executes an adlens command multiple times with specified snapshot backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, workspacePath, command, extraArgs, snapshotBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "--snapshot-backend", snapshotBackend}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("adlens", args...)
		cmd.Dir = workspacePath

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)

	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/adlens_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"workspace", "cmd", "no_snapshot_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Workspace, result.Command, result.NoSnapshotTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "attribution", "Attribution Analysis:")
	printCommandSummary(results, "compare", "Compare Analysis:")
	printCommandSummary(results, "forecast", "Forecast Analysis:")

	printSummaryFooter()
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-snapshot: %s, Cold: %s, Warm: %s\n", result.Workspace, result.NoSnapshotTime, result.ColdTime, result.WarmTime)
		}
	}
}

func printSummaryFooter() {
	fmt.Printf("Benchmark script completed successfully\n")
}
