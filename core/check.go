package core

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// ExecuteCheck runs the check command for CI/CD gating.
// It evaluates every flight's delivery risk and pacing variance against the
// configured thresholds and exits non-zero if any flight exceeds them.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error {
	start := time.Now()

	builder := NewCheckResultBuilder(ctx, cfg, source, mgr)

	// Run analysis
	_, err := builder.RunAnalysis()
	if err != nil {
		return err
	}

	// Compute metrics
	builder.ComputeMetrics()

	// Build result
	builder.BuildResult()

	if result := builder.GetResult(); result != nil {
		printCheckResult(result, cfg, time.Since(start))

		// Return error if check failed
		if !result.Passed {
			fmt.Printf("%d violation(s) found\n", len(result.FailedFlights))
			os.Exit(1)
		}
	}
	return nil
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) {
	printCheckHeader(result, cfg, duration)

	if result.Passed {
		printCheckSuccess(result, cfg)
	} else {
		printCheckFailure(result, cfg)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) {
	fmt.Println("Policy Check Results:")

	// Define labels and values for dynamic padding
	labels := []string{"Workspace:", "Anchor:", "Thresholds:"}
	values := []any{
		contract.WorkspaceLabel(cfg.WorkspacePath),
		cfg.Now.Format(contract.DateTimeFormat),
		fmt.Sprintf("risk=%.1f, pacing=%.1f",
			result.Thresholds[schema.RiskSignal],
			result.Thresholds[schema.PacingSignal]),
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d flights in %v\n\n", result.TotalFlights, duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(result *schema.CheckResult, cfg *contract.Config) {
	if cfg.UseEmojis {
		fmt.Printf("✅ All flights passed policy checks\n\n")
	} else {
		fmt.Printf("PASS: All flights passed policy checks\n\n")
	}
	fmt.Println("Values observed:")

	for _, signal := range result.CheckedSignals {
		value := result.MaxValues[signal]
		flights := result.MaxValueFlights[signal]
		avgValue := result.AvgValues[signal]

		if len(flights) == 0 {
			fmt.Printf("  %s: max=%.1f, avg=%.1f\n", signal, value, avgValue)
			continue
		}

		// Show the primary flight that hit the max value (first one if tie)
		flightName := flights[0].FlightID
		if len(flights) > 1 {
			flightName += fmt.Sprintf(" (+%d more)", len(flights)-1)
		}

		fmt.Printf("  %s: max=%.1f (%s), avg=%.1f\n", signal, value, flightName, avgValue)
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(result *schema.CheckResult, cfg *contract.Config) {
	// Print failed flights grouped by signal
	if cfg.UseEmojis {
		fmt.Printf("❌ Policy check failed: %d violation(s) found across %d flights\n\n", len(result.FailedFlights), result.TotalFlights)
	} else {
		fmt.Printf("FAIL: Policy check failed: %d violation(s) found across %d flights\n\n", len(result.FailedFlights), result.TotalFlights)
	}

	// Group by signal for better readability
	signalGroups := make(map[schema.CheckSignal][]schema.CheckFailedFlight)
	for _, failed := range result.FailedFlights {
		signalGroups[failed.Signal] = append(signalGroups[failed.Signal], failed)
	}

	for _, signal := range result.CheckedSignals {
		flights := signalGroups[signal]
		if len(flights) == 0 {
			continue
		}

		// Sort by value descending
		sort.Slice(flights, func(i, j int) bool {
			return flights[i].Value > flights[j].Value
		})

		fmt.Printf("Signal: %s (%d violations)\n", signal, len(flights))

		// Show top 5 violations, with "+X more" if needed
		maxToShow := 5
		shown := 0
		for _, f := range flights {
			if shown >= maxToShow {
				remaining := len(flights) - shown
				if remaining > 0 {
					fmt.Printf("  ... and %d more\n", remaining)
				}
				break
			}
			fmt.Printf("  - %s (value: %.1f > threshold: %.1f)\n", f.FlightID, f.Value, f.Threshold)
			shown++
		}
		fmt.Println()
	}
}
