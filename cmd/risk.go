package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// riskCmd scores delivery risk per flight.
var riskCmd = &cobra.Command{
	Use:   "risk [workspace-path]",
	Short: "Score delivery risk for every flight, riskiest first.",
	Long: `Score each flight's delivery risk from 0 to 100 and rank the portfolio riskiest first.

The score blends weighted factors into a single triage number:
- Budget pacing deviation from the ideal spend line
- Delivery gaps against booked impressions
- Time pressure as the flight window closes
- Engagement quality of what has already delivered
- Flight status anomalies (paused mid-window, overdue completion)

Factor weights can be customized under 'weights:' in .adlens.yaml; run
'adlens metrics' to see the active weights.

Examples:
  # Triage the portfolio
  adlens risk

  # Show the factor breakdown per flight
  adlens risk --detail

  # Only the five riskiest flights
  adlens risk --limit 5

  # Track risk for a fixed reporting date
  adlens risk --as-of 2025-09-10T00:00:00Z --output csv --output-file risk.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRisk(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run risk analysis", err)
		}
	},
}
