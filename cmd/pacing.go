package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// pacingCmd reports budget pacing per flight.
var pacingCmd = &cobra.Command{
	Use:   "pacing [workspace-path]",
	Short: "Show budget pacing per flight, worst variance first",
	Long: `Measure actual spend against the ideal linear pace for every flight.

For each flight with delivery data this computes elapsed days, ideal spend to
date, actual spend, pace variance and projected end-of-flight spend, so you can:
- Catch overspending flights before the budget is gone
- Find under-delivering flights while there is still time to fix them
- See projected final spend against the booked budget
- Prioritize by variance severity rather than flight size

Flights are ranked by absolute pace variance, worst first.

Examples:
  # Rank all flights by pacing trouble
  adlens pacing

  # Pin the analysis date for a reproducible report
  adlens pacing --as-of 2025-09-10T00:00:00Z

  # Leave test flights out of the scan
  adlens pacing --exclude fl-test,fl-staging

  # Export for the weekly delivery review
  adlens pacing --output csv --output-file pacing.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePacing(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run pacing analysis", err)
		}
	},
}
