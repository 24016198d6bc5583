package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// forecastCmd projects end-of-flight performance.
var forecastCmd = &cobra.Command{
	Use:   "forecast [workspace-path]",
	Short: "Project end-of-flight performance for every flight",
	Long: `Project each flight's end-of-flight metrics from its delivery history to date.

Extrapolates observed daily rates across the remaining flight days and compares
projections against goals, helping you:
- See which flights will miss their conversion or spend goals
- Quantify the gap while there is still budget to react
- Gauge projection confidence from how much history backs it

With --flight, renders a day-by-day spend curve for a single flight instead of
the portfolio projection.

Examples:
  # Project every flight
  adlens forecast

  # Day-by-day spend curve for one flight
  adlens forecast --flight fl-spring-launch

  # Higher resolution curve over a fixed horizon
  adlens forecast --flight fl-spring-launch --points 30 --window "45 days"

  # Reproducible projection for a reporting date
  adlens forecast --as-of 2025-09-10T00:00:00Z --output json --output-file forecast.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteForecast(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run forecast analysis", err)
		}
	},
}
