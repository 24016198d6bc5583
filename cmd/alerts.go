package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// alertsCmd prints the combined alert feed.
var alertsCmd = &cobra.Command{
	Use:   "alerts [workspace-path]",
	Short: "Show the combined alert feed, most severe first",
	Long: `Collect every alert raised across pacing, risk and prediction analysis into one feed.

Each alert carries the affected entity, the metric that tripped it, current and
projected values against the threshold, and a recommended action. The feed is
ordered most severe first so the top of the list is always the next thing to fix.

Alert sources:
- Pacing alerts - flights spending far off the ideal line
- Risk alerts - flights crossing the high risk score threshold
- Prediction alerts - flights projected to miss their goals

Examples:
  # Everything that needs attention
  adlens alerts

  # Just the top of the queue
  adlens alerts --limit 5

  # Feed a dashboard or ticketing hook
  adlens alerts --output json --output-file alerts.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAlerts(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run alerts analysis", err)
		}
	},
}
