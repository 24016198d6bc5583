package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd summarizes the loaded workspace.
var metricsCmd = &cobra.Command{
	Use:   "metrics [workspace-path]",
	Short: "Summarize the workspace export",
	Long: `Summarize what the workspace export contains before running any analysis.

Reports entity counts (campaigns, flights, placements, segments, paths and
experiments), the channel roster, total planned budget against recorded spend,
and the overall flight window. A quick way to confirm an export is complete
and covers the period you expect.

Examples:
  # Inspect the default workspace
  adlens metrics

  # Inspect a specific export
  adlens metrics ./exports/q3/workspace.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
