package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd diffs channel credit between two attribution models.
var compareCmd = &cobra.Command{
	Use:   "compare [workspace-path]",
	Short: "Compare channel credit between two attribution models",
	Long: `Compare how channel credit shifts when switching from one attribution model to another.

Every model tells a different story about the same journeys. The diff shows which
channels gain and which lose when the story changes, making it ideal for:
- Model migrations - quantify the impact before switching the house model
- Budget debates - show how much of a channel's credit is model-dependent
- Sanity checks - channels stable across models are safe bets
- Stakeholder reviews - explain why numbers moved between reports

The comparison shows before/after credit, deltas, and ranking changes per channel.

Examples:
  # See what changes when moving off last-touch
  adlens compare --base-model last_touch --target-model linear

  # Quantify how time decay reshuffles credit
  adlens compare --base-model linear --target-model time_decay

  # Export the diff for a planning deck
  adlens compare --base-model last_touch --target-model position_based --output csv --output-file shift.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run model comparison", err)
		}
	},
}
