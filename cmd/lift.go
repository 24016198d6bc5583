package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// liftCmd measures incremental lift from holdout experiments.
var liftCmd = &cobra.Command{
	Use:   "lift [workspace-path]",
	Short: "Measure incremental lift from holdout experiments",
	Long: `Evaluate every holdout experiment in the workspace and report incremental lift with significance.

Attribution credits what happened; incrementality asks what would have happened
anyway. For each control/test experiment this computes:
- Conversion lift of the exposed group over its holdout
- Statistical confidence via a two-proportion z-test
- A scale up / scale down / maintain recommendation per channel

Use this to:
- Separate channels that cause conversions from channels that collect them
- Kill spend on channels whose lift is indistinguishable from zero
- Justify scaling channels with proven incremental impact

Examples:
  # Evaluate all experiments
  adlens lift

  # Focus on the strongest verdicts
  adlens lift --limit 5 --detail

  # Export verdicts for the budget review
  adlens lift --output json --output-file lift.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLift(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run lift analysis", err)
		}
	},
}
