package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// expandCmd plans audience expansion toward a goal.
var expandCmd = &cobra.Command{
	Use:   "expand [workspace-path]",
	Short: "Plan audience expansion toward a reach or efficiency goal",
	Long: `Plan which segments to add, in what order, to hit a reach or efficiency goal.

Give it one goal and it greedily assembles the expansion set that gets there
with the least duplicated reach:
- --target-reach for a deduplicated audience size
- --target-cpa to stay under a blended cost per acquisition
- --target-cvr to hold a minimum conversion rate
- --target-conversions for an absolute conversion volume

Each step reports the segment added, the marginal unique reach it brings and
the projected blended economics after adding it.

Examples:
  # Reach 2M deduplicated users as cheaply as possible
  adlens expand --target-reach 2000000

  # Grow volume while holding CPA under $45
  adlens expand --target-cpa 45

  # Plan for 500 incremental conversions
  adlens expand --target-conversions 500`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExpand(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run expansion analysis", err)
		}
	},
}
