package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// overlapCmd estimates pairwise audience overlap.
var overlapCmd = &cobra.Command{
	Use:   "overlap [workspace-path]",
	Short: "Estimate audience overlap and deduplicated reach",
	Long: `Estimate pairwise overlap across the segment library and the deduplicated reach of the whole set.

Targeting two segments that are mostly the same people doubles cost, not reach.
This analysis shows:
- A pairwise overlap matrix across all library segments
- Deduplicated total reach versus the naive sum of segment sizes
- Per-segment performance attributed from the placements that target it

Use it to:
- Drop segments that duplicate audiences you already buy
- Quantify how much reach a new segment actually adds
- Compare segment cost against its unique contribution

Examples:
  # Full overlap matrix and reach estimate
  adlens overlap

  # Leave retired segments out
  adlens overlap --exclude seg-legacy,seg-test

  # Export the matrix for a planning model
  adlens overlap --output json --output-file overlap.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOverlap(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run overlap analysis", err)
		}
	},
}
