package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// segmentsCmd profiles the segment library.
var segmentsCmd = &cobra.Command{
	Use:   "segments [workspace-path]",
	Short: "Profile every segment in the audience library",
	Long: `Profile every segment in the audience library with reach, targeting and performance rollups.

For each segment this reports:
- Estimated reach and the share of placements that target it
- Spend, conversions and revenue attributed through those placements
- Cost per unique reached user once overlap is accounted for

Use it to:
- Audit which segments actually carry delivery
- Spot expensive segments with thin unique reach
- Build a shortlist before running lookalike or expansion analysis

Examples:
  # Profile the whole library
  adlens segments

  # Focus on the top 10 by attributed revenue
  adlens segments --limit 10

  # Skip deprecated segments
  adlens segments --exclude seg-old-1,seg-old-2`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSegments(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run segments analysis", err)
		}
	},
}
