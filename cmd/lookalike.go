package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// lookalikeCmd ranks segments by similarity to a seed.
var lookalikeCmd = &cobra.Command{
	Use:   "lookalike [workspace-path]",
	Short: "Rank segments by similarity to a seed segment",
	Long: `Rank library segments by how closely they resemble a chosen seed segment.

Similarity blends overlap with the seed, attribute agreement and performance
shape, so the top of the list is the audience most likely to convert like the
seed does. Requires --segment to name the seed.

Use it to:
- Extend a winning audience without guessing
- Find substitutes for a segment that is about to expire
- Sanity-check vendor lookalikes against your own library

Examples:
  # Rank everything against the best converter
  adlens lookalike --segment seg-high-value

  # Shortlist the five closest matches
  adlens lookalike --segment seg-high-value --limit 5

  # Exclude segments already in the media plan
  adlens lookalike --segment seg-high-value --exclude seg-core,seg-retarg`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLookalike(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run lookalike analysis", err)
		}
	},
}
