package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// attributionCmd performs multi-touch attribution analysis.
var attributionCmd = &cobra.Command{
	Use:   "attribution [workspace-path]",
	Short: "Credit conversions to channels under a multi-touch model.",
	Long: `Split every conversion path's credit across its touchpoints and rank channels by credited revenue.

Walks each recorded customer journey and divides conversion credit according to
the selected model, helping you:
- See which channels actually drive conversions, not just last clicks
- Compare credited revenue against channel spend (ROAS)
- Spot channels that open journeys versus channels that close them
- Defend budget shifts with model-backed numbers

Supported models: first_touch, last_touch, linear, time_decay, position_based.

Examples:
  # Rank channels under the default linear model
  adlens attribution --limit 20

  # Give all credit to the first touch
  adlens attribution --model first_touch

  # Weight recent touches more heavily
  adlens attribution --model time_decay

  # Render every model side by side
  adlens attribution --compare

  # Export findings to CSV for tracking
  adlens attribution --model position_based --output csv --output-file channels.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAttribution(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run attribution analysis", err)
		}
	},
}
