package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// opportunitiesCmd surfaces scored optimization openings.
var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities [workspace-path]",
	Short: "Surface scored optimization openings across campaigns",
	Long: `Scan campaigns for concrete optimization openings and rank them by expected impact.

Each opportunity is scored and comes with a recommended action, covering:
- Budget reallocation from under-delivering to constrained flights
- Scaling openings where performance beats the portfolio baseline
- Creative or placement fatigue worth rotating
- Audience segments outperforming their current share of spend

Use this as the starting agenda for an optimization session rather than
paging through every flight by hand.

Examples:
  # Top openings across the portfolio
  adlens opportunities

  # Deep dive with detail rows
  adlens opportunities --detail --limit 10

  # Export for the optimization backlog
  adlens opportunities --output csv --output-file openings.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOpportunities(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Cannot run opportunities analysis", err)
		}
	},
}
