package cmd

import (
	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd gates pipelines on portfolio health.
var checkCmd = &cobra.Command{
	Use:   "check [workspace-path]",
	Short: "Gate a pipeline on delivery risk and pacing thresholds",
	Long: `Evaluate the workspace against risk and pacing thresholds and exit non-zero on violation.

Designed for CI and scheduled jobs: the command prints each violated policy
with the flights behind it, then fails the run so a human looks before more
budget burns. Thresholds can come from three places, in priority order:
- --thresholds-override with a compact 'risk:70,pacing:25' string
- --max-risk and --max-pace-variance individually
- Built-in defaults (risk score 70, pacing variance 25%)

Use it to:
- Block an automated budget push when a flight is off the rails
- Page on portfolios drifting past an agreed risk ceiling
- Keep a daily log of policy compliance per workspace

Examples:
  # Check with the default policy
  adlens check

  # Tighten both thresholds in one flag
  adlens check --thresholds-override risk:60,pacing:15

  # Only care about runaway pacing
  adlens check --max-pace-variance 10`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, workspaceSource, storeManager); err != nil {
			contract.LogFatal("Policy check failed", err)
		}
	},
}
