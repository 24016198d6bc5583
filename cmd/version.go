package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version, commit and build date information for the adlens CLI.`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("adlens %s\n", version)
		fmt.Printf("  Commit: %s\n", commit)
		fmt.Printf("  Built: %s\n", date)
		fmt.Printf("  Runtime: %s\n", runtime.Version())
	},
}
