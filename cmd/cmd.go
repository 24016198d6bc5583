// Package cmd defines the command-line interface for adlens.
package cmd

import (
	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(attributionCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(liftCmd)
	rootCmd.AddCommand(pacingCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(opportunitiesCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(overlapCmd)
	rootCmd.AddCommand(segmentsCmd)
	rootCmd.AddCommand(lookalikeCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(analysisCmd)

	// Add the snapshot subcommands to the parent snapshot command
	snapshotCmd.AddCommand(snapshotClearCmd)
	snapshotCmd.AddCommand(snapshotStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("as-of", "", "Analysis anchor date in ISO8601 or time ago (defaults to now)")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-target metadata (factors, confidence, windows)")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of flight or segment IDs to ignore")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("model", string(schema.LinearModel), "Attribution model: first_touch, last_touch, linear, time_decay or position_based")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("snapshot-backend", string(schema.SQLiteBackend), "Snapshot backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("snapshot-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Bool("no-snapshot", false, "Skip the snapshot store and recompute the analysis")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from snapshot-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of attributionCmd to Viper
	attributionCmd.Flags().Bool("compare", false, "Render every attribution model side by side")
	if err := viper.BindPFlags(attributionCmd.Flags()); err != nil {
		contract.LogFatal("Error binding attribution flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("base-model", "", "Attribution model for the BEFORE column")
	compareCmd.Flags().String("target-model", "", "Attribution model for the AFTER column (defaults to --model)")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of forecastCmd to Viper
	forecastCmd.Flags().String("flight", "", "Flight ID to render a spend curve for")
	forecastCmd.Flags().Int("points", contract.DefaultCurvePoints, "Number of spend curve points")
	forecastCmd.Flags().String("window", "", "Spend curve horizon (e.g., '30 days'; defaults to the flight window)")
	if err := viper.BindPFlags(forecastCmd.Flags()); err != nil {
		contract.LogFatal("Error binding forecast flags", err)
	}

	// Bind all flags of lookalikeCmd to Viper
	lookalikeCmd.Flags().String("segment", "", "Seed segment ID to find lookalikes for")
	if err := viper.BindPFlags(lookalikeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding lookalike flags", err)
	}

	// Bind all flags of expandCmd to Viper
	expandCmd.Flags().Int64("target-reach", 0, "Deduplicated audience reach to aim for")
	expandCmd.Flags().Float64("target-cpa", 0, "Cost per acquisition to aim for")
	expandCmd.Flags().Float64("target-cvr", 0, "Conversion rate percentage to aim for")
	expandCmd.Flags().Float64("target-conversions", 0, "Projected conversion volume to aim for")
	if err := viper.BindPFlags(expandCmd.Flags()); err != nil {
		contract.LogFatal("Error binding expand flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("thresholds-override", "", "Signal thresholds for CI/CD gating (format: 'risk:70,pacing:25')")
	checkCmd.Flags().Float64("max-risk", 0, "Maximum tolerated delivery risk score")
	checkCmd.Flags().Float64("max-pace-variance", 0, "Maximum tolerated absolute pace variance percentage")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
