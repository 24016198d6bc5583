package cmd

import (
	"fmt"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/internal/iostore"
	"github.com/adlens/adlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need snapshot access without full shared setup.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backend := schema.DatabaseBackend(viper.GetString("snapshot-backend"))
	connStr := viper.GetString("snapshot-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize snapshot storage with the loaded config (no analysis tracking for snapshot commands)
	if err := iostore.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize snapshots: %w", err)
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotCmd focused on snapshot management.
//
// Note: Snapshot subcommands use minimal initialization (snapshotSetup) instead of
// the full sharedSetup used by analysis commands. This avoids workspace resolution
// and complex config processing for simple snapshot operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage report snapshots (improves performance)",
	Long: `Manage the report snapshots that speed up repeated analyses.

AdLens snapshots computed reports keyed by the workspace fingerprint and the
analysis configuration, so re-running the same analysis on an unchanged export
returns instantly instead of recomputing.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show snapshot statistics and connection info
  clear  - Remove all snapshot data

Examples:
  # Check snapshot status
  adlens snapshot status

  # Clear snapshots after re-exporting the workspace
  adlens snapshot clear`,
}

// snapshotClearCmd clears the snapshot data.
var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all snapshotted report data",
	Long: `Delete all snapshotted reports from the configured backend.

Use this when:
- The workspace export was regenerated upstream
- Snapshots may be stale or corrupted
- Testing performance without snapshots
- Switching anchor times significantly

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the snapshot table

Examples:
  # Clear SQLite snapshots (default)
  adlens snapshot clear

  # Clear MySQL snapshots (set connection string via env variable)
  ADLENS_SNAPSHOT_BACKEND=mysql ADLENS_SNAPSHOT_DB_CONNECT="..." adlens snapshot clear`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearSnapshots(cfg.SnapshotBackend, contract.GetSnapshotDBFilePath(), cfg.SnapshotDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshots", err)
		}
		fmt.Println("Snapshot data cleared successfully.")
	},
}

// snapshotStatusCmd shows snapshot status.
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot statistics and connection details",
	Long: `Show detailed information about the report snapshot store.

Displays:
- Backend type and connection status
- Total number of stored snapshots
- Last and oldest snapshot timestamps
- Snapshot database size

Use this to:
- Verify snapshotting is working and connected
- Monitor snapshot growth over time
- Check when a report was last recomputed
- Debug snapshot-related issues

Examples:
  # Check snapshot status
  adlens snapshot status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetSnapshotStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		iostore.PrintSnapshotStatus(status)
	},
}
