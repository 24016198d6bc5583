// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/adlens/adlens/schema"
)

// WorkspaceSource defines the necessary operations for loading campaign workspaces.
// This allows the core analysis logic to be tested without needing real workspace files.
type WorkspaceSource interface {
	// Resolve returns the canonical absolute path of the workspace behind the
	// given path. Directories resolve to the workspace file they contain.
	Resolve(ctx context.Context, path string) (string, error)

	// Load reads and decodes the workspace at the resolved path.
	Load(ctx context.Context, path string) (*schema.Workspace, error)

	// Fingerprint returns a stable content hash for the workspace at the
	// resolved path. Byte-identical workspaces share a fingerprint, which
	// makes it usable as a snapshot key component.
	Fingerprint(ctx context.Context, path string) (string, error)
}

// StoreManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetSnapshotStore() SnapshotStore
	GetAnalysisStore() AnalysisStore
}

// SnapshotStore defines the interface for snapshot data storage.
// This allows mocking the store for testing.
type SnapshotStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.SnapshotStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis runs and storing flight signals.
type AnalysisStore interface {
	// BeginAnalysisRun creates a new analysis run and returns its unique ID
	BeginAnalysisRun(startTime time.Time, command, workspaceName string, configParams map[string]any) (int64, error)

	// EndAnalysisRun updates the analysis run with completion data
	EndAnalysisRun(analysisID int64, endTime time.Time, flightsScanned int) error

	// RecordFlightSignals stores the per-flight outcome of an analysis run
	RecordFlightSignals(analysisID int64, analysisTime time.Time, signals *schema.FlightSignals) error

	// RecordAttributionRows stores the per-channel outcome of an attribution run
	RecordAttributionRows(analysisID int64, model schema.AttributionModel, results []schema.AttributionResult) error

	// GetAllAnalysisRuns retrieves every recorded run, oldest first
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllFlightSignals retrieves every persisted flight signal row
	GetAllFlightSignals() ([]schema.FlightSignalRecord, error)

	// GetAllAttributionRows retrieves every persisted attribution row
	GetAllAttributionRows() ([]schema.AttributionRowRecord, error)

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// Close closes the underlying connection
	Close() error
}
