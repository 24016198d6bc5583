package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adlens/adlens/internal/contract"
)

// currentSnapshotVersion defines the version of the snapshot payload schema
const currentSnapshotVersion = 1

// snapshotMaxAge is how long a stored report stays servable
const snapshotMaxAge = 7 * 24 * time.Hour

// cachedReport consults the snapshot store before recomputing a report.
// Runs with --no-snapshot, or without a usable store, fall through to
// a direct computation.
func cachedReport[T any](cfg *contract.Config, mgr contract.StoreManager, key string, compute func() (*T, error)) (*T, error) {
	if cfg.NoSnapshot || mgr == nil {
		return compute()
	}
	store := mgr.GetSnapshotStore()
	if store == nil {
		return compute()
	}

	// Check for snapshot hit
	if report := checkSnapshotHit[T](store, key); report != nil {
		return report, nil
	}

	// Snapshot miss: compute and store
	return computeAndStore(store, key, compute)
}

// checkSnapshotHit attempts to retrieve and validate a stored report
func checkSnapshotHit[T any](store contract.SnapshotStore, key string) *T {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Snapshot miss
	}

	// Validate version and staleness
	if version == currentSnapshotVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= snapshotMaxAge {
			var report T
			if err := json.Unmarshal(data, &report); err == nil {
				return &report // Snapshot hit
			}
		}
	}

	return nil // Snapshot miss (stale or version mismatch)
}

// computeAndStore computes the report and stores it in the snapshot store
func computeAndStore[T any](store contract.SnapshotStore, key string, compute func() (*T, error)) (*T, error) {
	report, err := compute()
	if err != nil {
		return nil, err
	}

	// Store in snapshot
	if data, err := json.Marshal(report); err == nil {
		_ = store.Set(key, data, currentSnapshotVersion, time.Now().Unix())
	}

	return report, nil
}

// generateSnapshotKey creates a unique key based on analysis parameters.
// The workspace fingerprint invalidates snapshots when the export changes;
// the settings digest invalidates them when engine tunables change.
func generateSnapshotKey(ctx context.Context, cfg *contract.Config, source contract.WorkspaceSource, command string, extra ...string) string {
	fingerprint, err := source.Fingerprint(ctx, cfg.WorkspacePath)
	if err != nil {
		fingerprint = ""
	}

	key := fmt.Sprintf("%s:%s:%s:%d:%s:%s",
		cfg.WorkspacePath,
		command,
		fingerprint,
		cfg.GetAnalysisTime().Unix(),
		settingsDigest(cfg.Engine),
		strings.Join(extra, ":"),
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// settingsDigest hashes the engine tunables so overridden settings never
// serve a snapshot computed under different constants.
func settingsDigest(set *contract.EngineSettings) string {
	data, err := json.Marshal(set)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
