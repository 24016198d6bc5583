// Package iostore has the database-backed snapshot and analysis stores.
package iostore

import (
	"sync"

	"github.com/adlens/adlens/internal/contract"
)

// StoreManagerImpl manages the snapshot and analysis store instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	snapshot     contract.SnapshotStore
	analysis     contract.AnalysisStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetSnapshotStore returns the snapshot SnapshotStore.
func (mgr *StoreManagerImpl) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshot
}

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *StoreManagerImpl) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
