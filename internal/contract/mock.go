package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/adlens/adlens/schema"
)

// --- MockWorkspaceSource Implementation ---

// MockWorkspaceSource is an autogenerated mock type for the WorkspaceSource type.
type MockWorkspaceSource struct {
	mock.Mock
}

var _ WorkspaceSource = &MockWorkspaceSource{} // Compile-time check

// Resolve implements the contract.WorkspaceSource interface.
func (m *MockWorkspaceSource) Resolve(ctx context.Context, path string) (string, error) {
	ret := m.Called(ctx, path)
	resolved, _ := ret.Get(0).(string)
	return resolved, ret.Error(1)
}

// Load implements the contract.WorkspaceSource interface.
func (m *MockWorkspaceSource) Load(ctx context.Context, path string) (*schema.Workspace, error) {
	ret := m.Called(ctx, path)
	ws, _ := ret.Get(0).(*schema.Workspace)
	return ws, ret.Error(1)
}

// Fingerprint implements the contract.WorkspaceSource interface.
func (m *MockWorkspaceSource) Fingerprint(ctx context.Context, path string) (string, error) {
	ret := m.Called(ctx, path)
	fp, _ := ret.Get(0).(string)
	return fp, ret.Error(1)
}

// --- MockStoreManager Implementation ---

// MockStoreManager is an autogenerated mock type for the StoreManager type.
type MockStoreManager struct {
	mock.Mock
}

var _ StoreManager = &MockStoreManager{} // Compile-time check

// GetSnapshotStore implements the contract.StoreManager interface.
func (m *MockStoreManager) GetSnapshotStore() SnapshotStore {
	ret := m.Called()
	store, _ := ret.Get(0).(SnapshotStore)
	return store
}

// GetAnalysisStore implements the contract.StoreManager interface.
func (m *MockStoreManager) GetAnalysisStore() AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(AnalysisStore)
	return store
}

// --- MockSnapshotStore Implementation ---

// MockSnapshotStore is an autogenerated mock type for the SnapshotStore type.
type MockSnapshotStore struct {
	mock.Mock
}

var _ SnapshotStore = &MockSnapshotStore{} // Compile-time check

// Get implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) Get(key string) ([]byte, int, int64, error) {
	ret := m.Called(key)
	value, _ := ret.Get(0).([]byte)
	version, _ := ret.Get(1).(int)
	timestamp, _ := ret.Get(2).(int64)
	return value, version, timestamp, ret.Error(3)
}

// Set implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) Set(key string, value []byte, version int, timestamp int64) error {
	ret := m.Called(key, value, version, timestamp)
	return ret.Error(0)
}

// GetStatus implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.SnapshotStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.SnapshotStatus)
	return status, ret.Error(1)
}

// Close implements the contract.SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}

// --- MockAnalysisStore Implementation ---

// MockAnalysisStore is an autogenerated mock type for the AnalysisStore type.
type MockAnalysisStore struct {
	mock.Mock
}

var _ AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginAnalysisRun implements the contract.AnalysisStore interface.
func (m *MockAnalysisStore) BeginAnalysisRun(startTime time.Time, command, workspaceName string, configParams map[string]any) (int64, error) {
	ret := m.Called(startTime, command, workspaceName, configParams)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// EndAnalysisRun implements the contract.AnalysisStore interface.
func (m *MockAnalysisStore) EndAnalysisRun(analysisID int64, endTime time.Time, flightsScanned int) error {
	ret := m.Called(analysisID, endTime, flightsScanned)
	return ret.Error(0)
}

// RecordFlightSignals implements the contract.AnalysisStore interface.
func (m *MockAnalysisStore) RecordFlightSignals(analysisID int64, analysisTime time.Time, signals *schema.FlightSignals) error {
	ret := m.Called(analysisID, analysisTime, signals)
	return ret.Error(0)
}

// RecordAttributionRows implements the contract.AnalysisStore interface.
func (m *MockAnalysisStore) RecordAttributionRows(analysisID int64, model schema.AttributionModel, results []schema.AttributionResult) error {
	ret := m.Called(analysisID, model, results)
	return ret.Error(0)
}

// GetAllAnalysisRuns implements the contract.AnalysisStore interface.
func (m *MockAnalysisStore) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	ret := m.Called()
	runs, _ := ret.Get(0).([]schema.AnalysisRunRecord)
	return runs, ret.Error(1)
}

// GetAllFlightSignals implements the contract.AnalysisStore interface.
func (m *MockAnalysisStore) GetAllFlightSignals() ([]schema.FlightSignalRecord, error) {
	ret := m.Called()
	signals, _ := ret.Get(0).([]schema.FlightSignalRecord)
	return signals, ret.Error(1)
}

// GetAllAttributionRows implements the contract.AnalysisStore interface.
func (m *MockAnalysisStore) GetAllAttributionRows() ([]schema.AttributionRowRecord, error) {
	ret := m.Called()
	rows, _ := ret.Get(0).([]schema.AttributionRowRecord)
	return rows, ret.Error(1)
}

// GetStatus implements the contract.AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.AnalysisStatus)
	return status, ret.Error(1)
}

// Close implements the contract.AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
