package iostore

import (
	"testing"
	"time"

	"github.com/adlens/adlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlightSignals(id, name string) *schema.FlightSignals {
	return &schema.FlightSignals{
		Flight: schema.Flight{ID: id, Name: name},
		Pacing: &schema.BudgetPacingAnalysis{
			FlightID:       id,
			FlightName:     name,
			Budget:         10000,
			PaceVariance:   12.5,
			ProjectedSpend: 11250,
			Status:         schema.OverPacing,
		},
		Risk: &schema.DeliveryRiskAssessment{
			FlightID:   id,
			FlightName: name,
			RiskScore:  68.4,
			RiskLevel:  schema.HighRisk,
		},
	}
}

func testAttributionRows() []schema.AttributionResult {
	return []schema.AttributionResult{
		{Channel: "google_search", ChannelType: schema.SearchChannel, Credit: 0.42, Conversions: 126, Revenue: 18900, Cost: 4200, ROAS: 4.5},
		{Channel: "instagram", ChannelType: schema.SocialChannel, Credit: 0.35, Conversions: 105, Revenue: 15750, Cost: 5250, ROAS: 3.0},
		{Channel: "email_blast", ChannelType: schema.EmailChannel, Credit: 0.23, Conversions: 69, Revenue: 10350, Cost: 1150, ROAS: 9.0},
	}
}

func TestAnalysisStore_NoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginAnalysisRun should return 0 for NoneBackend
	analysisID, err := store.BeginAnalysisRun(time.Now(), "risk", "demo", map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), analysisID)

	// Other operations should not error
	err = store.EndAnalysisRun(1, time.Now(), 10)
	assert.NoError(t, err)

	err = store.RecordFlightSignals(1, time.Now(), testFlightSignals("fl-1", "Flight One"))
	assert.NoError(t, err)

	err = store.RecordAttributionRows(1, schema.LinearModel, testAttributionRows())
	assert.NoError(t, err)

	rows, err := store.GetAllAttributionRows()
	assert.NoError(t, err)
	assert.Empty(t, rows)

	err = store.Close()
	assert.NoError(t, err)
}

func TestAnalysisStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginAnalysisRun
	startTime := time.Now()
	configParams := map[string]any{
		"anchor":    "2025-09-10",
		"workspace": "/test/workspace",
		"workers":   4,
	}
	analysisID, err := store.BeginAnalysisRun(startTime, "risk", "test-workspace", configParams)
	require.NoError(t, err)
	assert.Greater(t, analysisID, int64(0))

	// Test RecordFlightSignals
	err = store.RecordFlightSignals(analysisID, time.Now(), testFlightSignals("fl-1", "Flight One"))
	assert.NoError(t, err)

	// Test EndAnalysisRun
	endTime := time.Now()
	err = store.EndAnalysisRun(analysisID, endTime, 1)
	assert.NoError(t, err)
}

func TestAnalysisStore_MultipleFlights(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Begin analysis
	analysisID, err := store.BeginAnalysisRun(time.Now(), "pacing", "demo", map[string]any{"test": "multi-flight"})
	require.NoError(t, err)

	// Record multiple flights
	flights := []string{"fl-1", "fl-2", "fl-3"}
	for _, flight := range flights {
		err = store.RecordFlightSignals(analysisID, time.Now(), testFlightSignals(flight, "Flight "+flight))
		assert.NoError(t, err)
	}

	// End analysis
	err = store.EndAnalysisRun(analysisID, time.Now(), len(flights))
	assert.NoError(t, err)
}

func TestAnalysisStore_MultipleRuns(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Create multiple analysis runs
	var analysisIDs []int64
	for i := range 3 {
		id, err := store.BeginAnalysisRun(time.Now(), "risk", "demo", map[string]any{"run": i})
		require.NoError(t, err)
		analysisIDs = append(analysisIDs, id)

		// Record a flight for each run
		err = store.RecordFlightSignals(id, time.Now(), testFlightSignals("fl-1", "Flight One"))
		assert.NoError(t, err)

		err = store.EndAnalysisRun(id, time.Now(), 1)
		assert.NoError(t, err)
	}

	// Verify all IDs are unique
	assert.Equal(t, 3, len(analysisIDs))
	assert.NotEqual(t, analysisIDs[0], analysisIDs[1])
	assert.NotEqual(t, analysisIDs[1], analysisIDs[2])
}

func TestAnalysisStore_RuntimeCapture(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	t.Run("runtime calculation", func(t *testing.T) {
		// Start analysis at a known time
		startTime := time.Now().Add(-100 * time.Millisecond) // Start 100ms ago
		analysisID, err := store.BeginAnalysisRun(startTime, "risk", "demo", map[string]any{"test": "runtime"})
		require.NoError(t, err)

		// Wait a bit to ensure measurable duration
		time.Sleep(50 * time.Millisecond)

		// End analysis
		endTime := time.Now()
		err = store.EndAnalysisRun(analysisID, endTime, 1)
		assert.NoError(t, err)

		// Query the database to verify runtime was captured
		db := store.(*AnalysisStoreImpl).db
		var storedStartTime, storedEndTime string
		var storedDurationMs int64

		row := db.QueryRow("SELECT start_time, end_time, run_duration_ms FROM adlens_analysis_runs WHERE analysis_id = ?", analysisID)
		err = row.Scan(&storedStartTime, &storedEndTime, &storedDurationMs)
		assert.NoError(t, err)

		// Parse stored times
		storedStart, err := time.Parse(time.RFC3339Nano, storedStartTime)
		assert.NoError(t, err)
		storedEnd, err := time.Parse(time.RFC3339Nano, storedEndTime)
		assert.NoError(t, err)

		// Verify duration calculation: should be approximately end - start
		expectedDurationMs := storedEnd.Sub(storedStart).Milliseconds()
		assert.Equal(t, expectedDurationMs, storedDurationMs)

		// Verify duration is reasonable (should be around 150ms ± some tolerance)
		assert.GreaterOrEqual(t, storedDurationMs, int64(100)) // At least 100ms (our initial offset)
		assert.LessOrEqual(t, storedDurationMs, int64(300))    // At most 300ms (allowing for test overhead)
	})

	t.Run("zero duration edge case", func(t *testing.T) {
		// Test with same start and end time
		startTime := time.Now()
		analysisID, err := store.BeginAnalysisRun(startTime, "risk", "demo", map[string]any{"test": "zero_duration"})
		require.NoError(t, err)

		// End immediately with same time
		err = store.EndAnalysisRun(analysisID, startTime, 1)
		assert.NoError(t, err)

		// Verify duration is 0
		db := store.(*AnalysisStoreImpl).db
		var storedDurationMs int64
		row := db.QueryRow("SELECT run_duration_ms FROM adlens_analysis_runs WHERE analysis_id = ?", analysisID)
		err = row.Scan(&storedDurationMs)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), storedDurationMs)
	})

	t.Run("large duration", func(t *testing.T) {
		// Test with a longer duration
		startTime := time.Now().Add(-5 * time.Second)
		analysisID, err := store.BeginAnalysisRun(startTime, "risk", "demo", map[string]any{"test": "large_duration"})
		require.NoError(t, err)

		endTime := time.Now()
		err = store.EndAnalysisRun(analysisID, endTime, 1)
		assert.NoError(t, err)

		// Verify duration is approximately 5 seconds
		db := store.(*AnalysisStoreImpl).db
		var storedDurationMs int64
		row := db.QueryRow("SELECT run_duration_ms FROM adlens_analysis_runs WHERE analysis_id = ?", analysisID)
		err = row.Scan(&storedDurationMs)
		assert.NoError(t, err)

		// Should be around 5000ms ± tolerance
		assert.GreaterOrEqual(t, storedDurationMs, int64(4900))
		assert.LessOrEqual(t, storedDurationMs, int64(5100))
	})
}

func TestAnalysisStore_GetAllAnalysisRuns(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test empty store
	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	// Add some analysis runs
	startTime := time.Now()
	commands := []string{"risk", "pacing"}

	var analysisIDs []int64
	for i, command := range commands {
		id, err := store.BeginAnalysisRun(startTime, command, "demo", map[string]any{"run": i})
		require.NoError(t, err)
		analysisIDs = append(analysisIDs, id)

		err = store.EndAnalysisRun(id, startTime.Add(time.Minute), 1)
		assert.NoError(t, err)
	}

	// Get all runs
	runs, err = store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Len(t, runs, 2)

	// Verify the runs
	for i, run := range runs {
		assert.Equal(t, analysisIDs[i], run.AnalysisID)
		assert.Equal(t, commands[i], run.Command)
		assert.Equal(t, "demo", run.WorkspaceName)
		assert.Equal(t, int32(1), run.FlightsScanned)
		assert.NotNil(t, run.RunDurationMs)
		assert.Greater(t, *run.RunDurationMs, int32(0))
	}
}

func TestAnalysisStore_GetAllFlightSignals(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test empty store
	signals, err := store.GetAllFlightSignals()
	assert.NoError(t, err)
	assert.Empty(t, signals)

	// Add analysis run and flight signals
	analysisID, err := store.BeginAnalysisRun(time.Now(), "risk", "demo", map[string]any{"test": "signals"})
	require.NoError(t, err)

	flightSignals := testFlightSignals("fl-spring", "Spring Launch")
	err = store.RecordFlightSignals(analysisID, time.Now(), flightSignals)
	assert.NoError(t, err)

	err = store.EndAnalysisRun(analysisID, time.Now(), 1)
	assert.NoError(t, err)

	// Get all signals
	signals, err = store.GetAllFlightSignals()
	assert.NoError(t, err)
	assert.Len(t, signals, 1)

	// Verify the signals
	record := signals[0]
	assert.Equal(t, analysisID, record.AnalysisID)
	assert.Equal(t, "fl-spring", record.FlightID)
	assert.Equal(t, "Spring Launch", record.FlightName)
	assert.Equal(t, flightSignals.Risk.RiskScore, record.RiskScore)
	assert.Equal(t, string(flightSignals.Risk.RiskLevel), record.RiskLevel)
	assert.Equal(t, flightSignals.Pacing.PaceVariance, record.PaceVariance)
	assert.Equal(t, string(flightSignals.Pacing.Status), record.PacingStatus)
	assert.Equal(t, flightSignals.Pacing.ProjectedSpend, record.ProjectedSpend)
	assert.Equal(t, int32(0), record.AlertCount)
}

func TestAnalysisStore_GetAllAttributionRows(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test empty store
	rows, err := store.GetAllAttributionRows()
	assert.NoError(t, err)
	assert.Empty(t, rows)

	// Add analysis run and attribution rows under two models
	analysisID, err := store.BeginAnalysisRun(time.Now(), "attribution", "demo", map[string]any{"model": "linear"})
	require.NoError(t, err)

	results := testAttributionRows()
	err = store.RecordAttributionRows(analysisID, schema.LinearModel, results)
	assert.NoError(t, err)

	err = store.RecordAttributionRows(analysisID, schema.FirstTouchModel, results[:1])
	assert.NoError(t, err)

	err = store.EndAnalysisRun(analysisID, time.Now(), 0)
	assert.NoError(t, err)

	// Rows come back ordered by analysis, model, then channel
	rows, err = store.GetAllAttributionRows()
	assert.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, string(schema.FirstTouchModel), rows[0].Model)
	assert.Equal(t, "google_search", rows[0].Channel)

	linear := rows[1:]
	channels := []string{"email_blast", "google_search", "instagram"}
	for i, row := range linear {
		assert.Equal(t, analysisID, row.AnalysisID)
		assert.Equal(t, string(schema.LinearModel), row.Model)
		assert.Equal(t, channels[i], row.Channel)
	}

	// Spot-check one row's metrics end to end
	search := linear[1]
	assert.Equal(t, string(schema.SearchChannel), search.ChannelType)
	assert.Equal(t, 0.42, search.Credit)
	assert.Equal(t, float64(126), search.Conversions)
	assert.Equal(t, float64(18900), search.Revenue)
	assert.Equal(t, float64(4200), search.Cost)
	assert.Equal(t, 4.5, search.ROAS)
}

func TestAnalysisStore_RecordAttributionRowsEmpty(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	analysisID, err := store.BeginAnalysisRun(time.Now(), "attribution", "demo", map[string]any{"model": "linear"})
	require.NoError(t, err)

	// Recording an empty ranking is a no-op, not an error
	err = store.RecordAttributionRows(analysisID, schema.LinearModel, nil)
	assert.NoError(t, err)

	rows, err := store.GetAllAttributionRows()
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAnalysisStore_BeginEndAnalysisRun(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginAnalysisRun
	startTime := time.Now()
	configParams := map[string]any{"anchor": "2025-09-10", "workers": 4}
	analysisID, err := store.BeginAnalysisRun(startTime, "forecast", "acme", configParams)
	assert.NoError(t, err)
	assert.Greater(t, analysisID, int64(0))

	// Test EndAnalysisRun
	endTime := time.Now()
	totalFlights := 42
	err = store.EndAnalysisRun(analysisID, endTime, totalFlights)
	assert.NoError(t, err)

	// Verify the data was stored correctly
	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, analysisID, run.AnalysisID)
	assert.Equal(t, "forecast", run.Command)
	assert.Equal(t, "acme", run.WorkspaceName)
	assert.Equal(t, int32(totalFlights), run.FlightsScanned)
	assert.NotNil(t, run.RunDurationMs)
}

func TestAnalysisStore_RecordFlightSignals(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Create analysis run
	analysisID, err := store.BeginAnalysisRun(time.Now(), "alerts", "demo", map[string]any{"test": "record"})
	require.NoError(t, err)

	// Signals with alerts populate the alert count column
	signals := testFlightSignals("fl-brand", "Brand Awareness")
	signals.Pacing.Alert = &schema.PredictiveAlert{
		ID:         "alert-1",
		Message:    "flight is over pacing",
		EntityID:   "fl-brand",
		EntityName: "Brand Awareness",
	}
	signals.Risk.Alert = &schema.PredictiveAlert{
		ID:         "alert-2",
		Message:    "delivery risk is high",
		EntityID:   "fl-brand",
		EntityName: "Brand Awareness",
	}

	err = store.RecordFlightSignals(analysisID, time.Now(), signals)
	assert.NoError(t, err)

	// Verify the data was stored
	records, err := store.GetAllFlightSignals()
	assert.NoError(t, err)
	assert.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, analysisID, record.AnalysisID)
	assert.Equal(t, "fl-brand", record.FlightID)
	assert.Equal(t, signals.Risk.RiskScore, record.RiskScore)
	assert.Equal(t, int32(2), record.AlertCount)
}

func TestAnalysisStore_RecordFlightSignalsPartial(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	analysisID, err := store.BeginAnalysisRun(time.Now(), "risk", "demo", map[string]any{"test": "partial"})
	require.NoError(t, err)

	// A flight with no delivery data yields neither pacing nor risk
	signals := &schema.FlightSignals{
		Flight: schema.Flight{ID: "fl-new", Name: "New Flight"},
	}
	err = store.RecordFlightSignals(analysisID, time.Now(), signals)
	assert.NoError(t, err)

	records, err := store.GetAllFlightSignals()
	assert.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "fl-new", record.FlightID)
	assert.Equal(t, float64(0), record.RiskScore)
	assert.Equal(t, "", record.RiskLevel)
	assert.Equal(t, float64(0), record.PaceVariance)
	assert.Equal(t, "", record.PacingStatus)
	assert.Equal(t, int32(0), record.AlertCount)
}
