// Package parquet provides data structures and functions for exporting
// analysis history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/adlens/adlens/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the adlens_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// Command is the subcommand that produced this run
	Command string `parquet:"command,snappy"`

	// WorkspaceName is the short label of the analyzed workspace
	WorkspaceName string `parquet:"workspace_name,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// FlightsScanned is the number of flights scanned in this run
	FlightsScanned int32 `parquet:"flights_scanned,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FlightSignal represents the persisted signals for a single flight in an analysis.
// This struct maps to the adlens_flight_signals database table.
type FlightSignal struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// FlightID is the workspace-unique identifier of the flight
	FlightID string `parquet:"flight_id,snappy"`

	// FlightName is the human-readable name of the flight
	FlightName string `parquet:"flight_name,snappy"`

	// AnalysisTime is when this flight was analyzed (stored as TIMESTAMP with nanosecond precision)
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// RiskScore is the composite delivery risk score (0-100)
	RiskScore float64 `parquet:"risk_score,snappy"`

	// RiskLevel is the bucketed risk severity label
	RiskLevel string `parquet:"risk_level,snappy"`

	// PaceVariance is the projected spend deviation from ideal, in percent
	PaceVariance float64 `parquet:"pace_variance,snappy"`

	// PacingStatus indicates over, under, or on-track pacing
	PacingStatus string `parquet:"pacing_status,snappy"`

	// ProjectedSpend is the spend projected to the end of the flight window
	ProjectedSpend float64 `parquet:"projected_spend,snappy"`

	// AlertCount is the number of alerts raised for this flight
	AlertCount int32 `parquet:"alert_count,snappy"`
}

// AttributionRow represents one channel's credit under one model.
// This struct maps to the adlens_attribution_results database table.
type AttributionRow struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// Model is the attribution model the run was computed under
	Model string `parquet:"model,snappy"`

	// Channel is the marketing channel name
	Channel string `parquet:"channel,snappy"`

	// ChannelType is the channel's category (search, social, ...)
	ChannelType string `parquet:"channel_type,snappy"`

	// Credit is the channel's share of total credit (sums to 1 per run)
	Credit float64 `parquet:"credit,snappy"`

	// Conversions is the credit-weighted conversion count
	Conversions float64 `parquet:"conversions,snappy"`

	// Revenue is the credit-weighted revenue
	Revenue float64 `parquet:"revenue,snappy"`

	// Cost is the plain sum of the channel's touchpoint costs
	Cost float64 `parquet:"cost,snappy"`

	// ROAS is revenue over cost, zero when cost is zero
	ROAS float64 `parquet:"roas,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFlightSignalsParquet writes a slice of FlightSignal structs to a Parquet file.
func WriteFlightSignalsParquet(data []FlightSignal, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the FlightSignal struct tags
	writer := parquet.NewGenericWriter[FlightSignal](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteAttributionRowsParquet writes a slice of AttributionRow structs to a Parquet file.
func WriteAttributionRowsParquet(data []AttributionRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the AttributionRow struct tags
	writer := parquet.NewGenericWriter[AttributionRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchAnalysisRuns generates sample AnalysisRun data for demonstration.
func MockFetchAnalysisRuns() []AnalysisRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"anchor":"2025-09-10","workspace":"acme-q3","workers":4}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23 * time.Hour)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"anchor":"2025-09-09","workspace":"acme-q3","workers":8}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []AnalysisRun{
		{
			AnalysisID:     1,
			Command:        "risk",
			WorkspaceName:  "acme-q3",
			StartTime:      startTime1,
			EndTime:        &endTime1,
			RunDurationMs:  &durationMs1,
			FlightsScanned: 12,
			ConfigParams:   &configParams1,
		},
		{
			AnalysisID:     2,
			Command:        "pacing",
			WorkspaceName:  "acme-q3",
			StartTime:      startTime2,
			EndTime:        &endTime2,
			RunDurationMs:  &durationMs2,
			FlightsScanned: 8,
			ConfigParams:   &configParams2,
		},
		{
			AnalysisID:     3,
			Command:        "alerts",
			WorkspaceName:  "acme-q3",
			StartTime:      startTime3,
			EndTime:        nil, // Still running - nullable field
			RunDurationMs:  nil, // Not yet calculated - nullable field
			FlightsScanned: 0,
			ConfigParams:   nil, // No config stored - nullable field
		},
	}
}

// MockFetchFlightSignals generates sample FlightSignal data for demonstration.
func MockFetchFlightSignals() []FlightSignal {
	now := time.Now()

	return []FlightSignal{
		{
			AnalysisID:     1,
			FlightID:       "fl-spring-launch",
			FlightName:     "Spring Launch",
			AnalysisTime:   now.Add(-1 * time.Hour),
			RiskScore:      72.5,
			RiskLevel:      "high",
			PaceVariance:   18.3,
			PacingStatus:   "over_pacing",
			ProjectedSpend: 11830.0,
			AlertCount:     2,
		},
		{
			AnalysisID:     1,
			FlightID:       "fl-summer-sale",
			FlightName:     "Summer Sale",
			AnalysisTime:   now.Add(-1 * time.Hour),
			RiskScore:      31.0,
			RiskLevel:      "medium",
			PaceVariance:   -4.2,
			PacingStatus:   "on_track",
			ProjectedSpend: 4790.0,
			AlertCount:     0,
		},
		{
			AnalysisID:     2,
			FlightID:       "fl-brand-awareness",
			FlightName:     "Brand Awareness",
			AnalysisTime:   now.Add(-23 * time.Hour),
			RiskScore:      12.8,
			RiskLevel:      "low",
			PaceVariance:   -22.6,
			PacingStatus:   "under_pacing",
			ProjectedSpend: 1548.0,
			AlertCount:     1,
		},
	}
}

// MockFetchAttributionRows generates sample AttributionRow data for demonstration.
func MockFetchAttributionRows() []AttributionRow {
	return []AttributionRow{
		{
			AnalysisID:  4,
			Model:       "linear",
			Channel:     "google_search",
			ChannelType: "search",
			Credit:      0.42,
			Conversions: 126.0,
			Revenue:     18900.0,
			Cost:        4200.0,
			ROAS:        4.5,
		},
		{
			AnalysisID:  4,
			Model:       "linear",
			Channel:     "instagram",
			ChannelType: "social",
			Credit:      0.35,
			Conversions: 105.0,
			Revenue:     15750.0,
			Cost:        5250.0,
			ROAS:        3.0,
		},
		{
			AnalysisID:  4,
			Model:       "linear",
			Channel:     "email_blast",
			ChannelType: "email",
			Credit:      0.23,
			Conversions: 69.0,
			Revenue:     10350.0,
			Cost:        1150.0,
			ROAS:        9.0,
		},
	}
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:     record.AnalysisID,
			Command:        record.Command,
			WorkspaceName:  record.WorkspaceName,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			FlightsScanned: record.FlightsScanned,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertFlightSignalRecords converts schema.FlightSignalRecord to FlightSignal for Parquet export.
func ConvertFlightSignalRecords(records []schema.FlightSignalRecord) []FlightSignal {
	result := make([]FlightSignal, len(records))
	for i, record := range records {
		result[i] = FlightSignal{
			AnalysisID:     record.AnalysisID,
			FlightID:       record.FlightID,
			FlightName:     record.FlightName,
			AnalysisTime:   record.AnalysisTime,
			RiskScore:      record.RiskScore,
			RiskLevel:      record.RiskLevel,
			PaceVariance:   record.PaceVariance,
			PacingStatus:   record.PacingStatus,
			ProjectedSpend: record.ProjectedSpend,
			AlertCount:     record.AlertCount,
		}
	}
	return result
}

// ConvertAttributionRowRecords converts schema.AttributionRowRecord to AttributionRow for Parquet export.
func ConvertAttributionRowRecords(records []schema.AttributionRowRecord) []AttributionRow {
	result := make([]AttributionRow, len(records))
	for i, record := range records {
		result[i] = AttributionRow{
			AnalysisID:  record.AnalysisID,
			Model:       record.Model,
			Channel:     record.Channel,
			ChannelType: record.ChannelType,
			Credit:      record.Credit,
			Conversions: record.Conversions,
			Revenue:     record.Revenue,
			Cost:        record.Cost,
			ROAS:        record.ROAS,
		}
	}
	return result
}
