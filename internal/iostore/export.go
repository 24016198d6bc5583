package iostore

import (
	"errors"
	"fmt"

	"github.com/adlens/adlens/internal/parquet"
)

// ExecuteAnalysisExport performs the actual export of analysis data to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the analysis store
	store := Manager.GetAnalysisStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total flight signal records: %d\n", status.TableSizes[flightSignalsTable])
	fmt.Printf("Total attribution rows: %d\n", status.TableSizes[attributionResultsTable])

	// Retrieve all analysis runs
	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	// Retrieve all flight signals
	flightSignals, err := store.GetAllFlightSignals()
	if err != nil {
		return fmt.Errorf("failed to retrieve flight signals: %w", err)
	}

	// Retrieve all attribution rows
	attributionRows, err := store.GetAllAttributionRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve attribution rows: %w", err)
	}

	// Convert to Parquet format
	parquetAnalysisRuns := parquet.ConvertAnalysisRunRecords(analysisRuns)
	parquetFlightSignals := parquet.ConvertFlightSignalRecords(flightSignals)
	parquetAttributionRows := parquet.ConvertAttributionRowRecords(attributionRows)

	// Write analysis runs to Parquet
	analysisRunsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetAnalysisRuns, analysisRunsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetAnalysisRuns), analysisRunsFile)

	// Write flight signals to Parquet
	flightSignalsFile := outputFile + ".flight_signals.parquet"
	if err := parquet.WriteFlightSignalsParquet(parquetFlightSignals, flightSignalsFile); err != nil {
		return fmt.Errorf("failed to write flight signals: %w", err)
	}
	fmt.Printf("Exported %d flight signal records to: %s\n", len(parquetFlightSignals), flightSignalsFile)

	// Write attribution rows to Parquet
	attributionRowsFile := outputFile + ".attribution_results.parquet"
	if err := parquet.WriteAttributionRowsParquet(parquetAttributionRows, attributionRowsFile); err != nil {
		return fmt.Errorf("failed to write attribution rows: %w", err)
	}
	fmt.Printf("Exported %d attribution rows to: %s\n", len(parquetAttributionRows), attributionRowsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
