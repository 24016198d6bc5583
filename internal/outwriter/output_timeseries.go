package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSpendCurve outputs the projected spend curve, dispatching based on the output format configured.
func PrintSpendCurve(curve *schema.SpendCurve, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForSpendCurve(w, curve)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForSpendCurve(w, curve, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSpendCurveTable(curve, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSpendCurveTable generates and writes the human-readable table.
func writeSpendCurveTable(curve *schema.SpendCurve, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Spend curve for %s (budget: %s)\n", curve.FlightName, fmtFloat(curve.Budget)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)

	headers := []string{"Date", "Ideal", "Projected", "Variance"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range curve.Points {
		row := []string{
			p.Date.Format(time.DateOnly),
			fmtFloat(p.IdealSpend),
			fmtFloat(p.ProjectedSpend),
			formatSignedDelta(cfg, p.PaceVariance, "%"),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	if _, err := fmt.Fprintf(writer, "Curve has %d samples\n", len(curve.Points)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}
