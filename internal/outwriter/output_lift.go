package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintLiftReport outputs the incrementality results, dispatching based on the output format configured.
func PrintLiftReport(report *schema.LiftReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForLift(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForLift(w, report, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLiftTable(report, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeLiftTable generates and writes the human-readable table.
func writeLiftTable(report *schema.LiftReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Test", "Channel", "Type", "Lift", "Confidence", "P-Value", "Verdict", "Action"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var green, yellow func(...any) string
	if cfg.UseColors {
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	var data [][]string
	numSignificant := 0
	for i, r := range report.Results {
		verdict := yellow("inconclusive")
		if r.IsSignificant {
			verdict = green("significant")
			numSignificant++
		}
		row := []string{
			strconv.Itoa(i + 1),
			r.TestID,
			contract.TruncateName(r.Channel, GetMaxTableNameWidth(cfg)),
			schema.DisplayEnum(r.ChannelType),
			formatSignedDelta(cfg, r.Lift*100, "%"),
			formatPercent(fmtFloat, r.Confidence),
			fmtFloat(r.PValue),
			verdict,
			schema.DisplayEnum(r.Recommendation),
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
	if _, err := fmt.Fprintf(writer, "Showing %d experiments (%d significant)\n", len(report.Results), numSignificant); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers.\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}
