package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintComparisonResults outputs the model delta results, dispatching based on the output format configured.
func PrintComparisonResults(result *schema.ModelDeltaResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForModelDelta(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForModelDelta(w, result, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelDeltaTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeModelDeltaTable writes the credit shifts in a custom comparison format.
func writeModelDeltaTable(result *schema.ModelDeltaResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	defer func() { _ = table.Close() }()

	// 1. Define Headers (Comparison Mode)
	headers := []string{
		"Rank",
		"Channel",
		"Type",
		"Base",
		"Target",
		"Delta",
	}
	if cfg.Detail {
		headers = append(headers, "Δ Revenue")
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	for i, d := range result.Details {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncateName(d.Channel, GetMaxTableNameWidth(cfg)), // Channel
			schema.DisplayEnum(d.ChannelType),                           // Type
			formatPercent(fmtFloat, d.BaseCredit),                       // Base credit share
			formatPercent(fmtFloat, d.TargetCredit),                     // Target credit share
			formatSignedDelta(cfg, d.Delta*100, "%"),                    // Credit shift in points
		}
		if cfg.Detail {
			row = append(row, formatSignedDelta(cfg, d.DeltaRevenue, ""))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	maxGain := result.Summary.MaxGainChannel
	if maxGain == "" {
		maxGain = "-"
	}
	maxLoss := result.Summary.MaxLossChannel
	if maxLoss == "" {
		maxLoss = "-"
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d channel shifts (%s → %s)\n", len(result.Details), result.BaseModel, result.TargetModel); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Total credit shift: %s, total revenue shift: %s\n", formatPercent(fmtFloat, result.Summary.TotalCreditShift), fmtFloat(result.Summary.TotalRevenueShift)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Channels gaining: %d, losing: %d (of %d). Largest gain: %s, largest loss: %s\n", result.Summary.ChannelsGaining, result.Summary.ChannelsLosing, result.Summary.TotalChannels, maxGain, maxLoss); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers.\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}
