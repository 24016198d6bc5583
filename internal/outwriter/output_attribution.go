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

// PrintAttributionReport outputs the attribution results, dispatching based on the output format configured.
func PrintAttributionReport(report *schema.AttributionReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForAttribution(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForAttribution(w, report, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAttributionTable(report, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeAttributionTable generates and writes the human-readable table.
func writeAttributionTable(report *schema.AttributionReport, cfg *contract.Config, fmtFloat func(float64) string, _ string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Channel", "Type", "Credit", "Conversions", "Revenue", "ROAS"}
	if cfg.Detail {
		headers = append(headers, "Cost")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, r := range report.Results {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncateName(r.Channel, GetMaxTableNameWidth(cfg)), // Channel
			schema.DisplayEnum(r.ChannelType),                           // Type
			formatPercent(fmtFloat, r.Credit),                           // Credit share
			fmtFloat(r.Conversions),                                     // Conversions
			fmtFloat(r.Revenue),                                         // Revenue
			fmtFloat(r.ROAS),                                            // ROAS
		}
		if cfg.Detail {
			row = append(row, fmtFloat(r.Cost))
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

	// Optional per-model credit table when a comparison was requested
	if report.Comparison != nil {
		if err := writeModelCreditTable(report.Comparison, cfg, fmtFloat, writer); err != nil {
			return err
		}
	}

	// Compute summary stats
	numChannels := len(report.Results)
	var totalConversions, totalRevenue float64
	for _, r := range report.Results {
		totalConversions += r.Conversions
		totalRevenue += r.Revenue
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d channels under %s (conversions: %s, revenue: %s)\n", numChannels, report.Model, fmtFloat(totalConversions), fmtFloat(totalRevenue)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}

// writeModelCreditTable renders the credit share of every channel under every
// model, so shifts between models are visible side by side.
func writeModelCreditTable(comparison *schema.ModelComparison, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Credit share by model:\n"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)

	headers := []string{"Channel"}
	for _, m := range schema.AllAttributionModels {
		headers = append(headers, schema.DisplayEnum(m))
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// Channels appear in the order the first model ranks them; channels only
	// present under later models are appended.
	var channels []string
	credit := make(map[string]map[schema.AttributionModel]float64)
	for _, m := range schema.AllAttributionModels {
		for _, r := range comparison.ByModel(m) {
			if _, ok := credit[r.Channel]; !ok {
				channels = append(channels, r.Channel)
				credit[r.Channel] = make(map[schema.AttributionModel]float64)
			}
			credit[r.Channel][m] = r.Credit
		}
	}

	var data [][]string
	for _, channel := range channels {
		row := []string{contract.TruncateName(channel, GetMaxTableNameWidth(cfg))}
		for _, m := range schema.AllAttributionModels {
			row = append(row, formatPercent(fmtFloat, credit[channel][m]))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
