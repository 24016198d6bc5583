package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/adlens/adlens/schema"
)

// writeJSONResultsForModelDelta marshals the schema.ModelDeltaResult to JSON and writes it.
func writeJSONResultsForModelDelta(w io.Writer, result *schema.ModelDeltaResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForModelDelta writes the schema.ModelDeltaResult data to a CSV writer.
func writeCSVResultsForModelDelta(w io.Writer, result *schema.ModelDeltaResult, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"rank",
		"channel",
		"channel_type",
		"base_credit",
		"target_credit",
		"delta",
		"base_revenue",
		"target_revenue",
		"delta_revenue",
		"base_model",
		"target_model",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		// 2. Write Data Rows
		for i, d := range result.Details {
			row := []string{
				strconv.Itoa(i + 1),       // Rank
				d.Channel,                 // Channel
				string(d.ChannelType),     // Channel Type
				fmtFloat(d.BaseCredit),    // Base credit share
				fmtFloat(d.TargetCredit),  // Target credit share
				fmtFloat(d.Delta),         // Credit delta (target - base)
				fmtFloat(d.BaseRevenue),   // Base revenue
				fmtFloat(d.TargetRevenue), // Target revenue
				fmtFloat(d.DeltaRevenue),  // Revenue delta
				string(result.BaseModel),
				string(result.TargetModel),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
