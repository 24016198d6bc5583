package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/adlens/adlens/schema"
)

// writeJSONResultsForAttribution writes the attribution report in JSON format.
func writeJSONResultsForAttribution(w io.Writer, report *schema.AttributionReport) error {
	// 1. Prepare the data structure for JSON with rank added
	type JSONAttributionResult struct {
		Rank int `json:"rank"`
		schema.AttributionResult
	}

	results := make([]JSONAttributionResult, len(report.Results))
	for i, r := range report.Results {
		results[i] = JSONAttributionResult{
			Rank:              i + 1,
			AttributionResult: r,
		}
	}

	output := struct {
		Model      schema.AttributionModel `json:"model"`
		Results    []JSONAttributionResult `json:"results"`
		Comparison *schema.ModelComparison `json:"comparison,omitempty"`
	}{
		Model:      report.Model,
		Results:    results,
		Comparison: report.Comparison,
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeCSVResultsForAttribution writes the attribution results in CSV format.
func writeCSVResultsForAttribution(w io.Writer, report *schema.AttributionReport, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"channel",
		"channel_type",
		"credit",
		"conversions",
		"revenue",
		"cost",
		"roas",
		"model",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range report.Results {
			rec := []string{
				strconv.Itoa(i + 1),   // Rank
				r.Channel,             // Channel
				string(r.ChannelType), // Channel Type
				fmtFloat(r.Credit),    // Credit share
				fmtFloat(r.Conversions),
				fmtFloat(r.Revenue),
				fmtFloat(r.Cost),
				fmtFloat(r.ROAS),
				string(report.Model), // Model
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
