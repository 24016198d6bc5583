package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/adlens/adlens/schema"
)

// writeJSONResultsForLift writes the incrementality results in JSON format.
func writeJSONResultsForLift(w io.Writer, report *schema.LiftReport) error {
	// 1. Prepare the data structure for JSON with rank added
	type JSONLiftResult struct {
		Rank int `json:"rank"`
		schema.IncrementalityResult
	}

	output := make([]JSONLiftResult, len(report.Results))
	for i, r := range report.Results {
		output[i] = JSONLiftResult{
			Rank:                 i + 1,
			IncrementalityResult: r,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeCSVResultsForLift writes the incrementality results in CSV format.
func writeCSVResultsForLift(w io.Writer, report *schema.LiftReport, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"test_id",
		"channel",
		"channel_type",
		"lift",
		"confidence",
		"p_value",
		"significant",
		"recommendation",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range report.Results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.TestID,
				r.Channel,
				string(r.ChannelType),
				fmtFloat(r.Lift),
				fmtFloat(r.Confidence),
				fmtFloat(r.PValue),
				strconv.FormatBool(r.IsSignificant),
				string(r.Recommendation),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
