package outwriter

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/adlens/adlens/schema"
)

// writeJSONResultsForSpendCurve marshals the schema.SpendCurve to JSON and writes it.
func writeJSONResultsForSpendCurve(w io.Writer, curve *schema.SpendCurve) error {
	return writeJSON(w, curve)
}

// writeCSVResultsForSpendCurve writes the schema.SpendCurve data to a CSV writer.
func writeCSVResultsForSpendCurve(w io.Writer, curve *schema.SpendCurve, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"flight_id",
		"flight",
		"date",
		"ideal_spend",
		"projected_spend",
		"pace_variance",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		// 2. Write Data Rows
		for _, p := range curve.Points {
			row := []string{
				curve.FlightID,
				curve.FlightName,
				p.Date.Format(time.DateOnly),
				fmtFloat(p.IdealSpend),
				fmtFloat(p.ProjectedSpend),
				fmtFloat(p.PaceVariance),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
