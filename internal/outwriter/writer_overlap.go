package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/adlens/adlens/schema"
)

// writeCSVResultsForOverlap flattens the overlap matrix into pairwise rows.
// Only the upper triangle is written since the matrix is symmetric.
func writeCSVResultsForOverlap(w io.Writer, report *schema.OverlapReport, fmtFloat func(float64) string) error {
	header := []string{
		"segment_a_id",
		"segment_a",
		"segment_b_id",
		"segment_b",
		"overlap",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		matrix := report.Matrix
		for i := range matrix.SegmentIDs {
			for j := i + 1; j < len(matrix.SegmentIDs); j++ {
				row := []string{
					matrix.SegmentIDs[i],
					matrix.SegmentNames[i],
					matrix.SegmentIDs[j],
					matrix.SegmentNames[j],
					fmtFloat(matrix.At(i, j)),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeJSONResultsForSegments writes the segment performance results in JSON format.
func writeJSONResultsForSegments(w io.Writer, results []schema.SegmentPerformance) error {
	type JSONSegmentResult struct {
		Rank int `json:"rank"`
		schema.SegmentPerformance
	}

	output := make([]JSONSegmentResult, len(results))
	for i, r := range results {
		output[i] = JSONSegmentResult{
			Rank:               i + 1,
			SegmentPerformance: r,
		}
	}
	return writeJSON(w, output)
}

// writeCSVResultsForSegments writes the segment performance results in CSV format.
func writeCSVResultsForSegments(w io.Writer, results []schema.SegmentPerformance, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"segment_id",
		"segment",
		"placements",
		"impressions",
		"clicks",
		"conversions",
		"spend",
		"ctr",
		"cvr",
		"cpa",
		"cpm",
		"roas",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.SegmentID,
				r.SegmentName,
				fmt.Sprintf(intFmt, r.Placements),
				fmtFloat(r.Impressions),
				fmtFloat(r.Clicks),
				fmtFloat(r.Conversions),
				fmtFloat(r.Spend),
				fmtFloat(r.CTR),
				fmtFloat(r.CVR),
				fmtFloat(r.CPA),
				fmtFloat(r.CPM),
				fmtFloat(r.ROAS),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForLookalikes writes the lookalike matches in JSON format.
func writeJSONResultsForLookalikes(w io.Writer, base *schema.Segment, matches []schema.LookalikeMatch) error {
	type JSONLookalikeMatch struct {
		Rank int `json:"rank"`
		schema.LookalikeMatch
	}

	ranked := make([]JSONLookalikeMatch, len(matches))
	for i, m := range matches {
		ranked[i] = JSONLookalikeMatch{
			Rank:           i + 1,
			LookalikeMatch: m,
		}
	}

	output := struct {
		Base    *schema.Segment      `json:"base"`
		Matches []JSONLookalikeMatch `json:"matches"`
	}{
		Base:    base,
		Matches: ranked,
	}
	return writeJSON(w, output)
}

// writeCSVResultsForLookalikes writes the lookalike matches in CSV format.
func writeCSVResultsForLookalikes(w io.Writer, base *schema.Segment, matches []schema.LookalikeMatch, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"base_segment_id",
		"segment_id",
		"segment",
		"category",
		"reach",
		"score",
		"reasons",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, m := range matches {
			rec := []string{
				strconv.Itoa(i + 1),
				base.ID,
				m.Segment.ID,
				m.Segment.Name,
				string(m.Segment.Category),
				strconv.FormatInt(m.Segment.Reach, 10),
				fmtFloat(m.Score),
				strings.Join(m.Reasons, "|"),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForExpansion writes the expansion plan in JSON format.
func writeJSONResultsForExpansion(w io.Writer, goals *schema.ExpansionGoals, snapshot *schema.ExpansionSnapshot, recommendations []schema.ExpansionRecommendation) error {
	output := struct {
		Goals           *schema.ExpansionGoals           `json:"goals"`
		Snapshot        *schema.ExpansionSnapshot        `json:"snapshot"`
		Recommendations []schema.ExpansionRecommendation `json:"recommendations"`
	}{
		Goals:           goals,
		Snapshot:        snapshot,
		Recommendations: recommendations,
	}
	return writeJSON(w, output)
}

// writeCSVResultsForExpansion writes the expansion recommendations in CSV format.
func writeCSVResultsForExpansion(w io.Writer, recommendations []schema.ExpansionRecommendation, _ func(float64) string) error {
	header := []string{
		"rank",
		"priority",
		"reason",
		"suggested_segment_ids",
		"impact",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range recommendations {
			ids := make([]string, len(r.Suggested))
			for j, s := range r.Suggested {
				ids[j] = s.ID
			}
			rec := []string{
				strconv.Itoa(i + 1),
				string(r.Priority),
				r.Reason,
				strings.Join(ids, "|"),
				r.Impact,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
