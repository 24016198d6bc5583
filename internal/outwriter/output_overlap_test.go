package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

func overlapReport() *schema.OverlapReport {
	return &schema.OverlapReport{
		Matrix: &schema.OverlapMatrix{
			SegmentIDs:   []string{"seg-1", "seg-2"},
			SegmentNames: []string{"In-Market Auto", "Adults 25-34"},
			Values: [][]float64{
				{1.0, 0.25},
				{0.25, 1.0},
			},
		},
		UniqueReach: &schema.UniqueReachEstimate{
			Total:         120000,
			SumIndividual: 150000,
			MaxIndividual: 100000,
			DedupRate:     0.2,
			SegmentOrder:  []string{"seg-1", "seg-2"},
		},
		Performance: []schema.SegmentPerformance{
			{
				SegmentID:   "seg-1",
				SegmentName: "In-Market Auto",
				Placements:  2,
				Impressions: 150000,
				Clicks:      3000,
				Conversions: 150,
				Spend:       6000,
				CTR:         2.0,
				CVR:         5.0,
				CPA:         40,
				CPM:         40,
				ROAS:        2.5,
			},
		},
	}
}

func TestWriteOverlapTables(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	report := overlapReport()

	cfg := &contract.Config{
		Output:          schema.TextOut,
		Precision:       2,
		UseColors:       false,
		Width:           160,
		Workers:         2,
		SnapshotBackend: schema.SQLiteBackend,
	}

	var buf bytes.Buffer
	err := writeOverlapTables(report, cfg, fmtFloat, intFmt, 10*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "In-Market Auto")
	assert.Contains(t, output, "Adults 25-34")
	assert.Contains(t, output, "100.00%") // diagonal
	assert.Contains(t, output, "25.00%")  // pairwise overlap
	assert.Contains(t, output, "Unique reach: 120000 of 150000 summed (dedup rate: 20.00%, floor: 100000)")
	assert.Contains(t, output, "Showing top 1 segments by spend")
	assert.Contains(t, output, "Analysis completed in 10ms")
}

func TestWriteCSVResultsForOverlap(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	report := &schema.OverlapReport{
		Matrix: &schema.OverlapMatrix{
			SegmentIDs:   []string{"seg-1", "seg-2", "seg-3"},
			SegmentNames: []string{"A", "B", "C"},
			Values: [][]float64{
				{1.0, 0.2, 0.3},
				{0.2, 1.0, 0.4},
				{0.3, 0.4, 1.0},
			},
		},
	}

	var buf bytes.Buffer
	err := writeCSVResultsForOverlap(&buf, report, fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4) // header + upper triangle of a 3x3 matrix

	assert.Contains(t, lines[0], "segment_a")
	assert.Contains(t, lines[1], "seg-1,A,seg-2,B,0.20")
	assert.Contains(t, lines[2], "seg-1,A,seg-3,C,0.30")
	assert.Contains(t, lines[3], "seg-2,B,seg-3,C,0.40")
}

func TestWriteSegmentTable(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	results := overlapReport().Performance

	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		Detail:    true,
		Width:     160,
	}

	var buf bytes.Buffer
	err := writeSegmentTable(results, cfg, fmtFloat, intFmt, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "In-Market Auto")
	assert.Contains(t, output, "2.00%") // CTR
	assert.Contains(t, output, "5.00%") // CVR
	assert.Contains(t, output, "40.00") // CPA column from Detail
}

func TestWriteJSONResultsForSegments(t *testing.T) {
	results := overlapReport().Performance

	var buf bytes.Buffer
	err := writeJSONResultsForSegments(&buf, results)
	require.NoError(t, err)

	var parsed []map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, float64(1), parsed[0]["rank"])
	assert.Equal(t, "In-Market Auto", parsed[0]["segmentName"])
}

func TestWriteLookalikeTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	base := &schema.Segment{
		ID:       "seg-1",
		Name:     "In-Market Auto",
		Category: schema.BehavioralCategory,
		Reach:    100000,
	}
	matches := []schema.LookalikeMatch{
		{
			Segment: schema.Segment{ID: "seg-3", Name: "Sports Fans", Category: schema.InterestCategory, Reach: 80000},
			Score:   65,
			Reasons: []string{"similar reach", "adjacent category"},
		},
	}

	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		Detail:    true,
		Width:     160,
		Workers:   1,
	}

	var buf bytes.Buffer
	err := writeLookalikeTable(base, matches, cfg, fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Lookalikes for In-Market Auto (Behavioral, reach 100000)")
	assert.Contains(t, output, "Sports Fans")
	assert.Contains(t, output, "65.00")
	assert.Contains(t, output, "similar reach; adjacent category")
	assert.Contains(t, output, "Showing top 1 matches")
}

func TestWriteCSVResultsForLookalikes(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	base := &schema.Segment{ID: "seg-1", Name: "In-Market Auto"}
	matches := []schema.LookalikeMatch{
		{
			Segment: schema.Segment{ID: "seg-3", Name: "Sports Fans", Category: schema.InterestCategory, Reach: 80000},
			Score:   65,
			Reasons: []string{"similar reach"},
		},
	}

	var buf bytes.Buffer
	err := writeCSVResultsForLookalikes(&buf, base, matches, fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "base_segment_id")
	assert.Contains(t, lines[1], "seg-1")
	assert.Contains(t, lines[1], "Sports Fans")
	assert.Contains(t, lines[1], "interest")
}

func TestWriteExpansionTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	goals := &schema.ExpansionGoals{TargetReach: 200000, TargetCPA: 35}
	snapshot := &schema.ExpansionSnapshot{
		CurrentReach:         120000,
		CPA:                  40,
		CVR:                  5,
		ProjectedConversions: 150,
	}
	recommendations := []schema.ExpansionRecommendation{
		{
			Priority:  schema.HighPriority,
			Reason:    "Reach is 60% of goal",
			Suggested: []schema.Segment{{ID: "seg-3", Name: "Sports Fans"}},
			Impact:    "Adds up to 80000 unique reach",
		},
	}

	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		UseColors: false,
		Width:     160,
		Workers:   1,
	}

	var buf bytes.Buffer
	err := writeExpansionTable(goals, snapshot, recommendations, cfg, fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Current reach: 120000 (goal 200000)")
	assert.Contains(t, output, "CPA: 40.00 (goal 35.00), CVR: 5.00%")
	// No CVR goal was set, so its suffix is absent
	assert.NotContains(t, output, "CVR: 5.00% (goal")
	assert.Contains(t, output, "Projected conversions: 150.00")
	assert.Contains(t, output, "Reach is 60% of goal")
	assert.Contains(t, output, "Sports Fans")
	assert.Contains(t, output, "Showing 1 recommendations")
}

func TestWriteJSONResultsForExpansion(t *testing.T) {
	goals := &schema.ExpansionGoals{TargetReach: 200000}
	snapshot := &schema.ExpansionSnapshot{CurrentReach: 120000}
	recommendations := []schema.ExpansionRecommendation{
		{Priority: schema.MediumPriority, Reason: "Below reach goal"},
	}

	var buf bytes.Buffer
	err := writeJSONResultsForExpansion(&buf, goals, snapshot, recommendations)
	require.NoError(t, err)

	var parsed map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	assert.Contains(t, parsed, "goals")
	assert.Contains(t, parsed, "snapshot")
	assert.Contains(t, parsed, "recommendations")
}

func TestWriteCSVResultsForExpansion(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	recommendations := []schema.ExpansionRecommendation{
		{
			Priority:  schema.HighPriority,
			Reason:    "Below reach goal",
			Suggested: []schema.Segment{{ID: "seg-3"}, {ID: "seg-4"}},
			Impact:    "Adds unique reach",
		},
	}

	var buf bytes.Buffer
	err := writeCSVResultsForExpansion(&buf, recommendations, fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "high")
	assert.Contains(t, lines[1], "seg-3|seg-4")
}
