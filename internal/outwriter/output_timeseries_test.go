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

func spendCurve() *schema.SpendCurve {
	return &schema.SpendCurve{
		FlightID:   "fl-1",
		FlightName: "Spring Launch",
		Budget:     10000,
		Points: []schema.SpendPoint{
			{
				Date:           time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
				IdealSpend:     1000,
				ProjectedSpend: 1125,
				PaceVariance:   12.5,
			},
			{
				Date:           time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
				IdealSpend:     2000,
				ProjectedSpend: 2250,
				PaceVariance:   12.5,
			},
		},
	}
}

func TestWriteSpendCurveTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	curve := spendCurve()

	cfg := &contract.Config{
		Output:          schema.TextOut,
		Precision:       2,
		UseColors:       false,
		Width:           160,
		Workers:         2,
		SnapshotBackend: schema.SQLiteBackend,
	}

	var buf bytes.Buffer
	err := writeSpendCurveTable(curve, cfg, fmtFloat, 25*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Spend curve for Spring Launch (budget: 10000.00)")
	assert.Contains(t, output, "2025-09-01")
	assert.Contains(t, output, "2025-09-02")
	assert.Contains(t, output, "+12.50% ▲")
	assert.Contains(t, output, "Curve has 2 samples")
	assert.Contains(t, output, "Analysis completed in 25ms")
	assert.Contains(t, output, "Snapshot backend: sqlite")
}

func TestWriteJSONResultsForSpendCurve(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForSpendCurve(&buf, spendCurve())
	require.NoError(t, err)

	var parsed map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	assert.Equal(t, "fl-1", parsed["flightId"])

	points, ok := parsed["points"].([]any)
	require.True(t, ok)
	assert.Len(t, points, 2)
}

func TestWriteCSVResultsForSpendCurve(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	err := writeCSVResultsForSpendCurve(&buf, spendCurve(), fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "flight_id,flight,date,ideal_spend,projected_spend,pace_variance", lines[0])
	assert.Contains(t, lines[1], "fl-1,Spring Launch,2025-09-01,1000.00,1125.00,12.50")
}
