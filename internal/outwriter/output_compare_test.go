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

func modelDeltaResult() *schema.ModelDeltaResult {
	return &schema.ModelDeltaResult{
		BaseModel:   schema.FirstTouchModel,
		TargetModel: schema.LastTouchModel,
		Details: []schema.ComparisonDetail{
			{
				Channel:       "Display Retargeting",
				ChannelType:   schema.DisplayChannel,
				BaseCredit:    0.30,
				TargetCredit:  0.45,
				Delta:         0.15,
				BaseRevenue:   3000,
				TargetRevenue: 4500,
				DeltaRevenue:  1500,
			},
			{
				Channel:       "Search Brand",
				ChannelType:   schema.SearchChannel,
				BaseCredit:    0.50,
				TargetCredit:  0.35,
				Delta:         -0.15,
				BaseRevenue:   5000,
				TargetRevenue: 3500,
				DeltaRevenue:  -1500,
			},
		},
		Summary: schema.ComparisonSummary{
			TotalCreditShift:  0.30,
			TotalRevenueShift: 3000,
			MaxGainChannel:    "Display Retargeting",
			MaxLossChannel:    "Search Brand",
			TotalChannels:     2,
			ChannelsGaining:   1,
			ChannelsLosing:    1,
		},
	}
}

func TestWriteModelDeltaTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	result := modelDeltaResult()

	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		Detail:    true,
		UseColors: false,
		Width:     160,
		Workers:   2,
	}

	var buf bytes.Buffer
	duration := 50 * time.Millisecond
	err := writeModelDeltaTable(result, cfg, fmtFloat, duration, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Display Retargeting")
	assert.Contains(t, output, "Search Brand")
	assert.Contains(t, output, "+15.00% ▲")
	assert.Contains(t, output, "-15.00% ▼")
	assert.Contains(t, output, "+1500.00 ▲") // Δ Revenue column from Detail
	assert.Contains(t, output, "Showing top 2 channel shifts (first_touch → last_touch)")
	assert.Contains(t, output, "Total credit shift: 30.00%, total revenue shift: 3000.00")
	assert.Contains(t, output, "Channels gaining: 1, losing: 1 (of 2). Largest gain: Display Retargeting, largest loss: Search Brand")
	assert.Contains(t, output, "Analysis completed in 50ms")
}

func TestWriteModelDeltaTableNoShifts(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	result := &schema.ModelDeltaResult{
		BaseModel:   schema.LinearModel,
		TargetModel: schema.LinearModel,
		Summary:     schema.ComparisonSummary{},
	}

	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		Width:     120,
		Workers:   1,
	}

	var buf bytes.Buffer
	err := writeModelDeltaTable(result, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	// Empty max channels fall back to a dash
	assert.Contains(t, buf.String(), "Largest gain: -, largest loss: -")
}

func TestWriteJSONResultsForModelDelta(t *testing.T) {
	result := modelDeltaResult()

	var buf bytes.Buffer
	err := writeJSONResultsForModelDelta(&buf, result)
	require.NoError(t, err)

	var parsed map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)

	assert.Equal(t, "first_touch", parsed["base_model"])
	assert.Equal(t, "last_touch", parsed["target_model"])
	assert.Contains(t, parsed, "details")
	assert.Contains(t, parsed, "summary")
}

func TestWriteCSVResultsForModelDelta(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	result := modelDeltaResult()

	var buf bytes.Buffer
	err := writeCSVResultsForModelDelta(&buf, result, fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Contains(t, lines[0], "base_credit")
	assert.Contains(t, lines[0], "target_credit")
	assert.Contains(t, lines[1], "Display Retargeting")
	assert.Contains(t, lines[1], "0.15")
	assert.Contains(t, lines[2], "Search Brand")
	assert.Contains(t, lines[2], "-0.15")
}
