package core

import (
	"math"
	"sort"
	"strings"

	"github.com/adlens/adlens/schema"
)

// compareAttributionModels matches channel credit from the base model run
// against the target model run and computes the per-channel deltas.
func compareAttributionModels(baseResults, targetResults []schema.AttributionResult, baseModel, targetModel schema.AttributionModel, limit int) *schema.ModelDeltaResult {
	baseMap := make(map[string]schema.AttributionResult, len(baseResults))
	targetMap := make(map[string]schema.AttributionResult, len(targetResults))
	allChannels := make(map[string]struct{})

	// 1. Populate maps and collect all channels
	for _, r := range baseResults {
		baseMap[r.Channel] = r
		allChannels[r.Channel] = struct{}{}
	}
	for _, r := range targetResults {
		targetMap[r.Channel] = r
		allChannels[r.Channel] = struct{}{}
	}

	details := make([]schema.ComparisonDetail, 0, len(allChannels))

	// Initialize summary accumulators
	var totalCreditShift, totalRevenueShift float64
	var channelsGaining, channelsLosing int
	var maxGain, maxLoss float64
	var maxGainChannel, maxLossChannel string

	// 2. Compare all channels
	for channel := range allChannels {
		// Zero values stand in for channels one model never credited
		baseR := baseMap[channel]
		targetR := targetMap[channel]

		channelType := baseR.ChannelType
		if channelType == "" {
			channelType = targetR.ChannelType
		}

		delta := targetR.Credit - baseR.Credit
		deltaRevenue := targetR.Revenue - baseR.Revenue

		// Accumulate summary
		totalCreditShift += math.Abs(delta)
		totalRevenueShift += math.Abs(deltaRevenue)
		switch {
		case delta > 0:
			channelsGaining++
			if delta > maxGain {
				maxGain = delta
				maxGainChannel = channel
			}
		case delta < 0:
			channelsLosing++
			if delta < maxLoss {
				maxLoss = delta
				maxLossChannel = channel
			}
		}

		details = append(details, schema.ComparisonDetail{
			Channel:       channel,
			ChannelType:   channelType,
			BaseCredit:    baseR.Credit,
			TargetCredit:  targetR.Credit,
			Delta:         delta,
			BaseRevenue:   baseR.Revenue,
			TargetRevenue: targetR.Revenue,
			DeltaRevenue:  deltaRevenue,
		})
	}

	// Sort results
	sortComparisonDetails(details)

	// Apply limit
	if limit > 0 && len(details) > limit {
		details = details[:limit]
	}

	return &schema.ModelDeltaResult{
		BaseModel:   baseModel,
		TargetModel: targetModel,
		Details:     details,
		Summary: schema.ComparisonSummary{
			TotalCreditShift:  totalCreditShift,
			TotalRevenueShift: totalRevenueShift,
			MaxGainChannel:    maxGainChannel,
			MaxLossChannel:    maxLossChannel,
			TotalChannels:     len(allChannels),
			ChannelsGaining:   channelsGaining,
			ChannelsLosing:    channelsLosing,
		},
	}
}

// sortComparisonDetails sorts comparison details by absolute delta, then delta sign, then channel.
func sortComparisonDetails(details []schema.ComparisonDetail) {
	sort.Slice(details, func(i, j int) bool {
		a := details[i]
		b := details[j]

		// Primary: Absolute delta (descending)
		absA := math.Abs(a.Delta)
		absB := math.Abs(b.Delta)
		if absA != absB {
			return absA > absB
		}

		// Secondary: Delta sign (positive before negative)
		if a.Delta != b.Delta {
			return a.Delta > b.Delta
		}

		// Tertiary: Channel name (ascending)
		return strings.Compare(a.Channel, b.Channel) < 0
	})
}
