// Package agg has aggregation logic for campaign workspace data.
package agg

import (
	"sort"
	"time"

	"github.com/adlens/adlens/schema"
)

// BuildWorkspaceMetrics rolls a workspace up into the summary rendered by
// the metrics command: entity counts, budget/spend/revenue totals, the
// channel inventory observed across conversion paths, and the flight
// date range.
func BuildWorkspaceMetrics(ws *schema.Workspace) *schema.WorkspaceMetrics {
	m := &schema.WorkspaceMetrics{
		Name:        ws.Name,
		Campaigns:   len(ws.Campaigns),
		Paths:       len(ws.Paths),
		Experiments: len(ws.Experiments),
		Segments:    len(ws.Segments),
	}

	// 1. Flight rollups: counts, budget/spend totals and the date range
	for i := range ws.Campaigns {
		for j := range ws.Campaigns[i].Flights {
			aggregateFlight(m, &ws.Campaigns[i].Flights[j])
		}
	}

	// 2. Path rollups: touchpoints, conversion revenue and channels
	for i := range ws.Paths {
		m.Touchpoints += len(ws.Paths[i].Touchpoints)
		m.TotalRevenue += ws.Paths[i].ConversionValue
	}
	m.Channels = CollectChannels(ws.Paths)

	return m
}

// aggregateFlight folds a single flight into the workspace summary.
func aggregateFlight(m *schema.WorkspaceMetrics, f *schema.Flight) {
	m.Flights++
	m.Placements += len(f.Placements)
	m.TotalBudget += f.Budget

	if f.Delivery != nil {
		m.TotalSpend += f.Delivery.ActualSpend
	}
	if f.Status == schema.ActiveStatus {
		m.ActiveFlights++
	}
	if f.Performance != nil || f.Delivery != nil {
		m.FlightsWithData++
	}

	m.EarliestStart = earlierOf(m.EarliestStart, f.StartDate)
	m.LatestEnd = laterOf(m.LatestEnd, f.EndDate)
}

// earlierOf returns the earlier of two timestamps, ignoring zero candidates.
func earlierOf(current, candidate time.Time) time.Time {
	if candidate.IsZero() {
		return current
	}
	if current.IsZero() || candidate.Before(current) {
		return candidate
	}
	return current
}

// laterOf returns the later of two timestamps, ignoring zero candidates.
func laterOf(current, candidate time.Time) time.Time {
	if candidate.IsZero() {
		return current
	}
	if current.IsZero() || candidate.After(current) {
		return candidate
	}
	return current
}

// CollectChannels returns the sorted set of channel names observed across
// the touchpoints of the given conversion paths.
func CollectChannels(paths []schema.ConversionPath) []string {
	// Use struct{} for zero-memory value.
	seen := make(map[string]struct{})
	for i := range paths {
		for _, tp := range paths[i].Touchpoints {
			if tp.Channel != "" {
				seen[tp.Channel] = struct{}{}
			}
		}
	}

	channels := make([]string, 0, len(seen))
	for c := range seen {
		channels = append(channels, c)
	}
	sort.Strings(channels)
	return channels
}

// CollectAlerts flattens the alerts embedded in per-flight signals into a
// single slice, in signal order. Callers that need a severity ordering
// should sort the result afterwards.
func CollectAlerts(signals []schema.FlightSignals) []schema.PredictiveAlert {
	var alerts []schema.PredictiveAlert
	for i := range signals {
		alerts = append(alerts, signals[i].Alerts()...)
	}
	return alerts
}

// CollectOpportunityAlerts extracts the alerts attached to opportunity
// scores, skipping opportunities that never crossed the alert threshold.
func CollectOpportunityAlerts(opps []schema.OpportunityScore) []schema.PredictiveAlert {
	var alerts []schema.PredictiveAlert
	for i := range opps {
		if opps[i].Alert != nil {
			alerts = append(alerts, *opps[i].Alert)
		}
	}
	return alerts
}
