package schema

import "time"

// Workspace is the full campaign dataset a single analysis run operates on:
// campaigns with their flights and placements, observed conversion paths,
// holdout experiments, and the addressable segment library.
type Workspace struct {
	Name        string               `json:"name,omitempty"`
	ExportedAt  time.Time            `json:"exportedAt,omitempty"`
	Campaigns   []Campaign           `json:"campaigns"`
	Paths       []ConversionPath     `json:"paths"`
	Experiments []IncrementalityTest `json:"experiments"`
	Segments    []Segment            `json:"segments"`
}

// Flights returns every flight across all campaigns, in campaign order.
func (w *Workspace) Flights() []Flight {
	var out []Flight
	for _, c := range w.Campaigns {
		out = append(out, c.Flights...)
	}
	return out
}

// SegmentByID returns the segment with the given ID, or nil.
func (w *Workspace) SegmentByID(id string) *Segment {
	for i := range w.Segments {
		if w.Segments[i].ID == id {
			return &w.Segments[i]
		}
	}
	return nil
}

// Placements returns every placement across all campaigns and flights.
func (w *Workspace) Placements() []Placement {
	var out []Placement
	for _, c := range w.Campaigns {
		for _, f := range c.Flights {
			out = append(out, f.Placements...)
		}
	}
	return out
}

// WorkspaceMetrics contains all processed data needed for displaying a
// workspace summary.
type WorkspaceMetrics struct {
	Name            string    `json:"name"`
	Campaigns       int       `json:"campaigns"`
	Flights         int       `json:"flights"`
	Placements      int       `json:"placements"`
	Paths           int       `json:"paths"`
	Touchpoints     int       `json:"touchpoints"`
	Experiments     int       `json:"experiments"`
	Segments        int       `json:"segments"`
	Channels        []string  `json:"channels"`
	TotalBudget     float64   `json:"totalBudget"`
	TotalSpend      float64   `json:"totalSpend"`
	TotalRevenue    float64   `json:"totalRevenue"`
	EarliestStart   time.Time `json:"earliestStart"`
	LatestEnd       time.Time `json:"latestEnd"`
	ActiveFlights   int       `json:"activeFlights"`
	FlightsWithData int       `json:"flightsWithData"`
}
