package schema

import "time"

// Touchpoint is a single channel interaction within a conversion path.
// Touchpoints are ordered chronologically within their path and are
// immutable once created.
type Touchpoint struct {
	Channel     string      `json:"channel"`
	ChannelType ChannelType `json:"channelType"`
	Timestamp   time.Time   `json:"timestamp"`
	Cost        float64     `json:"cost"`
}

// ConversionPath is an ordered journey of touchpoints ending in a conversion.
// The first touchpoint is the earliest.
type ConversionPath struct {
	ID                    string       `json:"id"`
	Touchpoints           []Touchpoint `json:"touchpoints"`
	ConversionValue       float64      `json:"conversionValue"`
	TimeToConversionHours float64      `json:"timeToConversionHours"`
}

// ConversionTime returns the instant the path converted. When the path
// records a positive time-to-conversion it is measured from the first
// touchpoint; otherwise the last touchpoint's timestamp stands in.
func (p *ConversionPath) ConversionTime() time.Time {
	if len(p.Touchpoints) == 0 {
		return time.Time{}
	}
	if p.TimeToConversionHours > 0 {
		return p.Touchpoints[0].Timestamp.Add(time.Duration(p.TimeToConversionHours * float64(time.Hour)))
	}
	return p.Touchpoints[len(p.Touchpoints)-1].Timestamp
}

// FlightPerformance holds observed performance for a flight.
// Rates (ctr, cvr) are percentages; roas is a plain ratio.
type FlightPerformance struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	CTR         float64 `json:"ctr"`
	CVR         float64 `json:"cvr"`
	ROAS        float64 `json:"roas"`
}

// FlightDelivery holds ad-server delivery actuals for a flight.
type FlightDelivery struct {
	ActualSpend       float64 `json:"actualSpend"`
	ActualImpressions int64   `json:"actualImpressions"`
	Pacing            float64 `json:"pacing"`
	Status            string  `json:"status"`
}

// FlightForecast holds the planned delivery expectations for a flight.
type FlightForecast struct {
	Impressions int64   `json:"impressions"`
	Reach       int64   `json:"reach"`
	Frequency   float64 `json:"frequency"`
}

// FlightGoals holds optional performance targets for a flight.
// A zero value means no goal was set for that metric.
type FlightGoals struct {
	Impressions float64 `json:"impressions,omitempty"`
	Clicks      float64 `json:"clicks,omitempty"`
	Conversions float64 `json:"conversions,omitempty"`
	Spend       float64 `json:"spend,omitempty"`
}

// PlacementPerformance holds observed performance for a single placement.
type PlacementPerformance struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	Spend       float64 `json:"spend"`
}

// Placement is a buy within a flight, optionally targeted at segments.
type Placement struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	SegmentIDs  []string              `json:"segmentIds,omitempty"`
	Performance *PlacementPerformance `json:"performance,omitempty"`
}

// Flight is a scheduled budget allocation within a campaign.
// Performance, delivery, forecast and goals are optional; the analytics
// functions treat their absence as "not applicable" rather than an error.
type Flight struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     time.Time          `json:"endDate"`
	Budget      float64            `json:"budget"`
	Status      FlightStatus       `json:"status"`
	Performance *FlightPerformance `json:"performance,omitempty"`
	Delivery    *FlightDelivery    `json:"delivery,omitempty"`
	Forecast    *FlightForecast    `json:"forecast,omitempty"`
	Goals       *FlightGoals       `json:"goals,omitempty"`
	Placements  []Placement        `json:"placements,omitempty"`
}

// Campaign owns a set of flights under a shared budget and schedule.
type Campaign struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	StartDate   time.Time    `json:"startDate"`
	EndDate     time.Time    `json:"endDate"`
	TotalBudget float64      `json:"totalBudget"`
	Status      FlightStatus `json:"status"`
	Flights     []Flight     `json:"flights"`
}

// Segment is an addressable audience with an estimated reach and a CPM
// premium. Segments are looked up by ID.
type Segment struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  SegmentCategory `json:"category"`
	Reach     int64           `json:"reach"`
	CPMUplift float64         `json:"cpmUplift"`
	Vendor    string          `json:"vendor,omitempty"`
}

// TestGroup holds the observed totals for one arm of an incrementality test.
type TestGroup struct {
	Spend       float64 `json:"spend"`
	Conversions float64 `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// IncrementalityTest is a control/test holdout experiment for one channel.
// Result fields are always recomputed from the groups, never stored.
type IncrementalityTest struct {
	ID          string      `json:"id"`
	Channel     string      `json:"channel"`
	ChannelType ChannelType `json:"channelType"`
	PeriodStart time.Time   `json:"periodStart"`
	PeriodEnd   time.Time   `json:"periodEnd"`
	Control     TestGroup   `json:"controlGroup"`
	Test        TestGroup   `json:"testGroup"`
}
