package schema

import "time"

// SpendPoint is one day on a flight's cumulative spend curve.
type SpendPoint struct {
	Date           time.Time `json:"date"`
	IdealSpend     float64   `json:"idealSpend"`     // Linear spend line at this day
	ProjectedSpend float64   `json:"projectedSpend"` // Observed daily rate extrapolated to this day
	PaceVariance   float64   `json:"paceVariance"`   // Percent deviation of projected from ideal
}

// SpendCurve holds the day-by-day spend projection for one flight.
type SpendCurve struct {
	FlightID   string       `json:"flightId"`
	FlightName string       `json:"flightName"`
	Budget     float64      `json:"budget"`
	Points     []SpendPoint `json:"points"`
}
