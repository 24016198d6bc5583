package schema

// CheckSignal identifies which signal a policy check gates on.
type CheckSignal string

// All check signals supported.
const (
	RiskSignal   CheckSignal = "risk"
	PacingSignal CheckSignal = "pacing"
)

// AllCheckSignals lists every signal a policy check evaluates, in display order.
var AllCheckSignals = []CheckSignal{RiskSignal, PacingSignal}

// CheckResult holds the results of a policy check over a workspace.
type CheckResult struct {
	Passed          bool
	FailedFlights   []CheckFailedFlight
	TotalFlights    int
	CheckedSignals  []CheckSignal
	Thresholds      map[CheckSignal]float64
	MaxValues       map[CheckSignal]float64
	MaxValueFlights map[CheckSignal][]CheckMaxValueFlight
	AvgValues       map[CheckSignal]float64 // Average value per signal
}

// CheckMaxValueFlight represents a flight that hit the maximum value for a signal.
type CheckMaxValueFlight struct {
	FlightID   string
	FlightName string
}

// CheckFailedFlight represents a flight that failed the policy check.
type CheckFailedFlight struct {
	FlightID   string
	FlightName string
	Signal     CheckSignal
	Value      float64
	Threshold  float64
}
