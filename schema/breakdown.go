package schema

// Display names for the delivery risk factors, used in alerts and tables.
var factorNames = map[FactorKey]string{
	FactorBudgetPacing: "Budget Pacing",
	FactorDeliveryGap:  "Delivery vs Forecast",
	FactorTimePressure: "Time Pressure",
	FactorEngagement:   "Engagement",
	FactorFlightStatus: "Flight Status",
}

// One-line factor descriptions for the metrics command.
var factorDescriptions = map[FactorKey]string{
	FactorBudgetPacing: "absolute pace variance against the linear spend line",
	FactorDeliveryGap:  "gap between delivered and forecast impressions",
	FactorTimePressure: "days remaining before the flight ends",
	FactorEngagement:   "click-through rate against benchmark tiers",
	FactorFlightStatus: "penalty for paused or draft flights",
}

// FactorName returns the display name for a risk factor key.
func FactorName(key FactorKey) string {
	if name, ok := factorNames[key]; ok {
		return name
	}
	return string(key)
}

// FactorDescription returns the one-line description for a risk factor key.
func FactorDescription(key FactorKey) string {
	return factorDescriptions[key]
}
