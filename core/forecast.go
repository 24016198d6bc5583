package core

import (
	"time"

	"github.com/adlens/adlens/core/algo"
	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// BuildSpendCurve samples a flight's cumulative spend projection across its
// schedule: the linear ideal next to the observed daily rate extrapolated
// forward, capped by the engine's spend-cap ratio. It returns nil under the
// same conditions pacing does, since the curve is built from the same inputs.
func BuildSpendCurve(f *schema.Flight, now time.Time, points int, window time.Duration, set *contract.EngineSettings) *schema.SpendCurve {
	if f.StartDate.IsZero() || f.EndDate.IsZero() || f.Delivery == nil {
		return nil
	}

	totalDays := daysCeil(f.EndDate.Sub(f.StartDate))
	if totalDays < 1 {
		totalDays = 1
	}

	// The horizon is the whole flight, or less when a window narrows it.
	horizonDays := totalDays
	if window > 0 {
		if d := daysCeil(now.Add(window).Sub(f.StartDate)); d < horizonDays {
			horizonDays = d
		}
	}
	if horizonDays < 1 {
		horizonDays = 1
	}

	if points < 1 {
		points = 1
	}
	if points > horizonDays {
		points = horizonDays
	}

	daysElapsed := daysCeil(now.Sub(f.StartDate))
	if daysElapsed < 0 {
		daysElapsed = 0
	}
	if daysElapsed > totalDays {
		daysElapsed = totalDays
	}

	dailyRate := 0.0
	if daysElapsed > 0 {
		dailyRate = f.Delivery.ActualSpend / float64(daysElapsed)
	}
	spendCap := f.Budget * set.SpendCapRatio

	curve := &schema.SpendCurve{
		FlightID:   f.ID,
		FlightName: f.Name,
		Budget:     f.Budget,
		Points:     make([]schema.SpendPoint, 0, points),
	}

	for i := 1; i <= points; i++ {
		day := horizonDays * i / points
		ideal := f.Budget * float64(day) / float64(totalDays)
		projected := dailyRate * float64(day)
		if projected > spendCap {
			projected = spendCap
		}
		curve.Points = append(curve.Points, schema.SpendPoint{
			Date:           f.StartDate.AddDate(0, 0, day),
			IdealSpend:     ideal,
			ProjectedSpend: projected,
			PaceVariance:   algo.SafeDiv(projected-ideal, ideal) * 100,
		})
	}

	return curve
}
