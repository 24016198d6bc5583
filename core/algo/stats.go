// Package algo has the shared math and ranking primitives for the analytics
// engines.
package algo

import "math"

// Clamp01 clamps a value to the [0,1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampRange clamps a value to [lo,hi].
func ClampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SafeDiv divides a by b, returning 0 when b is 0. Rate math over sparse
// campaign data divides by zero constantly; a displayed 0 beats a panic.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// NormalCDF evaluates the standard normal cumulative distribution at x.
func NormalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// TwoProportionZ runs a pooled two-proportion z-test: successes1/trials1
// against successes2/trials2. It returns the z statistic and the
// two-tailed p-value. Degenerate inputs (zero trials, zero pooled
// variance) report z=0, p=1, meaning no detectable difference.
func TwoProportionZ(successes1, trials1, successes2, trials2 float64) (z, pValue float64) {
	if trials1 <= 0 || trials2 <= 0 {
		return 0, 1
	}

	p1 := successes1 / trials1
	p2 := successes2 / trials2
	pooled := (successes1 + successes2) / (trials1 + trials2)

	se := math.Sqrt(pooled * (1 - pooled) * (1/trials1 + 1/trials2))
	if se == 0 {
		return 0, 1
	}

	z = (p2 - p1) / se
	pValue = 2 * (1 - NormalCDF(math.Abs(z)))
	return z, ClampRange(pValue, 0, 1)
}

// Round2 rounds to two decimal places for stable presentation values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
