package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/adlens/adlens/core/algo"
	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// ErrInvalidTestInput reports an incrementality test with negative group
// totals. Spend, conversions and revenue are cumulative counters and can
// never be negative in a well-formed export.
var ErrInvalidTestInput = errors.New("invalid incrementality test input")

// CalculateIncrementality measures the lift a channel generated over its
// holdout and decides whether the difference is statistically trustworthy.
//
// Lift is (test − control)/control on conversions. Significance comes from
// a pooled two-proportion z-test using spend as the trial count, which
// treats each spent unit as an exposure opportunity; when a group converted
// more than it spent, conversions floor the trial count so proportions stay
// in [0,1]. Confidence is 1 − pValue.
func CalculateIncrementality(test schema.IncrementalityTest, set *contract.EngineSettings) (*schema.IncrementalityResult, error) {
	if err := validateTestGroups(test); err != nil {
		return nil, err
	}

	result := &schema.IncrementalityResult{
		TestID:      test.ID,
		Channel:     test.Channel,
		ChannelType: test.ChannelType,
	}

	// A test group with no activity at all means the experiment has not
	// produced data yet. Report a quiet zero rather than a verdict.
	if test.Test.Spend == 0 && test.Test.Conversions == 0 && test.Test.Revenue == 0 {
		result.PValue = 1
		result.Recommendation = schema.MoreDataNeededAction
		return result, nil
	}

	capped := false
	if test.Control.Conversions == 0 {
		// Division by zero would make lift infinite. Report the configured
		// cap so downstream math stays finite, and withhold judgement.
		result.Lift = set.LiftCap
		capped = true
	} else {
		result.Lift = (test.Test.Conversions - test.Control.Conversions) / test.Control.Conversions
	}

	_, pValue := algo.TwoProportionZ(
		test.Control.Conversions, trialCount(test.Control),
		test.Test.Conversions, trialCount(test.Test),
	)
	result.PValue = pValue
	result.Confidence = algo.Clamp01(1 - pValue)
	result.IsSignificant = result.Confidence >= set.SignificanceLevel

	switch {
	case capped:
		result.Recommendation = schema.MoreDataNeededAction
	case result.IsSignificant && result.Lift > 0:
		result.Recommendation = schema.ScaleUpAction
	case result.IsSignificant && result.Lift < 0:
		result.Recommendation = schema.ScaleDownAction
	case !result.IsSignificant && math.Abs(result.Lift) < set.SmallLiftThreshold:
		result.Recommendation = schema.MaintainAction
	default:
		result.Recommendation = schema.MoreDataNeededAction
	}

	return result, nil
}

// CalculateAllIncrementality evaluates every experiment in order. A single
// malformed test fails the batch; partial verdicts over corrupt data are
// worse than no verdict.
func CalculateAllIncrementality(tests []schema.IncrementalityTest, set *contract.EngineSettings) ([]schema.IncrementalityResult, error) {
	results := make([]schema.IncrementalityResult, 0, len(tests))
	for _, t := range tests {
		r, err := CalculateIncrementality(t, set)
		if err != nil {
			return nil, fmt.Errorf("test %q: %w", t.ID, err)
		}
		results = append(results, *r)
	}
	return results, nil
}

// trialCount returns the z-test trial count for a group: spend, floored by
// conversions so the success proportion never exceeds 1.
func trialCount(g schema.TestGroup) float64 {
	if g.Spend < g.Conversions {
		return g.Conversions
	}
	return g.Spend
}

func validateTestGroups(test schema.IncrementalityTest) error {
	for _, g := range []struct {
		name  string
		group schema.TestGroup
	}{
		{"control", test.Control},
		{"test", test.Test},
	} {
		if g.group.Spend < 0 || g.group.Conversions < 0 || g.group.Revenue < 0 {
			return fmt.Errorf("%w: %s group of %q has negative totals", ErrInvalidTestInput, g.name, test.ID)
		}
	}
	return nil
}
