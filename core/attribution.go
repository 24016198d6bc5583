package core

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// ErrInvalidModel reports an attribution model outside the supported set.
// Callers get the error immediately rather than results from a silently
// substituted default.
var ErrInvalidModel = errors.New("invalid attribution model")

// CalculateAttribution splits each conversion path's credit across its
// touchpoints under the given model, then aggregates per channel.
//
// Credit in each result is the channel's share of total credit, so the
// column sums to 1 over a non-empty result set. Conversions and Revenue are
// credit-weighted. Cost is the plain sum of touchpoint costs: spend already
// happened and no model reallocates it.
func CalculateAttribution(paths []schema.ConversionPath, model schema.AttributionModel, set *contract.EngineSettings) ([]schema.AttributionResult, error) {
	if _, ok := schema.ValidAttributionModels[model]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidModel, model)
	}
	if len(paths) == 0 {
		return []schema.AttributionResult{}, nil
	}

	acc := make(map[string]*schema.AttributionResult)
	totalCredit := 0.0

	for pi := range paths {
		path := &paths[pi]
		credits := creditTouchpoints(path, model, set)
		if credits == nil {
			continue // zero-touchpoint path
		}

		for ti := range path.Touchpoints {
			tp := &path.Touchpoints[ti]
			r, ok := acc[tp.Channel]
			if !ok {
				r = &schema.AttributionResult{
					Channel:     tp.Channel,
					ChannelType: tp.ChannelType,
				}
				acc[tp.Channel] = r
			}

			credit := credits[ti]
			r.Credit += credit
			r.Conversions += credit
			r.Revenue += credit * path.ConversionValue
			r.Cost += tp.Cost
			totalCredit += credit
		}
	}

	results := make([]schema.AttributionResult, 0, len(acc))
	for _, r := range acc {
		if totalCredit > 0 {
			r.Credit /= totalCredit
		}
		if r.Cost > 0 {
			r.ROAS = r.Revenue / r.Cost
		}
		results = append(results, *r)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Revenue != results[j].Revenue {
			return results[i].Revenue > results[j].Revenue
		}
		return results[i].Channel < results[j].Channel
	})

	return results, nil
}

// CompareModels runs every attribution model over the same paths so channel
// credit can be compared side by side.
func CompareModels(paths []schema.ConversionPath, set *contract.EngineSettings) (*schema.ModelComparison, error) {
	comparison := &schema.ModelComparison{}
	for _, model := range schema.AllAttributionModels {
		results, err := CalculateAttribution(paths, model, set)
		if err != nil {
			return nil, err
		}
		comparison.SetModel(model, results)
	}
	return comparison, nil
}

// creditTouchpoints returns the per-touchpoint credit split for one path.
// The returned slice aligns with path.Touchpoints and sums to 1. A path
// without touchpoints returns nil: it carries a conversion we cannot place,
// so it contributes nothing rather than erroring.
func creditTouchpoints(path *schema.ConversionPath, model schema.AttributionModel, set *contract.EngineSettings) []float64 {
	n := len(path.Touchpoints)
	if n == 0 {
		return nil
	}

	credits := make([]float64, n)
	switch model {
	case schema.FirstTouchModel:
		credits[0] = 1.0
	case schema.LastTouchModel:
		credits[n-1] = 1.0
	case schema.LinearModel:
		for i := range credits {
			credits[i] = 1.0 / float64(n)
		}
	case schema.TimeDecayModel:
		fillTimeDecayCredits(path, credits, set)
	case schema.PositionBasedModel:
		fillPositionCredits(credits)
	}
	return credits
}

// fillTimeDecayCredits weights each touchpoint by 2^(-age/halfLife), where
// age is the time from the touchpoint to the path's conversion instant.
// Touchpoints recorded after the conversion instant count as age zero.
func fillTimeDecayCredits(path *schema.ConversionPath, credits []float64, set *contract.EngineSettings) {
	conversion := path.ConversionTime()
	halfLife := set.HalfLife.Hours()

	sum := 0.0
	for i := range path.Touchpoints {
		age := conversion.Sub(path.Touchpoints[i].Timestamp).Hours()
		if age < 0 {
			age = 0
		}
		w := math.Pow(2, -age/halfLife)
		credits[i] = w
		sum += w
	}

	if sum == 0 {
		// All weights underflowed; fall back to an even split
		for i := range credits {
			credits[i] = 1.0 / float64(len(credits))
		}
		return
	}
	for i := range credits {
		credits[i] /= sum
	}
}

// fillPositionCredits gives 40% to the first touch, 40% to the last and
// splits the remaining 20% across the middle. One touchpoint takes it all;
// two split evenly.
func fillPositionCredits(credits []float64) {
	n := len(credits)
	switch n {
	case 1:
		credits[0] = 1.0
	case 2:
		credits[0] = 0.5
		credits[1] = 0.5
	default:
		credits[0] = 0.4
		credits[n-1] = 0.4
		middle := 0.2 / float64(n-2)
		for i := 1; i < n-1; i++ {
			credits[i] = middle
		}
	}
}
