package core

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	"github.com/adlens/adlens/core/algo"
	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// suggestionLimit caps how many segments one expansion recommendation names.
const suggestionLimit = 3

// CalculateOverlap estimates the audience overlap between two segments as a
// deterministic function of their attributes: a base rate from the category
// pair, a bonus for a shared vendor, a reach-affinity term, and a stable
// pseudo-random jitter derived from the ID pair. Identical segments overlap
// fully; distinct segments never exceed 0.95. Symmetric by construction.
func CalculateOverlap(a, b *schema.Segment, set *contract.EngineSettings) float64 {
	if a.ID == b.ID {
		return 1.0
	}

	overlap := categoryBaseRate(a.Category, b.Category)

	if a.Vendor != "" && a.Vendor == b.Vendor {
		overlap += 0.05
	}

	if a.Reach > 0 && b.Reach > 0 {
		minReach, maxReach := float64(a.Reach), float64(b.Reach)
		if minReach > maxReach {
			minReach, maxReach = maxReach, minReach
		}
		overlap += 0.10 * (minReach / maxReach)
	}

	overlap += pairJitter(a.ID, b.ID)

	return algo.ClampRange(overlap, 0, 0.95)
}

// CalculateOverlapMatrix computes pairwise overlaps for a segment set.
// The matrix is symmetric and its diagonal is exactly 1.0.
func CalculateOverlapMatrix(segments []schema.Segment, set *contract.EngineSettings) *schema.OverlapMatrix {
	n := len(segments)
	matrix := &schema.OverlapMatrix{
		SegmentIDs:   make([]string, n),
		SegmentNames: make([]string, n),
		Values:       make([][]float64, n),
	}
	for i := range segments {
		matrix.SegmentIDs[i] = segments[i].ID
		matrix.SegmentNames[i] = segments[i].Name
		matrix.Values[i] = make([]float64, n)
		matrix.Values[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			overlap := CalculateOverlap(&segments[i], &segments[j], set)
			matrix.Values[i][j] = overlap
			matrix.Values[j][i] = overlap
		}
	}
	return matrix
}

// CalculateUniqueReach estimates the deduplicated audience of a segment set
// by sequential marginal accumulation: the first segment contributes its
// full reach, each later segment contributes reach discounted by its average
// overlap with everything before it. The walk is order-sensitive; it
// approximates marginal new reach rather than exact inclusion-exclusion.
func CalculateUniqueReach(segments []schema.Segment, set *contract.EngineSettings) *schema.UniqueReachEstimate {
	estimate := &schema.UniqueReachEstimate{
		SegmentOrder: make([]string, len(segments)),
	}
	if len(segments) == 0 {
		return estimate
	}

	var sumReach, maxReach int64
	for i := range segments {
		estimate.SegmentOrder[i] = segments[i].ID
		sumReach += segments[i].Reach
		if segments[i].Reach > maxReach {
			maxReach = segments[i].Reach
		}
	}

	total := float64(segments[0].Reach)
	for i := 1; i < len(segments); i++ {
		var overlapSum float64
		for j := 0; j < i; j++ {
			overlapSum += CalculateOverlap(&segments[j], &segments[i], set)
		}
		avgOverlap := overlapSum / float64(i)
		total += float64(segments[i].Reach) * (1 - avgOverlap)
	}

	rounded := int64(math.Round(total))
	if rounded < maxReach {
		rounded = maxReach
	}
	if rounded > sumReach {
		rounded = sumReach
	}

	estimate.Total = rounded
	estimate.SumIndividual = sumReach
	estimate.MaxIndividual = maxReach
	if sumReach > 0 {
		estimate.DedupRate = 1 - float64(rounded)/float64(sumReach)
	}
	return estimate
}

// AggregateSegmentPerformance rolls placement performance up to the
// segments each placement targets. A placement's metrics are split equally
// across its segments; IDs that do not resolve in the segment list are
// skipped. Derived rates are zero-guarded and ROAS values conversions at
// the configured average order value. Results are sorted by spend
// descending, segment ID ascending on ties.
func AggregateSegmentPerformance(placements []schema.Placement, segments []schema.Segment, set *contract.EngineSettings) []schema.SegmentPerformance {
	byID := make(map[string]*schema.Segment, len(segments))
	for i := range segments {
		byID[segments[i].ID] = &segments[i]
	}

	accumulated := make(map[string]*schema.SegmentPerformance)
	for pi := range placements {
		p := &placements[pi]
		if p.Performance == nil || len(p.SegmentIDs) == 0 {
			continue
		}
		share := 1.0 / float64(len(p.SegmentIDs))
		for _, segmentID := range p.SegmentIDs {
			segment, ok := byID[segmentID]
			if !ok {
				continue
			}
			perf, ok := accumulated[segmentID]
			if !ok {
				perf = &schema.SegmentPerformance{SegmentID: segment.ID, SegmentName: segment.Name}
				accumulated[segmentID] = perf
			}
			perf.Placements++
			perf.Impressions += float64(p.Performance.Impressions) * share
			perf.Clicks += float64(p.Performance.Clicks) * share
			perf.Conversions += float64(p.Performance.Conversions) * share
			perf.Spend += p.Performance.Spend * share
		}
	}

	results := make([]schema.SegmentPerformance, 0, len(accumulated))
	for _, perf := range accumulated {
		perf.CTR = algo.SafeDiv(perf.Clicks, perf.Impressions) * 100
		perf.CVR = algo.SafeDiv(perf.Conversions, perf.Clicks) * 100
		perf.CPA = algo.SafeDiv(perf.Spend, perf.Conversions)
		perf.CPM = algo.SafeDiv(perf.Spend, perf.Impressions) * 1000
		perf.ROAS = algo.SafeDiv(perf.Conversions*set.AvgOrderValue, perf.Spend)
		results = append(results, *perf)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Spend != results[j].Spend {
			return results[i].Spend > results[j].Spend
		}
		return results[i].SegmentID < results[j].SegmentID
	})
	return results
}

// FindLookalikeSegments scores library segments for similarity to a base
// segment: shared category weighs heaviest, then CPM-uplift closeness,
// reach-ratio similarity, and a shared vendor. Matches below the minimum
// score are dropped and the rest are ranked best first.
func FindLookalikeSegments(base *schema.Segment, library []schema.Segment, exclude []string, set *contract.EngineSettings) []schema.LookalikeMatch {
	excluded := make(map[string]struct{}, len(exclude)+1)
	excluded[base.ID] = struct{}{}
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	var matches []schema.LookalikeMatch
	for i := range library {
		candidate := &library[i]
		if _, skip := excluded[candidate.ID]; skip {
			continue
		}

		var score float64
		var reasons []string

		if candidate.Category == base.Category {
			score += 40
			reasons = append(reasons, fmt.Sprintf("same category (%s)", schema.DisplayEnum(base.Category)))
		}

		upliftGap := math.Abs(base.CPMUplift - candidate.CPMUplift)
		upliftScale := math.Max(base.CPMUplift, 1)
		closeness := 1 - math.Min(1, upliftGap/upliftScale)
		score += 30 * closeness
		if closeness >= 0.5 {
			reasons = append(reasons, "similar CPM uplift")
		}

		if base.Reach > 0 && candidate.Reach > 0 {
			minReach, maxReach := float64(base.Reach), float64(candidate.Reach)
			if minReach > maxReach {
				minReach, maxReach = maxReach, minReach
			}
			ratio := minReach / maxReach
			score += 20 * ratio
			if ratio >= 0.5 {
				reasons = append(reasons, "comparable reach")
			}
		}

		if base.Vendor != "" && base.Vendor == candidate.Vendor {
			score += 10
			reasons = append(reasons, fmt.Sprintf("same vendor (%s)", base.Vendor))
		}

		if score > set.LookalikeMinScore {
			matches = append(matches, schema.LookalikeMatch{
				Segment: *candidate,
				Score:   score,
				Reasons: reasons,
			})
		}
	}

	return algo.RankLookalikes(matches, set.LookalikeLimit)
}

// GenerateExpansionRecommendations suggests library segments to close the
// gaps between an audience plan's goals and its current position. Each rule
// fires independently: a reach shortfall pulls in the broadest segments, a
// high CPA pulls in the cheapest, a weak CVR pulls in high-intent
// categories, and a conversion shortfall pulls in segments balancing reach
// against cost. Unset goals never fire their rule.
func GenerateExpansionRecommendations(current []schema.Segment, goals *schema.ExpansionGoals, perf *schema.ExpansionSnapshot, library []schema.Segment, set *contract.EngineSettings) []schema.ExpansionRecommendation {
	if goals == nil || perf == nil {
		return nil
	}

	candidates := expansionCandidates(current, library)
	if len(candidates) == 0 {
		return nil
	}

	var recs []schema.ExpansionRecommendation

	if goals.TargetReach > 0 && perf.CurrentReach < goals.TargetReach {
		gap := goals.TargetReach - perf.CurrentReach
		broadest := topSegmentsBy(candidates, func(a, b *schema.Segment) bool {
			if a.Reach != b.Reach {
				return a.Reach > b.Reach
			}
			return a.ID < b.ID
		})
		var added int64
		for _, s := range broadest {
			added += s.Reach
		}
		recs = append(recs, schema.ExpansionRecommendation{
			Priority:  schema.HighPriority,
			Reason:    fmt.Sprintf("Reach is %d short of the %d target", gap, goals.TargetReach),
			Suggested: broadest,
			Impact:    fmt.Sprintf("Up to %d additional reach before dedup", added),
		})
	}

	if goals.TargetCPA > 0 && perf.CPA > goals.TargetCPA {
		priority := schema.MediumPriority
		if perf.CPA > 1.5*goals.TargetCPA {
			priority = schema.HighPriority
		}
		cheapest := topSegmentsBy(candidates, func(a, b *schema.Segment) bool {
			if a.CPMUplift != b.CPMUplift {
				return a.CPMUplift < b.CPMUplift
			}
			return a.ID < b.ID
		})
		recs = append(recs, schema.ExpansionRecommendation{
			Priority:  priority,
			Reason:    fmt.Sprintf("CPA $%.2f is above the $%.2f target", perf.CPA, goals.TargetCPA),
			Suggested: cheapest,
			Impact:    "Lower blended media cost from cheaper segments",
		})
	}

	if goals.TargetCVR > 0 && perf.CVR < goals.TargetCVR {
		var highIntent []schema.Segment
		for _, s := range candidates {
			switch s.Category {
			case schema.BehavioralCategory, schema.PixelBasedCategory, schema.FirstPartyCategory:
				highIntent = append(highIntent, s)
			}
		}
		if len(highIntent) > 0 {
			picked := topSegmentsBy(highIntent, func(a, b *schema.Segment) bool {
				if a.Reach != b.Reach {
					return a.Reach > b.Reach
				}
				return a.ID < b.ID
			})
			recs = append(recs, schema.ExpansionRecommendation{
				Priority:  schema.MediumPriority,
				Reason:    fmt.Sprintf("CVR %.2f%% is below the %.2f%% target", perf.CVR, goals.TargetCVR),
				Suggested: picked,
				Impact:    "High-intent audiences tend to convert at a higher rate",
			})
		}
	}

	if goals.TargetConversions > 0 && perf.ProjectedConversions < goals.TargetConversions {
		priority := schema.LowPriority
		if perf.ProjectedConversions < 0.5*goals.TargetConversions {
			priority = schema.HighPriority
		}
		balanced := topSegmentsBy(candidates, func(a, b *schema.Segment) bool {
			scoreA := float64(a.Reach) / (1 + a.CPMUplift)
			scoreB := float64(b.Reach) / (1 + b.CPMUplift)
			if scoreA != scoreB {
				return scoreA > scoreB
			}
			return a.ID < b.ID
		})
		recs = append(recs, schema.ExpansionRecommendation{
			Priority:  priority,
			Reason:    fmt.Sprintf("Projected %.0f conversions against a %.0f goal", perf.ProjectedConversions, goals.TargetConversions),
			Suggested: balanced,
			Impact:    "Reach-per-dollar segments add conversions without blowing the budget",
		})
	}

	algo.SortRecommendations(recs)
	return recs
}

// categoryBaseRate maps a category pair to its base overlap. Pairs are
// checked most specific first; the B2B split outranks the owned-audience
// split when both apply.
func categoryBaseRate(a, b schema.SegmentCategory) float64 {
	switch {
	case a == schema.DemographicsCategory && b == schema.DemographicsCategory:
		return 0.45
	case (a == schema.BehavioralCategory && b == schema.InterestCategory) ||
		(a == schema.InterestCategory && b == schema.BehavioralCategory):
		return 0.35
	case a == b:
		return 0.30
	case (a == schema.B2BCategory) != (b == schema.B2BCategory):
		return 0.08
	case isOwnedAudience(a) != isOwnedAudience(b):
		return 0.10
	default:
		return 0.20
	}
}

// isOwnedAudience reports whether a category is advertiser-owned data
// rather than a purchased third-party audience.
func isOwnedAudience(c schema.SegmentCategory) bool {
	return c == schema.FirstPartyCategory || c == schema.PixelBasedCategory
}

// pairJitter spreads overlap estimates within ±0.04 using an FNV hash of
// the ID pair, ordered so both directions land on the same value.
func pairJitter(idA, idB string) float64 {
	lo, hi := idA, idB
	if hi < lo {
		lo, hi = hi, lo
	}
	h := fnv.New32a()
	h.Write([]byte(lo))
	h.Write([]byte{'|'})
	h.Write([]byte(hi))
	frac := float64(h.Sum32()%10000) / 9999
	return (frac - 0.5) * 0.08
}

// expansionCandidates filters the library down to segments not already in
// the current audience.
func expansionCandidates(current, library []schema.Segment) []schema.Segment {
	inUse := make(map[string]struct{}, len(current))
	for _, s := range current {
		inUse[s.ID] = struct{}{}
	}
	var candidates []schema.Segment
	for _, s := range library {
		if _, used := inUse[s.ID]; !used {
			candidates = append(candidates, s)
		}
	}
	return candidates
}

// topSegmentsBy sorts candidates by the given order and returns the first
// few without mutating the input.
func topSegmentsBy(candidates []schema.Segment, less func(a, b *schema.Segment) bool) []schema.Segment {
	sorted := make([]schema.Segment, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		return less(&sorted[i], &sorted[j])
	})
	if len(sorted) > suggestionLimit {
		sorted = sorted[:suggestionLimit]
	}
	return sorted
}
