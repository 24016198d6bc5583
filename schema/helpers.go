package schema

import (
	"sort"
	"strings"
)

// DisplayEnum renders a snake_case enum value as a human heading,
// e.g. "under_pacing" becomes "Under Pacing".
func DisplayEnum[T ~string](v T) string {
	parts := strings.Split(string(v), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if p == "b2b" {
			parts[i] = "B2B"
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// FormatFactorNames formats risk factor keys as "Budget Pacing, Time Pressure".
func FormatFactorNames(keys []FactorKey) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = FactorName(k)
	}
	return strings.Join(names, ", ")
}

// FormatSegmentNames formats segments as "Urban Millennials, Sports Fans".
func FormatSegmentNames(segments []Segment) string {
	names := make([]string, len(segments))
	for i, s := range segments {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

// SegmentIDsEqual compares two ID slices, considering them equal if they
// contain the same IDs regardless of order.
func SegmentIDsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	aSorted := make([]string, len(a))
	copy(aSorted, a)
	sort.Strings(aSorted)

	bSorted := make([]string, len(b))
	copy(bSorted, b)
	sort.Strings(bSorted)

	for i := range aSorted {
		if aSorted[i] != bSorted[i] {
			return false
		}
	}
	return true
}
