package contract

import (
	"strings"
	"testing"
)

// FuzzShouldExclude fuzzes the ShouldExclude function with random IDs, names
// and exclude patterns.
func FuzzShouldExclude(f *testing.F) {
	seeds := []struct {
		id       string
		name     string
		excludes string // comma-separated
	}{
		{"flight-001", "Brand Awareness Q3", "flight-001"},
		{"flight-002", "Holiday Blitz", "brand,holiday"},
		{"seg-tech", "Tech Enthusiasts", ""},
		{"", "", ""},
		{"flight-003", "Retargeting", " , ,retarget"},
	}
	for _, seed := range seeds {
		f.Add(seed.id, seed.name, seed.excludes)
	}

	f.Fuzz(func(_ *testing.T, id string, name string, excludesStr string) {
		excludes := []string{}
		if excludesStr != "" {
			for ex := range strings.SplitSeq(excludesStr, ",") {
				if trimmed := strings.TrimSpace(ex); trimmed != "" {
					excludes = append(excludes, trimmed)
				}
			}
		}
		_ = ShouldExclude(id, name, excludes)
	})
}

// FuzzTruncateName ensures truncation never panics or exceeds the requested
// width for any rune content.
func FuzzTruncateName(f *testing.F) {
	f.Add("Brand Awareness Q3", 10)
	f.Add("日本語のキャンペーン名", 6)
	f.Add("", 0)
	f.Add("abc", -5)

	f.Fuzz(func(t *testing.T, name string, maxWidth int) {
		result := TruncateName(name, maxWidth)
		if maxWidth > 3 && len([]rune(result)) > max(maxWidth, len([]rune(name))) {
			t.Errorf("TruncateName(%q, %d) = %q exceeds width", name, maxWidth, result)
		}
	})
}
