// Package ranking orders the framework cohort for display, either by a
// metric and direction or by the persisted display order.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwiater/frameworkstats/internal/stats"
)

// SortOption selects a metric and direction, or None for the saved order.
type SortOption string

const (
	None              SortOption = "none"
	BundleSizeAsc     SortOption = "bundleSizeAsc"
	BundleSizeDsc     SortOption = "bundleSizeDsc"
	ComplexityAsc     SortOption = "complexityAsc"
	ComplexityDsc     SortOption = "complexityDsc"
	RenderTimeAsc     SortOption = "renderTimeAsc"
	RenderTimeDsc     SortOption = "renderTimeDsc"
	CharacterCountAsc SortOption = "characterCountAsc"
	CharacterCountDsc SortOption = "characterCountDsc"
)

type sortKey struct {
	value     func(stats.FrameworkStats) float64
	ascending bool
}

var sortKeys = map[SortOption]sortKey{
	BundleSizeAsc:     {bundleSize, true},
	BundleSizeDsc:     {bundleSize, false},
	ComplexityAsc:     {complexity, true},
	ComplexityDsc:     {complexity, false},
	RenderTimeAsc:     {renderTime, true},
	RenderTimeDsc:     {renderTime, false},
	CharacterCountAsc: {characterCount, true},
	CharacterCountDsc: {characterCount, false},
}

func bundleSize(s stats.FrameworkStats) float64     { return s.BundleSize }
func complexity(s stats.FrameworkStats) float64     { return s.ComplexityScore }
func renderTime(s stats.FrameworkStats) float64     { return s.RenderTime }
func characterCount(s stats.FrameworkStats) float64 { return s.CharacterCount }

// SortOptions lists every accepted option.
func SortOptions() []SortOption {
	return []SortOption{
		None,
		BundleSizeAsc, BundleSizeDsc,
		ComplexityAsc, ComplexityDsc,
		RenderTimeAsc, RenderTimeDsc,
		CharacterCountAsc, CharacterCountDsc,
	}
}

// ParseSortOption accepts an option name case-insensitively. An empty
// string means None.
func ParseSortOption(s string) (SortOption, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return None, nil
	}
	for _, opt := range SortOptions() {
		if strings.EqualFold(s, string(opt)) {
			return opt, nil
		}
	}
	names := make([]string, 0, len(SortOptions()))
	for _, opt := range SortOptions() {
		names = append(names, string(opt))
	}
	return "", fmt.Errorf("unknown sort option %q (valid: %s)", s, strings.Join(names, ", "))
}

// Sort returns ids ordered by opt. None returns the saved display order.
// Ties keep their input order and ids without a record sort as zero.
func Sort(ids []string, records map[string]stats.FrameworkStats, opt SortOption, saved []string) []string {
	key, ok := sortKeys[opt]
	if !ok {
		return append([]string(nil), saved...)
	}
	out := append([]string(nil), ids...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := key.value(records[out[i]]), key.value(records[out[j]])
		if key.ascending {
			return a < b
		}
		return a > b
	})
	return out
}
