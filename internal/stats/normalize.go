package stats

import (
	"fmt"
	"strings"

	"github.com/mwiater/frameworkstats/internal/metrics"
)

// Metric pairs a raw FrameworkStats field with the z-score field derived from it.
type Metric struct {
	Name        string
	ZScoreField string
	Description string
	Raw         func(FrameworkStats) float64
	SetZScore   func(*FrameworkStats, float64)
}

var registry = []Metric{
	{
		Name:        "bundleSize",
		ZScoreField: "bundleSizeZScore",
		Description: "Total on-wire size of JavaScript loaded by the demo page, in kilobytes (median of runs)",
		Raw:         func(s FrameworkStats) float64 { return s.BundleSize },
		SetZScore:   func(s *FrameworkStats, z float64) { s.BundleSizeZScore = z },
	},
	{
		Name:        "complexityScore",
		ZScoreField: "complexityZScore",
		Description: "Model-assessed implementation complexity from 0 (simplest) to 100 (median of rounds)",
		Raw:         func(s FrameworkStats) float64 { return s.ComplexityScore },
		SetZScore:   func(s *FrameworkStats, z float64) { s.ComplexityZScore = z },
	},
	{
		Name:        "renderTime",
		ZScoreField: "renderTimeZScore",
		Description: "First contentful paint, or DOM content loaded when unavailable, in milliseconds (median of runs)",
		Raw:         func(s FrameworkStats) float64 { return s.RenderTime },
		SetZScore:   func(s *FrameworkStats, z float64) { s.RenderTimeZScore = z },
	},
	{
		Name:        "characterCount",
		ZScoreField: "characterCountZScore",
		Description: "Implementation source length excluding comments and whitespace",
		Raw:         func(s FrameworkStats) float64 { return s.CharacterCount },
		SetZScore:   func(s *FrameworkStats, z float64) { s.CharacterCountZScore = z },
	},
}

// Metrics returns every registered metric.
func Metrics() []Metric {
	out := make([]Metric, len(registry))
	copy(out, registry)
	return out
}

// MetricsByName resolves metric names against the registry. An empty list
// selects every registered metric.
func MetricsByName(names []string) ([]Metric, error) {
	if len(names) == 0 {
		return Metrics(), nil
	}
	out := make([]Metric, 0, len(names))
	var unknown []string
	for _, name := range names {
		m, ok := lookupMetric(strings.TrimSpace(name))
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		out = append(out, m)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown metrics: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

func lookupMetric(name string) (Metric, bool) {
	for _, m := range registry {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// Descriptions maps each metric's raw and z-score field names to a
// human readable description for the file metadata.
func Descriptions(ms []Metric) map[string]string {
	out := make(map[string]string, len(ms)*2)
	for _, m := range ms {
		out[m.Name] = m.Description
		out[m.ZScoreField] = fmt.Sprintf("Standard score of %s relative to all compared frameworks", m.Name)
	}
	return out
}

// Normalize folds NormalizeMetric over ms in order. Each step reads the
// previous step's output; the input map is not modified.
func Normalize(records map[string]FrameworkStats, ms []Metric) map[string]FrameworkStats {
	current := clone(records)
	for _, m := range ms {
		current = NormalizeMetric(current, m)
	}
	return current
}

// NormalizeMetric returns a copy of records with m's z-score field set to
// (value - mean) / stddev over the whole cohort, or 0 when every value is equal.
func NormalizeMetric(records map[string]FrameworkStats, m Metric) map[string]FrameworkStats {
	values := make(map[string]float64, len(records))
	for id, rec := range records {
		values[id] = m.Raw(rec)
	}
	scores, _ := metrics.ZScores(values)

	out := clone(records)
	for id, rec := range out {
		m.SetZScore(&rec, scores[id])
		out[id] = rec
	}
	return out
}

func clone(records map[string]FrameworkStats) map[string]FrameworkStats {
	out := make(map[string]FrameworkStats, len(records))
	for id, rec := range records {
		out[id] = rec
	}
	return out
}
