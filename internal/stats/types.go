// Package stats defines the statistics artifact consumed by the comparison
// page, the metric registry used to normalize it and its on-disk format.
package stats

import "time"

// FrameworkStats is the per-framework record of raw measurements and their
// cohort-relative standard scores. Z-score fields are always derived from the
// raw fields and are never authoritative.
type FrameworkStats struct {
	BundleSize      float64 `json:"bundleSize"`
	RenderTime      float64 `json:"renderTime"`
	ComplexityScore float64 `json:"complexityScore"`
	CharacterCount  float64 `json:"characterCount"`

	BundleSizeZScore     float64 `json:"bundleSizeZScore"`
	RenderTimeZScore     float64 `json:"renderTimeZScore"`
	ComplexityZScore     float64 `json:"complexityZScore"`
	CharacterCountZScore float64 `json:"characterCountZScore"`
}

// Metadata describes when and how a File was produced.
type Metadata struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	Metrics     map[string]string `json:"metrics"`
	Frameworks  []string          `json:"frameworks,omitempty"`
}

// File is the canonical statistics artifact.
type File struct {
	Metadata   Metadata                  `json:"metadata"`
	Frameworks map[string]FrameworkStats `json:"frameworks"`
}
