// Package browser measures framework demo pages in a headless browser.
//
// A Measurer loads one URL and reports the raw page metrics: the on-wire
// bytes of every script and the navigation-timing fields. The Harness turns
// those metrics into a validated Sample. Chrome is the chromedp-backed
// Measurer used in production; tests substitute a fake.
package browser

import (
	"context"
	"errors"
)

var (
	// ErrInvalidMeasurement marks a render time that is zero, negative, or above the configured maximum.
	ErrInvalidMeasurement = errors.New("invalid measurement")
	// ErrNavigation marks a page that could not be loaded or inspected.
	ErrNavigation = errors.New("navigation failed")
)

// Measurer loads url in a clean browser session and reports what it observed.
type Measurer interface {
	Measure(ctx context.Context, url string) (PageMetrics, error)
}

// Script is one script resource observed while loading a page.
type Script struct {
	URL   string
	Bytes float64
}

// Timing holds navigation-timing fields in milliseconds relative to
// navigation start. FirstContentfulPaint is zero when the browser did not
// report a paint entry.
type Timing struct {
	FirstContentfulPaint float64
	DOMContentLoaded     float64
	TTFB                 float64
	DOMInteractive       float64
	LoadComplete         float64
}

// RenderTime prefers first contentful paint and falls back to DOM content loaded.
func (t Timing) RenderTime() float64 {
	if t.FirstContentfulPaint > 0 {
		return t.FirstContentfulPaint
	}
	return t.DOMContentLoaded
}

// PageMetrics is the raw result of one page load.
type PageMetrics struct {
	ScriptBytes float64
	Scripts     []Script
	Timing      Timing
}
