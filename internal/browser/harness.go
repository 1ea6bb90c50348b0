package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/mwiater/frameworkstats/internal/appconfig"
	"github.com/mwiater/frameworkstats/internal/metrics"
)

// Sample is one measurement of a framework demo page.
type Sample struct {
	RenderTime float64 // milliseconds
	BundleSize float64 // kilobytes, rounded to the configured precision
}

// Harness produces one validated Sample per call. It never retries.
type Harness struct {
	measurer      Measurer
	baseURL       string
	maxRenderTime time.Duration
	precision     int
}

// NewHarness builds a Harness over m using the preview URL, render-time
// ceiling, and bundle-size precision from cfg.
func NewHarness(m Measurer, cfg appconfig.Config) *Harness {
	return &Harness{
		measurer:      m,
		baseURL:       cfg.PreviewBaseURL(),
		maxRenderTime: cfg.MaxRenderTime(),
		precision:     cfg.Precision(),
	}
}

// URL returns the isolated demo route for id.
func (h *Harness) URL(id string) string {
	return h.baseURL + "/" + id
}

// Sample measures the demo page of framework id once.
func (h *Harness) Sample(ctx context.Context, id string) (Sample, error) {
	pm, err := h.measurer.Measure(ctx, h.URL(id))
	if err != nil {
		return Sample{}, fmt.Errorf("measure %s: %w", id, err)
	}

	render := pm.Timing.RenderTime()
	maxMs := float64(h.maxRenderTime.Milliseconds())
	switch {
	case render <= 0:
		return Sample{}, fmt.Errorf("%w: %s render time %.2fms is not positive", ErrInvalidMeasurement, id, render)
	case maxMs > 0 && render > maxMs:
		return Sample{}, fmt.Errorf("%w: %s render time %.2fms exceeds %.0fms", ErrInvalidMeasurement, id, render, maxMs)
	}

	return Sample{
		RenderTime: render,
		BundleSize: metrics.Round(pm.ScriptBytes/1024, h.precision),
	}, nil
}
