// internal/benchmark/runner.go
// Package benchmark runs the full measurement and scoring cycle and writes
// the statistics artifact.
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mwiater/frameworkstats/internal/appconfig"
	"github.com/mwiater/frameworkstats/internal/browser"
	"github.com/mwiater/frameworkstats/internal/complexity"
	"github.com/mwiater/frameworkstats/internal/logging"
	"github.com/mwiater/frameworkstats/internal/metrics"
	"github.com/mwiater/frameworkstats/internal/source"
	"github.com/mwiater/frameworkstats/internal/stats"
)

// Sampler produces one browser measurement of a framework demo page.
type Sampler interface {
	Sample(ctx context.Context, id string) (browser.Sample, error)
}

// SourceReader loads the implementation source of every framework.
type SourceReader interface {
	ReadAll(ids []string) (map[string]source.Implementation, error)
}

// Runner sequences reading, measuring, scoring, normalizing, and saving.
// Frameworks and iterations are processed one at a time.
type Runner struct {
	cfg     appconfig.Config
	reader  SourceReader
	sampler Sampler
	scorer  complexity.Scorer
	metrics []stats.Metric
	policy  RetryPolicy
	now     func() time.Time
}

// NewRunner validates the configured metrics and returns a Runner. scorer
// may be nil when complexity scores are carried forward.
func NewRunner(cfg appconfig.Config, reader SourceReader, sampler Sampler, scorer complexity.Scorer) (*Runner, error) {
	ms, err := stats.MetricsByName(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	if cfg.UpdateComplexityScores && scorer == nil {
		return nil, errors.New("benchmark: complexity scoring enabled without a scorer")
	}
	return &Runner{
		cfg:     cfg,
		reader:  reader,
		sampler: sampler,
		scorer:  scorer,
		metrics: ms,
		policy:  RetryPolicy{MaxRetries: cfg.RetryAttempts(), Base: cfg.RetryBackoff()},
		now:     time.Now,
	}, nil
}

// Run produces a complete stats file and persists it. Any framework that
// cannot be measured aborts the run before anything is written.
func (r *Runner) Run(ctx context.Context) (*stats.File, error) {
	ids, err := r.cfg.FrameworkIDs()
	if err != nil {
		return nil, err
	}
	impls, err := r.reader.ReadAll(ids)
	if err != nil {
		return nil, err
	}

	records := make(map[string]stats.FrameworkStats, len(ids))
	for i, id := range ids {
		logging.LogEvent("Measuring %s (%d/%d)", id, i+1, len(ids))
		rec, err := r.measure(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("benchmark: %s: %w", id, err)
		}
		rec.CharacterCount = float64(impls[id].CharacterCount())
		records[id] = rec
		logging.LogEvent("%s: bundle %.2fKB, render %.2fms, %d chars", id, rec.BundleSize, rec.RenderTime, int(rec.CharacterCount))
	}

	scores, err := r.complexityScores(ctx, ids, impls)
	if err != nil {
		return nil, err
	}
	for id, rec := range records {
		rec.ComplexityScore = scores[id]
		records[id] = rec
	}

	file := &stats.File{
		Metadata: stats.Metadata{
			GeneratedAt: r.now().UTC(),
			Metrics:     stats.Descriptions(r.metrics),
			Frameworks:  ids,
		},
		Frameworks: stats.Normalize(records, r.metrics),
	}
	if err := stats.Save(r.cfg.StatsFilePath(), file, r.cfg.FlatOutput); err != nil {
		return nil, err
	}
	logging.LogEvent("Wrote stats for %d frameworks to %s", len(ids), r.cfg.StatsFilePath())
	return file, nil
}

// measure takes max(bundle, render) samples and keeps the median of each series.
func (r *Runner) measure(ctx context.Context, id string) (stats.FrameworkStats, error) {
	bundleRuns, renderRuns := r.cfg.BundleSizeRuns(), r.cfg.RenderTimeRuns()
	n := max(bundleRuns, renderRuns)

	bundles := make([]float64, 0, bundleRuns)
	renders := make([]float64, 0, renderRuns)
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("measure %s iteration %d/%d", id, i+1, n)
		s, err := withRetry(ctx, r.policy, label, func(ctx context.Context) (browser.Sample, error) {
			return r.sampler.Sample(ctx, id)
		})
		if err != nil {
			return stats.FrameworkStats{}, err
		}
		logging.LogDebug("%s: bundle %.2fKB render %.2fms", label, s.BundleSize, s.RenderTime)
		if i < bundleRuns {
			bundles = append(bundles, s.BundleSize)
		}
		if i < renderRuns {
			renders = append(renders, s.RenderTime)
		}
	}

	return stats.FrameworkStats{
		BundleSize: metrics.Round(metrics.Median(bundles), r.cfg.Precision()),
		RenderTime: metrics.Round(metrics.Median(renders), 2),
	}, nil
}

func (r *Runner) complexityScores(ctx context.Context, ids []string, impls map[string]source.Implementation) (map[string]float64, error) {
	if !r.cfg.UpdateComplexityScores {
		return r.carryForward(ids), nil
	}
	return r.scoreRounds(ctx, ids, impls)
}

// carryForward reuses the previous run's complexity scores. Anything missing
// defaults to 0 with a warning.
func (r *Runner) carryForward(ids []string) map[string]float64 {
	path := r.cfg.StatsFilePath()
	prev, err := stats.LoadComplexityScores(path)
	if err != nil {
		logging.LogWarn("Could not read previous complexity scores from %s: %v; defaulting to 0", path, err)
		prev = nil
	}

	out := make(map[string]float64, len(ids))
	for _, id := range ids {
		v, ok := prev[id]
		if !ok {
			if err == nil {
				logging.LogWarn("No previous complexity score for %s; defaulting to 0", id)
			}
			v = 0
		}
		out[id] = v
	}
	return out
}

// scoreRounds runs the scorer over the whole cohort once per round and keeps
// the median score per framework.
func (r *Runner) scoreRounds(ctx context.Context, ids []string, impls map[string]source.Implementation) (map[string]float64, error) {
	rounds := r.cfg.ComplexityRoundCount()
	perID := make(map[string][]float64, len(ids))
	for round := 1; round <= rounds; round++ {
		label := fmt.Sprintf("complexity round %d/%d", round, rounds)
		logging.LogEvent("Running %s", label)
		scores, err := withRetry(ctx, r.policy, label, func(ctx context.Context) (map[string]int, error) {
			return r.scorer.Score(ctx, impls)
		})
		if err != nil {
			return nil, fmt.Errorf("benchmark: %s: %w", label, err)
		}
		for _, id := range ids {
			v, ok := scores[id]
			if !ok {
				return nil, fmt.Errorf("benchmark: %s: no score for %s", label, id)
			}
			perID[id] = append(perID[id], float64(v))
		}
	}

	out := make(map[string]float64, len(ids))
	for _, id := range ids {
		out[id] = metrics.Median(perID[id])
		logging.LogDebug("Complexity %s: rounds %v median %.1f", id, perID[id], out[id])
	}
	return out, nil
}
