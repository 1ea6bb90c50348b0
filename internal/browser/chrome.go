package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/mwiater/frameworkstats/internal/appconfig"
	"github.com/mwiater/frameworkstats/internal/logging"
)

// Options configures the Chrome measurer.
type Options struct {
	Headless          bool
	ExecPath          string
	NavigationTimeout time.Duration
	NetworkIdle       time.Duration
	ReadyFlag         string
	ReadyTimeout      time.Duration
}

// OptionsFromConfig maps the browser settings in cfg to Options.
func OptionsFromConfig(cfg appconfig.Config) Options {
	return Options{
		Headless:          cfg.HeadlessEnabled(),
		ExecPath:          cfg.ChromePath,
		NavigationTimeout: cfg.NavigationTimeoutDuration(),
		NetworkIdle:       cfg.NetworkIdle(),
		ReadyFlag:         cfg.ReadyFlagName(),
		ReadyTimeout:      cfg.ReadyTimeout(),
	}
}

// Chrome owns one browser process. Each Measure call opens a fresh tab
// with caching disabled and cookies and cache cleared, then closes it.
type Chrome struct {
	opts          Options
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

const timingScript = `(() => {
  const nav = performance.getEntriesByType('navigation')[0];
  if (!nav) return { found: false };
  const fcp = performance.getEntriesByName('first-contentful-paint')[0];
  return {
    found: true,
    fcp: fcp ? fcp.startTime : 0,
    domContentLoaded: nav.domContentLoadedEventEnd - nav.startTime,
    ttfb: nav.responseStart - nav.requestStart,
    domInteractive: nav.domInteractive,
    loadComplete: nav.loadEventEnd
  };
})()`

type navTiming struct {
	Found            bool    `json:"found"`
	FCP              float64 `json:"fcp"`
	DOMContentLoaded float64 `json:"domContentLoaded"`
	TTFB             float64 `json:"ttfb"`
	DOMInteractive   float64 `json:"domInteractive"`
	LoadComplete     float64 `json:"loadComplete"`
}

func (n navTiming) toTiming() Timing {
	return Timing{
		FirstContentfulPaint: n.FCP,
		DOMContentLoaded:     n.DOMContentLoaded,
		TTFB:                 n.TTFB,
		DOMInteractive:       n.DOMInteractive,
		LoadComplete:         n.LoadComplete,
	}
}

// Launch starts the browser. The caller must Close it.
func Launch(ctx context.Context, opts Options) (*Chrome, error) {
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("browser: launch: %w", err)
	}
	logging.LogEvent("Browser started (headless=%t)", opts.Headless)

	return &Chrome{
		opts:          opts,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}, nil
}

// Close shuts the browser down and releases its resources.
func (c *Chrome) Close() error {
	if c == nil || c.cancelBrowser == nil {
		return nil
	}
	err := chromedp.Cancel(c.browserCtx)
	c.cancelBrowser()
	c.cancelAlloc()
	c.cancelBrowser = nil
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("browser: close: %w", err)
	}
	return nil
}

// Measure loads url in a new tab and collects script bytes and navigation timing.
func (c *Chrome) Measure(ctx context.Context, url string) (PageMetrics, error) {
	tabCtx, cancelTab := chromedp.NewContext(c.browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	if err := chromedp.Run(tabCtx); err != nil {
		return PageMetrics{}, fmt.Errorf("%w: open tab: %v", ErrNavigation, err)
	}

	tracker := newNetworkTracker()
	chromedp.ListenTarget(tabCtx, tracker.handle)

	runCtx := tabCtx
	if c.opts.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(tabCtx, c.opts.NavigationTimeout)
		defer cancel()
	}

	var timing navTiming
	err := chromedp.Run(runCtx,
		network.Enable(),
		network.SetCacheDisabled(true),
		network.ClearBrowserCache(),
		network.ClearBrowserCookies(),
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return waitIdle(ctx, tracker, c.opts.NetworkIdle)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			c.waitReady(ctx, url)
			return nil
		}),
		chromedp.Evaluate(timingScript, &timing),
	)
	if err != nil {
		return PageMetrics{}, fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	if !timing.Found {
		return PageMetrics{}, fmt.Errorf("%w: %s: no navigation timing entry", ErrNavigation, url)
	}

	scripts, total := tracker.scriptsSnapshot()
	for _, s := range scripts {
		logging.LogDebug("Script %s: %.0f bytes", s.URL, s.Bytes)
	}
	t := timing.toTiming()
	logging.LogDebug("Timing %s: ttfb=%.1fms domInteractive=%.1fms domContentLoaded=%.1fms loadComplete=%.1fms fcp=%.1fms",
		url, t.TTFB, t.DOMInteractive, t.DOMContentLoaded, t.LoadComplete, t.FirstContentfulPaint)

	return PageMetrics{ScriptBytes: total, Scripts: scripts, Timing: t}, nil
}

// waitReady polls the page's readiness flag. A page that never sets it is
// measured anyway.
func (c *Chrome) waitReady(ctx context.Context, url string) {
	if c.opts.ReadyFlag == "" || c.opts.ReadyTimeout <= 0 {
		return
	}
	readyCtx, cancel := context.WithTimeout(ctx, c.opts.ReadyTimeout)
	defer cancel()

	expr := fmt.Sprintf("Boolean(window[%q])", c.opts.ReadyFlag)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		var ready bool
		if err := chromedp.Evaluate(expr, &ready).Do(readyCtx); err == nil && ready {
			return
		}
		select {
		case <-readyCtx.Done():
			logging.LogDebug("Readiness flag %s not set on %s after %s", c.opts.ReadyFlag, url, c.opts.ReadyTimeout)
			return
		case <-ticker.C:
		}
	}
}
