// internal/browser/driver.go
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/valpere/PeopleScrapexter/internal/antidetect"
	"github.com/valpere/PeopleScrapexter/internal/monitoring"
	"github.com/valpere/PeopleScrapexter/internal/pump"
	"github.com/valpere/PeopleScrapexter/internal/scraper"
	"github.com/valpere/PeopleScrapexter/internal/utils"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// Driver owns one headless Chrome session and provides the page-level
// operations the pipeline needs: navigation, lazy-load pumping, rendered
// snapshots and page-parameter navigation.
type Driver struct {
	ctx    context.Context
	cancel context.CancelFunc
	config *Config
	logger utils.Logger
	stats  *Stats
}

// NewDriver starts a browser session.
func NewDriver(config *Config, logger utils.Logger) (*Driver, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = utils.NewLogger()
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox, // Required for Docker environments
	}
	if config.Headless {
		opts = append(opts, chromedp.Headless)
	}
	if config.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(config.UserDataDir))
	}
	ua := config.UserAgent
	if ua == "" {
		ua = antidetect.RandomUserAgent()
	}
	opts = append(opts, chromedp.UserAgent(ua))
	if config.DisableImages {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)
	if config.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, config.Timeout)
		prev := ctxCancel
		ctxCancel = func() {
			timeoutCancel()
			prev()
		}
	}
	cancel := func() {
		ctxCancel()
		allocCancel()
	}

	d := &Driver{
		ctx:    ctx,
		cancel: cancel,
		config: config,
		logger: logger,
		stats:  &Stats{},
	}

	if err := chromedp.Run(ctx, chromedp.EmulateViewport(int64(config.ViewportWidth), int64(config.ViewportHeight))); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}
	return d, nil
}

// Navigate loads a URL and waits for the body to be ready.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	start := time.Now()
	err := chromedp.Run(d.ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(antidetect.StealthScript, nil),
	)
	if err != nil {
		d.stats.Errors++
		return fmt.Errorf("navigation failed: %w", err)
	}
	d.stats.PagesLoaded++
	load := time.Since(start)
	if d.stats.PagesLoaded == 1 {
		d.stats.AverageLoadTime = load
	} else {
		d.stats.AverageLoadTime = (d.stats.AverageLoadTime + load) / 2
	}
	return nil
}

// CurrentURL returns the page's current address.
func (d *Driver) CurrentURL(ctx context.Context) (string, error) {
	var loc string
	if err := chromedp.Run(d.ctx, chromedp.Location(&loc)); err != nil {
		d.stats.Errors++
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return loc, nil
}

// NavigateToPage rewrites the page query parameter on the current address
// and loads the result.
func (d *Driver) NavigateToPage(ctx context.Context, page int) error {
	current, err := d.CurrentURL(ctx)
	if err != nil {
		return err
	}
	next, err := scraper.RewritePageParam(current, page)
	if err != nil {
		return err
	}
	return d.Navigate(ctx, next)
}

// Observe reads the geometry and result count the pump needs for one tick.
func (d *Driver) Observe(ctx context.Context, variant types.Variant) (pump.Observation, error) {
	profile := scraper.ProfileFor(variant)
	js := fmt.Sprintf(`({
		scrollY: window.scrollY,
		viewportHeight: window.innerHeight,
		documentHeight: Math.max(document.body.scrollHeight, document.documentElement.scrollHeight),
		resultCount: document.querySelectorAll(%q).length,
		loadingVisible: document.querySelectorAll(%q).length > 0
	})`, profile.ResultCountSelector, profile.LoadingSelector)

	var raw struct {
		ScrollY        float64 `json:"scrollY"`
		ViewportHeight float64 `json:"viewportHeight"`
		DocumentHeight float64 `json:"documentHeight"`
		ResultCount    int     `json:"resultCount"`
		LoadingVisible bool    `json:"loadingVisible"`
	}
	if err := chromedp.Run(d.ctx, chromedp.Evaluate(js, &raw)); err != nil {
		d.stats.Errors++
		return pump.Observation{}, fmt.Errorf("observation failed: %w", err)
	}
	return pump.Observation{
		ScrollY:        raw.ScrollY,
		ViewportHeight: raw.ViewportHeight,
		DocumentHeight: raw.DocumentHeight,
		ResultCount:    raw.ResultCount,
		LoadingVisible: raw.LoadingVisible,
	}, nil
}

// scrollStep advances the page by most of one viewport so incremental
// renderers keep appending results.
func (d *Driver) scrollStep(ctx context.Context) error {
	return chromedp.Run(d.ctx, chromedp.Evaluate(`window.scrollBy(0, Math.floor(window.innerHeight * 0.8))`, nil))
}

// scrollTop returns to the top of the page.
func (d *Driver) scrollTop(ctx context.Context) error {
	return chromedp.Run(d.ctx, chromedp.Evaluate(`window.scrollTo(0, 0)`, nil))
}

// PumpLazyContent drives progressive result loading until the pump settles
// or hits its hard attempt cap, then scrolls back to the top and pauses
// briefly. Returns the final scroll percentage for diagnostics.
func (d *Driver) PumpLazyContent(ctx context.Context, variant types.Variant, cfg pump.Config) (float64, error) {
	state := pump.New(cfg)
	d.stats.PumpRuns++

	for {
		if err := d.scrollStep(ctx); err != nil {
			return state.ScrollPercent(), err
		}
		obs, err := d.Observe(ctx, variant)
		if err != nil {
			return state.ScrollPercent(), err
		}
		state.Tick(obs)
		d.stats.PumpTicks++

		if state.Done(obs) {
			break
		}

		select {
		case <-ctx.Done():
			return state.ScrollPercent(), ctx.Err()
		case <-time.After(antidetect.Jitter(state.NextDelay())):
		}
	}

	pct := state.ScrollPercent()
	monitoring.ObservePump(state.Attempts)
	d.logger.WithFields(map[string]interface{}{
		"ticks":   state.Attempts,
		"results": state.ResultCount,
	}).Debug("lazy-load pump settled")

	if err := d.scrollTop(ctx); err != nil {
		return pct, err
	}
	select {
	case <-ctx.Done():
		return pct, ctx.Err()
	case <-time.After(300 * time.Millisecond):
	}
	return pct, nil
}

// annotateSizesJS stamps each plausible card element with its rendered
// height and width so the static extraction pass can read real geometry
// from the snapshot. Capped to keep the pass cheap on huge pages.
const annotateSizesJS = `(() => {
	const els = document.querySelectorAll('li, div, section, article');
	let n = 0;
	for (const el of els) {
		if (n++ > 5000) break;
		const r = el.getBoundingClientRect();
		if (r.height > 0) el.setAttribute('data-rh', String(Math.round(r.height)));
		if (r.width > 0) el.setAttribute('data-rw', String(Math.round(r.width)));
	}
	return n;
})()`

// Snapshot annotates rendered sizes and returns the page's outer HTML.
func (d *Driver) Snapshot(ctx context.Context) (string, error) {
	var html string
	err := chromedp.Run(d.ctx,
		chromedp.Evaluate(annotateSizesJS, nil),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		d.stats.Errors++
		return "", fmt.Errorf("snapshot failed: %w", err)
	}
	return html, nil
}

// GetStats returns driver statistics.
func (d *Driver) GetStats() *Stats {
	return d.stats
}

// Close shuts the browser down.
func (d *Driver) Close() error {
	if d.cancel != nil {
		d.cancel()
	}
	return nil
}
