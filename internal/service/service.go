// internal/service/service.go
//
// Package service composes the browser driver, the lazy-load pump and the
// extraction engine into the request-level operations exposed by the CLI
// and the HTTP surface.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/PeopleScrapexter/internal/browser"
	"github.com/valpere/PeopleScrapexter/internal/config"
	"github.com/valpere/PeopleScrapexter/internal/output"
	"github.com/valpere/PeopleScrapexter/internal/pump"
	"github.com/valpere/PeopleScrapexter/internal/scraper"
	"github.com/valpere/PeopleScrapexter/internal/utils"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// Service owns one browser session and an extraction engine. Operations are
// one-request/one-response; concurrent overlapping requests are not
// supported and not expected by the protocol.
type Service struct {
	driver *browser.Driver
	engine *scraper.Engine
	cfg    *config.Config
	logger utils.Logger
}

// New starts the browser and prepares the engine.
func New(cfg *config.Config, logger utils.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		logger = utils.NewLogger()
	}

	headless := true
	if cfg.Browser.Headless != nil {
		headless = *cfg.Browser.Headless
	}
	driver, err := browser.NewDriver(&browser.Config{
		Headless:       headless,
		UserAgent:      cfg.Browser.UserAgent,
		UserDataDir:    cfg.Browser.UserDataDir,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		Timeout:        cfg.Browser.Timeout.ToDuration(),
		DisableImages:  cfg.Browser.DisableImages,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Service{
		driver: driver,
		engine: scraper.NewEngine(logger),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// pumpConfig translates the configured tuning.
func (s *Service) pumpConfig() pump.Config {
	return pump.Config{
		BaseDelay:   s.cfg.Pump.BaseDelay.ToDuration(),
		MaxAttempts: s.cfg.Pump.MaxAttempts,
	}
}

// ScrapePage settles lazy-loaded content, snapshots the rendered document
// and runs the extraction pipeline over it. The returned snapshot string is
// non-empty only when zero records were produced.
func (s *Service) ScrapePage(ctx context.Context, variant types.Variant) ([]types.Record, string, error) {
	scrollPct, err := s.driver.PumpLazyContent(ctx, variant, s.pumpConfig())
	if err != nil {
		// A pump failure still leaves whatever content already rendered;
		// extraction proceeds best-effort.
		s.logger.WithField("error", err.Error()).Warn("lazy-load pump did not settle cleanly")
	}

	html, err := s.driver.Snapshot(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to snapshot page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse snapshot: %w", err)
	}

	current, err := s.driver.CurrentURL(ctx)
	if err != nil {
		current = s.cfg.URL
	}

	result, err := s.engine.ScrapeDocument(doc, variant, current, scrollPct)
	if err != nil {
		return nil, "", err
	}
	return result.Records, result.DebugSnapshot, nil
}

// TotalPages reports how many result pages the current document exposes.
func (s *Service) TotalPages(ctx context.Context, variant types.Variant) (int, error) {
	html, err := s.driver.Snapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to snapshot page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return scraper.TotalPages(doc, variant), nil
}

// NavigateToPage rewrites the page query parameter and loads the result.
func (s *Service) NavigateToPage(ctx context.Context, page int) error {
	return s.driver.NavigateToPage(ctx, page)
}

// Navigate loads an arbitrary URL.
func (s *Service) Navigate(ctx context.Context, url string) error {
	return s.driver.Navigate(ctx, url)
}

// Run executes the configured multi-page scrape: navigate to the start URL,
// then scrape and advance through up to MaxPages pages, fanning records out
// to every configured sink.
func (s *Service) Run(ctx context.Context) (int, error) {
	variant, err := types.ParseVariant(s.cfg.Variant)
	if err != nil {
		return 0, err
	}
	if s.cfg.URL == "" {
		return 0, fmt.Errorf("start URL is required")
	}

	sinks, err := output.NewManager(s.cfg.Outputs)
	if err != nil {
		return 0, err
	}
	defer sinks.Close()

	if err := s.driver.Navigate(ctx, s.cfg.URL); err != nil {
		return 0, err
	}

	totalPages, err := s.TotalPages(ctx, variant)
	if err != nil {
		s.logger.WithField("error", err.Error()).Warn("could not determine total pages, assuming 1")
		totalPages = 1
	}
	if totalPages > s.cfg.Paging.MaxPages {
		totalPages = s.cfg.Paging.MaxPages
	}

	written := 0
	for page := 1; page <= totalPages; page++ {
		records, snapshot, err := s.ScrapePage(ctx, variant)
		if err != nil {
			return written, fmt.Errorf("page %d: %w", page, err)
		}
		if len(records) == 0 {
			s.logger.WithFields(map[string]interface{}{
				"page":     page,
				"snapshot": snapshot,
			}).Warn("page produced no records")
		} else {
			if err := sinks.Write(records); err != nil {
				return written, fmt.Errorf("page %d: %w", page, err)
			}
			written += len(records)
		}

		if page < totalPages {
			if err := s.NavigateToPage(ctx, page+1); err != nil {
				return written, fmt.Errorf("failed to reach page %d: %w", page+1, err)
			}
			select {
			case <-ctx.Done():
				return written, ctx.Err()
			case <-time.After(s.cfg.Paging.PageDelay.ToDuration()):
			}
		}
	}
	return written, nil
}

// Close shuts the browser down.
func (s *Service) Close() error {
	return s.driver.Close()
}
