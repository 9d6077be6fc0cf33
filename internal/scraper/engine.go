// internal/scraper/engine.go
package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/PeopleScrapexter/internal/monitoring"
	"github.com/valpere/PeopleScrapexter/internal/utils"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// Engine runs the full extraction pipeline over one rendered document:
// locate candidates, classify them, extract fields, assemble records. The
// engine holds no per-request state; each call owns its own pipeline
// context, so calls do not interfere.
type Engine struct {
	logger utils.Logger
}

// NewEngine creates an extraction engine.
func NewEngine(logger utils.Logger) *Engine {
	if logger == nil {
		logger = utils.NewLogger()
	}
	return &Engine{logger: logger}
}

// ScrapeResult is the outcome of one document pass.
type ScrapeResult struct {
	Records       []types.Record
	DebugSnapshot string
	Candidates    int
	Kept          int
}

// ScrapeDocument extracts person records from the document under the given
// variant. The scrollPct argument is the final scroll position percentage
// reported by the lazy-load pump; it only feeds the debug snapshot. Failures
// escaping the pipeline are returned as errors, never panics.
func (e *Engine) ScrapeDocument(doc *goquery.Document, variant types.Variant, baseURL string, scrollPct float64) (result *ScrapeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extraction pipeline failed: %v", r)
		}
	}()

	if doc == nil {
		return nil, ErrNoDocument
	}
	if !variant.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrBadVariant, variant)
	}

	start := time.Now()
	pc := newPipelineContext(doc, ProfileFor(variant), baseURL, e.logger)

	pc.candidates = locateCandidates(pc)
	pc.scored = classifyCandidates(pc)
	pc.records = assembleRecords(pc)

	monitoring.ObserveScrape(string(variant), len(pc.candidates), len(pc.scored), len(pc.records), time.Since(start))

	result = &ScrapeResult{
		Records:    pc.records,
		Candidates: len(pc.candidates),
		Kept:       len(pc.scored),
	}
	if len(pc.records) == 0 {
		result.DebugSnapshot = buildDebugSnapshot(pc, scrollPct)
		e.logger.WithField("snapshot", result.DebugSnapshot).Warn("no records produced")
	}
	return result, nil
}

// buildDebugSnapshot summarizes the document state in one pipe-delimited
// line: target URL, login-state guess, container-presence flags, profile
// link count, loading-indicator presence, scroll-position percentage.
func buildDebugSnapshot(pc *pipelineContext, scrollPct float64) string {
	parts := []string{
		fmt.Sprintf("url=%s", pc.baseURL),
		fmt.Sprintf("login=%s", guessLoginState(pc.doc)),
		fmt.Sprintf("containers=%s", containerFlags(pc)),
		fmt.Sprintf("profileLinks=%d", pc.doc.Find(ProfileLinkSelector).Length()),
		fmt.Sprintf("loading=%t", pc.doc.Find(pc.profile.LoadingSelector).Length() > 0),
		fmt.Sprintf("scroll=%.0f%%", scrollPct),
	}
	return strings.Join(parts, " | ")
}

// guessLoginState is a heuristic only: a sign-in form or a join banner
// usually means the session expired and the page rendered the logged-out
// shell.
func guessLoginState(doc *goquery.Document) string {
	if doc.Find(`input#username, form.login__form, a[href*="/login"]`).Length() > 0 {
		return "logged-out?"
	}
	if doc.Find("nav, header").Length() > 0 {
		return "logged-in?"
	}
	return "unknown"
}

func containerFlags(pc *pipelineContext) string {
	flags := make([]string, 0, len(pc.profile.Containers))
	for _, pat := range pc.profile.Containers {
		present := pc.doc.Find(pat.Selector).Length() > 0
		flags = append(flags, fmt.Sprintf("%s:%t", pat.Label, present))
	}
	return strings.Join(flags, ",")
}
