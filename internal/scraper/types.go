// internal/scraper/types.go
package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/PeopleScrapexter/internal/utils"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// Common errors
var (
	ErrNoDocument  = fmt.Errorf("document cannot be nil")
	ErrNoCandidate = fmt.Errorf("no candidates located")
	ErrBadVariant  = fmt.Errorf("invalid variant")
)

// ScoredCandidate pairs a candidate node with its classifier score. The
// score is a pure function of the node's structural features at scoring
// time.
type ScoredCandidate struct {
	Node  *goquery.Selection
	Score int
}

// pipelineContext is the single mutable context threaded through locator,
// classifier, extractors and assembler for one request. It replaces any
// shared accumulation state; each call owns exactly one.
type pipelineContext struct {
	doc     *goquery.Document
	profile VariantProfile
	baseURL string
	logger  utils.Logger

	candidates []*goquery.Selection
	scored     []ScoredCandidate
	records    []types.Record

	// strategy bookkeeping for the debug snapshot
	containerLabel string
	strategyCounts map[string]int
}

func newPipelineContext(doc *goquery.Document, profile VariantProfile, baseURL string, logger utils.Logger) *pipelineContext {
	if logger == nil {
		logger = utils.NewLogger()
	}
	return &pipelineContext{
		doc:            doc,
		profile:        profile,
		baseURL:        baseURL,
		logger:         logger,
		strategyCounts: make(map[string]int),
	}
}
