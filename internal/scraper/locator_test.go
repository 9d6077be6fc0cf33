// internal/scraper/locator_test.go
package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/PeopleScrapexter/internal/utils"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func newTestContext(t *testing.T, html string, variant types.Variant) *pipelineContext {
	t.Helper()
	return newPipelineContext(parseDoc(t, html), ProfileFor(variant), "https://example.com/search", utils.NewNopLogger())
}

func TestLocateCandidatesUnionsItemPatterns(t *testing.T) {
	// One node matches two item patterns, another matches only one. The
	// union must contain each distinct node exactly once.
	html := `
	<div class="search-results-container">
		<ul>
			<li class="reusable-search__result-container" data-chameleon-result-urn="urn:1" id="r1">
				<a href="/in/jane">Jane Doe</a>
			</li>
			<li id="r2"><div class="entity-result"><a href="/in/bob">Bob Roe</a></div></li>
		</ul>
	</div>`

	pc := newTestContext(t, html, types.VariantPrimary)
	candidates := locateCandidates(pc)

	if len(candidates) != 2 {
		t.Fatalf("located %d candidates, want 2", len(candidates))
	}
	if pc.containerLabel != "results-container" {
		t.Errorf("container label = %q, want results-container", pc.containerLabel)
	}
	if id := candidates[0].AttrOr("id", ""); id != "r1" {
		t.Errorf("first candidate id = %q, want r1", id)
	}
}

func TestLocateCandidatesOrderFollowsStrategyOrder(t *testing.T) {
	// r2 appears earlier on the page but only matches the second item
	// pattern, so r1 (matched by the first pattern) comes out first.
	html := `
	<div class="search-results-container">
		<div class="entity-result" id="r2"><a href="/in/bob">Bob</a></div>
		<li class="reusable-search__result-container" id="r1"><a href="/in/jane">Jane</a></li>
	</div>`

	pc := newTestContext(t, html, types.VariantPrimary)
	candidates := locateCandidates(pc)

	if len(candidates) != 2 {
		t.Fatalf("located %d candidates, want 2", len(candidates))
	}
	if candidates[0].AttrOr("id", "") != "r1" || candidates[1].AttrOr("id", "") != "r2" {
		t.Errorf("order = [%s, %s], want [r1, r2]",
			candidates[0].AttrOr("id", ""), candidates[1].AttrOr("id", ""))
	}
}

func TestLocateCandidatesGenericHeuristic(t *testing.T) {
	// No known item pattern matches. Generic list items qualify through a
	// profile link, degree-mention text or rendered height; bare short items
	// do not.
	html := `
	<div class="search-results-container">
		<ul>
			<li id="link-card"><a href="/in/jane">Jane Doe</a></li>
			<li id="degree-card">Pat Kim · 2nd</li>
			<li id="tall-card" data-rh="64">Alex Wu</li>
			<li id="divider" data-rh="8">·</li>
		</ul>
	</div>`

	pc := newTestContext(t, html, types.VariantPrimary)
	candidates := locateCandidates(pc)

	if len(candidates) != 3 {
		t.Fatalf("located %d candidates, want 3", len(candidates))
	}
	ids := make(map[string]bool)
	for _, c := range candidates {
		ids[c.AttrOr("id", "")] = true
	}
	for _, want := range []string{"link-card", "degree-card", "tall-card"} {
		if !ids[want] {
			t.Errorf("missing expected candidate %s", want)
		}
	}
	if ids["divider"] {
		t.Error("divider should not qualify as a candidate")
	}
	if pc.strategyCounts["generic-list"] != 3 {
		t.Errorf("generic-list count = %d, want 3", pc.strategyCounts["generic-list"])
	}
}

func TestLocateCandidatesLinkDerivation(t *testing.T) {
	// Nothing list-like at all: candidates come from profile-link ancestors.
	// Two links inside the same block must yield one candidate.
	html := `
	<section id="only">
		<div>
			<a href="/in/jane">Jane Doe</a>
			<a href="/in/jane">View Jane's profile</a>
		</div>
	</section>`

	pc := newTestContext(t, html, types.VariantPrimary)
	candidates := locateCandidates(pc)

	if len(candidates) != 1 {
		t.Fatalf("located %d candidates, want 1", len(candidates))
	}
	if pc.strategyCounts["link-derived"] != 1 {
		t.Errorf("link-derived count = %d, want 1", pc.strategyCounts["link-derived"])
	}
}

func TestLocateCandidatesEmptyDocument(t *testing.T) {
	pc := newTestContext(t, "<html><body><p>nothing here</p></body></html>", types.VariantPrimary)
	if candidates := locateCandidates(pc); len(candidates) != 0 {
		t.Errorf("located %d candidates in empty document, want 0", len(candidates))
	}
}

func TestFindResultsContainerFallsBackToDocument(t *testing.T) {
	pc := newTestContext(t, "<html><body><div id='x'>y</div></body></html>", types.VariantPrimary)
	scope := findResultsContainer(pc)
	if pc.containerLabel != "" {
		t.Errorf("container label = %q, want empty on fallback", pc.containerLabel)
	}
	if scope.Find("#x").Length() != 1 {
		t.Error("document-wide fallback scope should see the whole page")
	}
}

func TestLocateCandidatesSecondaryVariant(t *testing.T) {
	html := `
	<ol class="search-results__result-list">
		<li class="search-results__result-item" id="l1">
			<a data-anonymize="person-name" href="/sales/people/abc">Jane Doe</a>
		</li>
		<li class="artdeco-list__item" id="l2">
			<a data-anonymize="person-name" href="/sales/people/def">Bob Roe</a>
		</li>
	</ol>`

	pc := newTestContext(t, html, types.VariantSecondary)
	candidates := locateCandidates(pc)

	if len(candidates) != 2 {
		t.Fatalf("located %d candidates, want 2", len(candidates))
	}
	if pc.containerLabel != "lead-list" {
		t.Errorf("container label = %q, want lead-list", pc.containerLabel)
	}
}
