// internal/scraper/engine_test.go
package scraper

import (
	"strings"
	"testing"

	"github.com/valpere/PeopleScrapexter/internal/utils"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

const primaryResultsPage = `
<html><body>
<nav>top bar</nav>
<div class="search-results-container">
	<ul>
		<li class="reusable-search__result-container">
			<span class="entity-result__title-text">
				<a href="/in/jane-doe"><span aria-hidden="true">Jane Doe</span></a>
			</span>
			<div class="entity-result__primary-subtitle">Product Designer at Figma</div>
			<div class="entity-result__secondary-subtitle">Austin, Texas</div>
			<span class="entity-result__badge-text">2nd</span>
		</li>
		<li class="reusable-search__result-container">
			<span class="entity-result__title-text">
				<a href="/in/bob-roe"><span aria-hidden="true">Bob Roe</span></a>
			</span>
			<div class="entity-result__primary-subtitle">Staff Engineer at Stripe</div>
			<div class="entity-result__secondary-subtitle">Toronto, Ontario</div>
			<span class="entity-result__badge-text">3rd</span>
		</li>
	</ul>
</div>
</body></html>`

func TestScrapeDocumentEndToEnd(t *testing.T) {
	engine := NewEngine(utils.NewNopLogger())
	doc := parseDoc(t, primaryResultsPage)

	result, err := engine.ScrapeDocument(doc, types.VariantPrimary, "https://example.com/search", 95)
	if err != nil {
		t.Fatalf("ScrapeDocument() error = %v", err)
	}

	if result.Candidates != 2 || result.Kept != 2 {
		t.Errorf("candidates/kept = %d/%d, want 2/2", result.Candidates, result.Kept)
	}
	if len(result.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(result.Records))
	}
	if result.DebugSnapshot != "" {
		t.Errorf("debug snapshot should be empty when records were produced, got %q", result.DebugSnapshot)
	}

	jane := result.Records[0]
	if jane.Name != "Jane Doe" || jane.Company != "Figma" || jane.ConnectionDegree != types.DegreeSecond {
		t.Errorf("unexpected first record: %+v", jane)
	}
	if jane.ProfileURL != "https://example.com/in/jane-doe" {
		t.Errorf("profile url = %q, want resolved absolute url", jane.ProfileURL)
	}

	bob := result.Records[1]
	if bob.Name != "Bob Roe" || bob.Title != "Staff Engineer" || bob.Location != "Toronto, Ontario" {
		t.Errorf("unexpected second record: %+v", bob)
	}
}

func TestScrapeDocumentEmptyPageProducesSnapshot(t *testing.T) {
	html := `
	<html><body>
	<form class="login__form"><input id="username"></form>
	<div class="artdeco-loader"></div>
	</body></html>`

	engine := NewEngine(utils.NewNopLogger())
	result, err := engine.ScrapeDocument(parseDoc(t, html), types.VariantPrimary, "https://example.com/search", 42)
	if err != nil {
		t.Fatalf("ScrapeDocument() error = %v", err)
	}
	if len(result.Records) != 0 {
		t.Fatalf("records = %d, want 0", len(result.Records))
	}

	snap := result.DebugSnapshot
	for _, want := range []string{
		"url=https://example.com/search",
		"login=logged-out?",
		"profileLinks=0",
		"loading=true",
		"scroll=42%",
	} {
		if !strings.Contains(snap, want) {
			t.Errorf("snapshot %q missing part %q", snap, want)
		}
	}
	if !strings.Contains(snap, "results-container:false") {
		t.Errorf("snapshot %q missing container flags", snap)
	}
	if strings.Count(snap, " | ") != 5 {
		t.Errorf("snapshot %q should have six pipe-delimited parts", snap)
	}
}

func TestScrapeDocumentNilDocument(t *testing.T) {
	engine := NewEngine(utils.NewNopLogger())
	if _, err := engine.ScrapeDocument(nil, types.VariantPrimary, "", 0); err == nil {
		t.Error("expected error for nil document")
	}
}

func TestScrapeDocumentInvalidVariant(t *testing.T) {
	engine := NewEngine(utils.NewNopLogger())
	doc := parseDoc(t, "<html></html>")
	if _, err := engine.ScrapeDocument(doc, types.Variant("bogus"), "", 0); err == nil {
		t.Error("expected error for invalid variant")
	}
}

func TestGuessLoginState(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"login form", `<form class="login__form"></form>`, "logged-out?"},
		{"app chrome", `<nav>bar</nav><div>results</div>`, "logged-in?"},
		{"bare page", `<p>x</p>`, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guessLoginState(parseDoc(t, tt.html)); got != tt.want {
				t.Errorf("guessLoginState() = %q, want %q", got, tt.want)
			}
		})
	}
}
