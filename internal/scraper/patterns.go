// internal/scraper/patterns.go
package scraper

import (
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// SelectorPattern is one declarative matching rule inside a cascade. Label
// is used only for diagnostics and cascade-stage metrics.
type SelectorPattern struct {
	Label    string
	Selector string
}

// Cascade is an ordered list of selector patterns tried until one yields a
// non-empty result.
type Cascade []SelectorPattern

// VariantProfile bundles every variant-specific decision: which cascades
// apply, the classifier threshold, and the assumed page size. Variant
// differences are data differences; the pipeline code never branches on the
// variant directly.
type VariantProfile struct {
	Variant types.Variant

	// Containers is tried in order; the first matching node scopes the item
	// search. When none matches, items are searched document-wide.
	Containers Cascade

	// Items are all tried; matches from every pattern that finds at least
	// one node are unioned, not replaced.
	Items []SelectorPattern

	// Field cascades.
	Name        Cascade
	Headline    Cascade
	Title       Cascade
	Company     Cascade
	Location    Cascade
	Industry    Cascade
	Badge       Cascade
	Shared      Cascade
	CurrentRole Cascade

	// Marker, when non-empty, adds the variant-specific classifier bonus if
	// a candidate contains a matching sub-node.
	Marker string

	// ScoreThreshold is the minimum classifier score for a candidate to be
	// kept.
	ScoreThreshold int

	// PageSize is the assumed results-per-page when total pages must be
	// derived from a "showing N of M" summary.
	PageSize int

	// ResultCountSelector counts visible results during lazy-load pumping.
	ResultCountSelector string

	// LoadingSelector detects the in-flight loading indicator.
	LoadingSelector string

	// Pagination locates the numbered page controls.
	Pagination Cascade
}

// ProfileLinkSelector matches anchors that point at a person profile. Both
// markup families use /in/ profile paths; the lead-list family also links
// through /sales/people/.
const ProfileLinkSelector = `a[href*="/in/"], a[href*="/sales/people/"], a[href*="/sales/lead/"]`

// ProfileImageSelector matches person photos inside result cards.
const ProfileImageSelector = `img[class*="presence-entity"], img[class*="profile-photo"], img[class*="lazy-image"], img[alt*="profile"]`

// cardClassTokens are class-token substrings that identify a result-card
// container across markup revisions.
var cardClassTokens = []string{"entity-result", "search-result", "result-card", "artdeco-card", "reusable-search__result"}

var primaryProfile = VariantProfile{
	Variant: types.VariantPrimary,
	Containers: Cascade{
		{"results-container", "div.search-results-container"},
		{"results-main", `main [data-view-name="search-entity-result-universal-template"]`},
		{"results-list", "ul.reusable-search__entity-result-list"},
		{"results-region", `main div[role="main"]`},
	},
	Items: []SelectorPattern{
		{"result-li", "li.reusable-search__result-container"},
		{"entity-result", "div.entity-result"},
		{"chameleon-urn", "[data-chameleon-result-urn]"},
		{"template-card", `[data-view-name="search-entity-result-universal-template"]`},
		{"list-li", `ul[role="list"] > li`},
	},
	Name: Cascade{
		{"name-title-span", `span.entity-result__title-text a span[aria-hidden="true"]`},
		{"name-title-link", "span.entity-result__title-text a"},
		{"name-app-aware", "a.app-aware-link span[dir=\"ltr\"]"},
		{"name-actor", ".actor-name"},
	},
	Headline: Cascade{
		{"primary-subtitle", "div.entity-result__primary-subtitle"},
		{"headline-class", "[class*=\"headline\"]"},
		{"subline-level-1", ".subline-level-1"},
	},
	Title: Cascade{
		{"title-class", "[class*=\"entity-result__summary\"] strong"},
		{"occupation", ".search-result__occupation"},
	},
	Company: Cascade{
		{"company-summary", "[class*=\"entity-result__summary\"] [class*=\"company\"]"},
	},
	Location: Cascade{
		{"secondary-subtitle", "div.entity-result__secondary-subtitle"},
		{"subline-level-2", ".subline-level-2"},
		{"location-class", "[class*=\"location\"]"},
	},
	Industry: Cascade{
		{"industry-class", "[class*=\"industry\"]"},
	},
	Badge: Cascade{
		{"badge-text", "span.entity-result__badge-text"},
		{"dist-value", "span.dist-value"},
		{"degree-class", "[class*=\"distance-badge\"]"},
	},
	Shared: Cascade{
		{"insight-text", "div.entity-result__insights"},
		{"shared-class", "[class*=\"shared-connections\"]"},
		{"simple-insight", ".reusable-search-simple-insight__text"},
	},
	CurrentRole: Cascade{
		{"summary-p", "p.entity-result__summary"},
		{"summary-div", "div.entity-result__summary"},
		{"summary-any", "[class*=\"summary\"]"},
	},
	ScoreThreshold:      3,
	PageSize:            10,
	ResultCountSelector: "li.reusable-search__result-container, div.entity-result, [data-chameleon-result-urn]",
	LoadingSelector:     ".artdeco-loader, .loader, [class*=\"loading-bar\"]",
	Pagination: Cascade{
		{"pagination-buttons", "ul.artdeco-pagination__pages li button span"},
		{"pagination-indicator", "li[data-test-pagination-page-btn]"},
	},
}

var secondaryProfile = VariantProfile{
	Variant: types.VariantSecondary,
	Containers: Cascade{
		{"lead-list", "ol.search-results__result-list"},
		{"results-container", "div.search-results-container"},
		{"lead-main", "#search-results-container"},
	},
	Items: []SelectorPattern{
		{"lead-li", "li.search-results__result-item"},
		{"artdeco-item", "li.artdeco-list__item"},
		{"anonymized-urn", "[data-anonymize=\"person-result\"]"},
		{"lead-card", "div[class*=\"result-lockup\"]"},
	},
	Name: Cascade{
		{"lead-name-link", "a[data-anonymize=\"person-name\"]"},
		{"lockup-title", ".result-lockup__name a"},
		{"artdeco-name", ".artdeco-entity-lockup__title a"},
	},
	Headline: Cascade{
		{"lead-headline", "[data-anonymize=\"headline\"]"},
		{"lockup-highlight", ".result-lockup__highlight-keyword"},
		{"artdeco-subtitle", ".artdeco-entity-lockup__subtitle"},
	},
	Title: Cascade{
		{"lead-title", "[data-anonymize=\"job-title\"]"},
	},
	Company: Cascade{
		{"lead-company", "[data-anonymize=\"company-name\"]"},
		{"lockup-position-company", ".result-lockup__position-company a"},
	},
	Location: Cascade{
		{"lead-location", "[data-anonymize=\"location\"]"},
		{"lockup-misc", ".result-lockup__misc-item"},
	},
	Industry: Cascade{
		{"lead-industry", "[data-anonymize=\"industry\"]"},
	},
	Badge: Cascade{
		{"lead-degree", "span[class*=\"degree\"]"},
		{"member-badge", ".search-results__result-badge"},
	},
	Shared: Cascade{
		{"lead-shared", "[class*=\"shared-connections\"]"},
		{"spotlight", ".search-results__spotlight"},
	},
	CurrentRole: Cascade{
		{"lead-current-p", "p[data-anonymize=\"person-blurb\"]"},
		{"lead-current-dd", "dd.result-lockup__highlight-keyword"},
		{"lead-current-any", "[class*=\"blurb\"]"},
	},
	Marker:              "[data-anonymize]",
	ScoreThreshold:      4,
	PageSize:            25,
	ResultCountSelector: "li.search-results__result-item, li.artdeco-list__item",
	LoadingSelector:     ".artdeco-loader, .search-results__loader",
	Pagination: Cascade{
		{"pagination-buttons", "ul.artdeco-pagination__pages li button span"},
	},
}

// ProfileFor returns the pattern profile governing the given variant.
func ProfileFor(v types.Variant) VariantProfile {
	if v == types.VariantSecondary {
		return secondaryProfile
	}
	return primaryProfile
}
