// internal/scraper/locator.go
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/PeopleScrapexter/internal/dom"
)

// minCandidateHeight is the rendered-height floor for the generic list
// heuristic: anything shorter is assumed to be a divider or filter chip.
const minCandidateHeight = 40

// locateCandidates produces an ordered, duplicate-free sequence of nodes
// likely to represent one person each. Four strategies run in order:
//
//  1. a container cascade scopes the search to the results region;
//  2. every item pattern that matches at least one node contributes its
//     matches (union, not replacement);
//  3. if the union is empty, a generic heuristic accepts list-like nodes
//     that carry a profile link, a profile image, connection-mention text,
//     or enough rendered height;
//  4. if still empty, candidates are derived from profile links anywhere in
//     the document, mapped to their nearest list-item or block ancestor.
//
// Deduplication keeps first-seen order, so output order is a function of
// strategy execution order rather than on-page visual order.
func locateCandidates(pc *pipelineContext) []*goquery.Selection {
	scope := findResultsContainer(pc)

	set := dom.NewOrderedSet()
	for _, item := range pc.profile.Items {
		matches := scope.Find(item.Selector)
		if matches.Length() == 0 {
			continue
		}
		pc.strategyCounts[item.Label] = matches.Length()
		matches.Each(func(_ int, s *goquery.Selection) {
			set.Add(s)
		})
	}

	if set.Len() == 0 {
		pc.logger.Debug("item patterns found nothing, trying generic list heuristic")
		genericListCandidates(pc, scope, set)
	}

	if set.Len() == 0 {
		pc.logger.Debug("generic heuristic found nothing, deriving candidates from profile links")
		linkDerivedCandidates(pc, set)
	}

	pc.logger.WithField("count", set.Len()).Debug("candidates located")
	return set.Nodes()
}

// findResultsContainer tries the container cascade in order and returns the
// first match, or the whole document when none matched.
func findResultsContainer(pc *pipelineContext) *goquery.Selection {
	for _, pat := range pc.profile.Containers {
		if sel := pc.doc.Find(pat.Selector).First(); sel.Length() > 0 {
			pc.containerLabel = pat.Label
			return sel
		}
	}
	return pc.doc.Selection
}

// genericListCandidates accepts any list-like node that looks like a person
// card: a profile link, a profile image, text mentioning a connection
// degree, or a minimum rendered height.
func genericListCandidates(pc *pipelineContext, scope *goquery.Selection, set *dom.OrderedSet) {
	found := 0
	scope.Find("li, ol > div, ul > div").Each(func(_ int, s *goquery.Selection) {
		if !looksLikeCard(s) {
			return
		}
		if set.Add(s) {
			found++
		}
	})
	if found > 0 {
		pc.strategyCounts["generic-list"] = found
	}
}

func looksLikeCard(s *goquery.Selection) bool {
	if s.Find(ProfileLinkSelector).Length() > 0 {
		return true
	}
	if s.Find(ProfileImageSelector).Length() > 0 {
		return true
	}
	text := dom.Text(s)
	if strings.Contains(text, "connection") || strings.Contains(text, "1st") ||
		strings.Contains(text, "2nd") || strings.Contains(text, "3rd") {
		return true
	}
	return dom.Height(s) >= minCandidateHeight
}

// linkDerivedCandidates maps every profile link in the document to its
// nearest list-item or block ancestor. Several links inside one card resolve
// to the same ancestor; the ordered set keeps it once.
func linkDerivedCandidates(pc *pipelineContext, set *dom.OrderedSet) {
	found := 0
	pc.doc.Find(ProfileLinkSelector).Each(func(_ int, link *goquery.Selection) {
		anc := dom.ClosestItem(link)
		if anc == nil || anc.Length() == 0 {
			return
		}
		if set.Add(anc) {
			found++
		}
	})
	if found > 0 {
		pc.strategyCounts["link-derived"] = found
	}
}
