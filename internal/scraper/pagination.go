// internal/scraper/pagination.go
package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/PeopleScrapexter/internal/dom"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// showingOfRe matches result-count summaries like "Showing 1-25 of 312
// results". Thousands separators occur on large result sets.
var showingOfRe = regexp.MustCompile(`(?i)showing\s+[\d,]+\s*(?:-|–|to)?\s*[\d,]*\s*of\s+(?:about\s+)?([\d,]+)`)

// TotalPages computes the number of result pages for the document: the last
// number in the pagination control when present, otherwise a "showing N of
// M" summary divided by the variant's assumed page size, otherwise 1.
func TotalPages(doc *goquery.Document, variant types.Variant) int {
	if doc == nil {
		return 1
	}
	profile := ProfileFor(variant)

	if n := lastPaginationNumber(doc, profile); n > 0 {
		return n
	}

	if m := showingOfRe.FindStringSubmatch(dom.Text(doc.Selection)); m != nil {
		total, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil && total > 0 {
			pages := (total + profile.PageSize - 1) / profile.PageSize
			if pages < 1 {
				pages = 1
			}
			return pages
		}
	}
	return 1
}

func lastPaginationNumber(doc *goquery.Document, profile VariantProfile) int {
	for _, pat := range profile.Pagination {
		last := 0
		doc.Find(pat.Selector).Each(func(_ int, s *goquery.Selection) {
			if n, err := strconv.Atoi(dom.Text(s)); err == nil && n > last {
				last = n
			}
		})
		if last > 0 {
			return last
		}
	}
	return 0
}

// RewritePageParam rewrites or appends the page query parameter on the
// given address, used by the navigation driver to move between result
// pages.
func RewritePageParam(rawURL string, page int) (string, error) {
	if page < 1 {
		return "", fmt.Errorf("page must be >= 1, got %d", page)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
