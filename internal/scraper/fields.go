// internal/scraper/fields.go
package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/PeopleScrapexter/internal/dom"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// cascadeText runs a selector cascade inside the candidate and returns the
// first non-empty text together with the winning pattern label.
func cascadeText(c *goquery.Selection, cascade Cascade) (string, string) {
	for _, pat := range cascade {
		if sel := c.Find(pat.Selector).First(); sel.Length() > 0 {
			if text := dom.Text(sel); text != "" {
				return text, pat.Label
			}
		}
	}
	return "", ""
}

// ---- name ----

var viewProfileRe = regexp.MustCompile(`(?i)^view (.+?)['’]s profile$`)

func isViewProfilePhrase(s string) bool {
	l := strings.ToLower(strings.TrimSpace(s))
	return l == "view profile" || l == "view full profile" || viewProfileRe.MatchString(s)
}

// extractName resolves the person's name: first via the name cascade
// (unwrapping a "View <name>'s profile" phrase when present), then by
// scanning every profile link inside the candidate.
func extractName(pc *pipelineContext, c *goquery.Selection) string {
	if text, _ := cascadeText(c, pc.profile.Name); text != "" {
		if m := viewProfileRe.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
		return text
	}

	var name string
	c.Find(ProfileLinkSelector).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		text := dom.Text(link)
		if len(text) > 3 && !isViewProfilePhrase(text) {
			name = text
			return false
		}
		// The link text itself is trivial; use the first non-trivial
		// nested text node instead.
		link.Find("span, div").EachWithBreak(func(_ int, inner *goquery.Selection) bool {
			t := dom.Text(inner)
			if len(t) > 3 && !isViewProfilePhrase(t) {
				name = t
				return false
			}
			return true
		})
		return name == ""
	})
	return name
}

// ---- profile URL ----

// extractProfileURL returns the first profile link's address inside the
// candidate, resolved against the page base URL. Empty if none.
func extractProfileURL(pc *pipelineContext, c *goquery.Selection) string {
	link := c.Find(ProfileLinkSelector).First()
	if link.Length() == 0 {
		return ""
	}
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return ""
	}
	if pc.baseURL != "" {
		if base, err := url.Parse(pc.baseURL); err == nil {
			if ref, err := url.Parse(href); err == nil {
				return base.ResolveReference(ref).String()
			}
		}
	}
	return href
}

// ---- title and company ----

// headlineDelimiters are tried in order against headline text; the first
// one present wins, both sides trimmed.
var headlineDelimiters = []string{" at ", " @ ", " chez ", " - ", ": "}

// Current-role regexes, applied in priority order against the text of the
// most specific node carrying the "Current:" marker. currentExactRe matches
// one exact summary string observed in the wild and nothing else; it stays
// at the head of the cascade.
var (
	currentExactRe   = regexp.MustCompile(`Current:\s*(Global Partner Marketing Leader), (Digital Media Solutions) at (Lenovo)`)
	currentAtRe      = regexp.MustCompile(`Current:\s*([^:.]+?) at ([^:.]+)`)
	currentColonRe   = regexp.MustCompile(`Current:\s*([^:.]+):\s*([^:.]+?) at ([^:.]+)`)
	currentManagerRe = regexp.MustCompile(`Current:\s*([^.]*?\bManager\b[^.]*?) at ([^.]+)`)
	currentTailRe    = regexp.MustCompile(`Current:\s*([^.]+)`)
)

// roleKeywords anchor the last-resort title search.
var roleKeywords = []string{
	"manager", "engineer", "director", "designer", "developer",
	"consultant", "analyst", "specialist", "founder", "president",
	"recruiter", "marketer",
}

// extractTitleCompany resolves title and company jointly, since both are
// frequently co-located in one string. Three stages: the "Current:" marker
// cascade, headline splitting, then dedicated selectors. A field not
// resolved by any stage stays empty.
func extractTitleCompany(pc *pipelineContext, c *goquery.Selection) (title, company string) {
	if t, co := extractCurrentRole(pc, c); t != "" || co != "" {
		return t, co
	}
	if t, co := extractFromHeadline(pc, c); t != "" || co != "" {
		return t, co
	}
	return extractDirectTitleCompany(pc, c)
}

// extractCurrentRole handles candidates whose text carries a "Current:"
// summary line.
func extractCurrentRole(pc *pipelineContext, c *goquery.Selection) (string, string) {
	full := dom.Text(c)
	if !strings.Contains(full, "Current:") {
		return "", ""
	}

	text := currentMarkerText(pc, c)
	if text == "" {
		text = full
	}

	if m := currentExactRe.FindStringSubmatch(text); m != nil {
		return m[1] + ", " + m[2], m[3]
	}
	if m := currentAtRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := currentColonRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]) + ": " + strings.TrimSpace(m[2]), strings.TrimSpace(m[3])
	}
	if m := currentManagerRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := currentTailRe.FindStringSubmatch(text); m != nil {
		remainder := strings.TrimSpace(m[1])
		if i := strings.Index(remainder, " at "); i >= 0 {
			return strings.TrimSpace(remainder[:i]), strings.TrimSpace(remainder[i+4:])
		}
		return remainder, ""
	}
	return keywordLastResort(text)
}

// currentMarkerText locates the most specific sub-node carrying the
// "Current:" marker, trying the variant cascade first and increasingly
// generic elements after it.
func currentMarkerText(pc *pipelineContext, c *goquery.Selection) string {
	cascades := append(Cascade{}, pc.profile.CurrentRole...)
	cascades = append(cascades,
		SelectorPattern{"generic-p", "p"},
		SelectorPattern{"generic-span", "span"},
		SelectorPattern{"generic-div", "div"},
	)
	for _, pat := range cascades {
		var found string
		c.Find(pat.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if t := dom.Text(s); strings.Contains(t, "Current:") {
				found = t
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// keywordLastResort looks for a known role keyword anywhere in the text and
// scans up to 30 characters after the next " at " token for a company name.
// Unlike the marker regexes this search is case-insensitive.
func keywordLastResort(text string) (string, string) {
	lower := strings.ToLower(text)
	for _, kw := range roleKeywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		start := strings.LastIndexAny(text[:idx], ".:|") + 1
		rest := text[idx:]
		at := strings.Index(strings.ToLower(rest), " at ")
		if at < 0 {
			return strings.TrimSpace(text[start : idx+len(kw)]), ""
		}
		title := strings.TrimSpace(text[start : idx+at])
		tail := rest[at+4:]
		if len(tail) > 30 {
			tail = tail[:30]
		}
		if cut := strings.IndexAny(tail, ".,;|"); cut >= 0 {
			tail = tail[:cut]
		}
		return title, strings.TrimSpace(tail)
	}
	return "", ""
}

// extractFromHeadline scans the headline cascade, splitting the first
// non-empty headline on the first matching delimiter. When no delimiter
// matches, the whole text becomes the title and later headline patterns are
// still scanned for a separate company match.
func extractFromHeadline(pc *pipelineContext, c *goquery.Selection) (title, company string) {
	for _, pat := range pc.profile.Headline {
		sel := c.Find(pat.Selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := dom.Text(sel)
		if text == "" {
			continue
		}

		if t, co, ok := splitOnDelimiter(text); ok {
			if title == "" {
				return t, co
			}
			return title, co
		}
		if title == "" {
			title = text
			continue
		}
	}
	return title, company
}

// splitOnDelimiter splits a headline-shaped string on the first matching
// delimiter, both sides trimmed.
func splitOnDelimiter(text string) (string, string, bool) {
	for _, d := range headlineDelimiters {
		if i := strings.Index(text, d); i > 0 {
			return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+len(d):]), true
		}
	}
	return "", "", false
}

// extractDirectTitleCompany consults the dedicated title and company
// cascades. A title that independently contains " at " is split, with the
// company taken from the right-hand side.
func extractDirectTitleCompany(pc *pipelineContext, c *goquery.Selection) (title, company string) {
	title, _ = cascadeText(c, pc.profile.Title)
	company, _ = cascadeText(c, pc.profile.Company)
	if company == "" {
		if i := strings.Index(title, " at "); i > 0 {
			company = strings.TrimSpace(title[i+4:])
			title = strings.TrimSpace(title[:i])
		}
	}
	return title, company
}

// ---- location ----

var (
	// cityRegionRe matches "<Words>, <Words>" shapes like "Austin, Texas".
	cityRegionRe = regexp.MustCompile(`^[A-Z][\p{L}'’.-]*(?:\s+[\p{L}'’.-]+)*,\s+[A-Z][\p{L}'’ .-]*$`)

	singleWordCountries = map[string]bool{
		"Canada": true, "Australia": true, "Brazil": true, "India": true,
		"Germany": true, "France": true, "Singapore": true, "Netherlands": true,
		"Spain": true, "Italy": true, "Japan": true, "Mexico": true,
		"Ireland": true, "Israel": true, "Sweden": true, "Switzerland": true,
		"Portugal": true, "Poland": true, "Denmark": true, "Norway": true,
	}

	maxLocationLen = 50
)

// extractLocation resolves the candidate's location: the location cascade
// first (stripping a leading "Location:" label), then a descendant scan for
// city-region shapes or single-word country names.
func extractLocation(pc *pipelineContext, c *goquery.Selection) string {
	if text, _ := cascadeText(c, pc.profile.Location); text != "" {
		return strings.TrimSpace(strings.TrimPrefix(text, "Location:"))
	}

	var loc string
	c.Find("p, div, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := dom.Text(s)
		if t == "" || len(t) >= maxLocationLen {
			return true
		}
		if cityRegionRe.MatchString(t) || singleWordCountries[t] {
			loc = t
			return false
		}
		return true
	})
	return loc
}

// ---- industry ----

func extractIndustry(pc *pipelineContext, c *goquery.Selection) string {
	text, _ := cascadeText(c, pc.profile.Industry)
	return text
}

// ---- connection degree ----

var degreeTokens = []struct {
	classHints []string
	textHints  []string
	degree     types.ConnectionDegree
}{
	{[]string{"degree-1", "first-degree"}, []string{"1st", "1 st"}, types.DegreeFirst},
	{[]string{"degree-2", "second-degree"}, []string{"2nd", "2 nd"}, types.DegreeSecond},
	{[]string{"degree-3", "third-degree"}, []string{"3rd", "3 rd"}, types.DegreeThird},
}

// extractConnectionDegree scans the badge cascade, classifying the first
// matching node by class token first and by its own text second. When no
// badge node exists, accessibility labels anywhere in the candidate are
// scanned for an embedded degree token.
func extractConnectionDegree(pc *pipelineContext, c *goquery.Selection) types.ConnectionDegree {
	for _, pat := range pc.profile.Badge {
		badge := c.Find(pat.Selector).First()
		if badge.Length() == 0 {
			continue
		}
		for _, dt := range degreeTokens {
			for _, hint := range dt.classHints {
				if dom.HasClassSubstring(badge, hint) {
					return dt.degree
				}
			}
		}
		text := dom.Text(badge)
		for _, dt := range degreeTokens {
			if strings.Contains(text, dt.textHints[0]) {
				return dt.degree
			}
		}
	}

	var degree types.ConnectionDegree
	c.Find("[aria-label]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		label, _ := s.Attr("aria-label")
		for _, dt := range degreeTokens {
			for _, hint := range dt.textHints {
				if strings.Contains(label, hint) {
					degree = dt.degree
					return false
				}
			}
		}
		return true
	})
	return degree
}

// ---- shared connections ----

var sharedCountRe = regexp.MustCompile(`(\d+)\s+shared connections?`)

// extractSharedConnections scans the shared-connection cascade, accepting
// only nodes whose text mentions "shared", then falls back to a regex over
// the whole candidate text.
func extractSharedConnections(pc *pipelineContext, c *goquery.Selection) string {
	for _, pat := range pc.profile.Shared {
		var found string
		c.Find(pat.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if t := dom.Text(s); strings.Contains(strings.ToLower(t), "shared") {
				found = t
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	if m := sharedCountRe.FindString(dom.Text(c)); m != "" {
		return m
	}
	return ""
}
