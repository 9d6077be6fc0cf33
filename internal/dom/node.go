// internal/dom/node.go
//
// Package dom provides small helpers over goquery selections for the
// extraction engine: normalized text, class-token handling, rendered-size
// hints and identity-based deduplication. Nodes are borrowed from the parsed
// document and never mutated here.
package dom

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Text returns the visible text of the selection with runs of whitespace
// collapsed to single spaces and Unicode normalized to NFC. Headless
// snapshots frequently contain decomposed accents and stray NBSPs.
func Text(s *goquery.Selection) string {
	if s == nil {
		return ""
	}
	t := strings.ReplaceAll(s.Text(), " ", " ")
	t = whitespaceRe.ReplaceAllString(t, " ")
	return norm.NFC.String(strings.TrimSpace(t))
}

// Tag returns the element name of the first node in the selection, lowered.
func Tag(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	n := s.Get(0)
	if n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// ClassTokens returns the class attribute split into individual tokens.
func ClassTokens(s *goquery.Selection) []string {
	class, _ := s.Attr("class")
	return strings.Fields(class)
}

// HasClassSubstring reports whether any class token contains the given
// substring. Matching is case-insensitive because the markup mixes cases
// across revisions.
func HasClassSubstring(s *goquery.Selection, substr string) bool {
	substr = strings.ToLower(substr)
	for _, tok := range ClassTokens(s) {
		if strings.Contains(strings.ToLower(tok), substr) {
			return true
		}
	}
	return false
}

// sizeAttrs are consulted in order for rendered-size hints. The browser
// driver annotates elements with data-rh/data-rw from getBoundingClientRect
// before snapshotting; static fixtures can use plain width/height attributes
// or inline styles.
var (
	styleHeightRe = regexp.MustCompile(`(?i)height:\s*([\d.]+)px`)
	styleWidthRe  = regexp.MustCompile(`(?i)width:\s*([\d.]+)px`)
)

// Height returns the rendered height hint for the node, or 0 when unknown.
func Height(s *goquery.Selection) float64 {
	return sizeHint(s, "data-rh", "height", styleHeightRe)
}

// Width returns the rendered width hint for the node, or 0 when unknown.
func Width(s *goquery.Selection) float64 {
	return sizeHint(s, "data-rw", "width", styleWidthRe)
}

func sizeHint(s *goquery.Selection, dataAttr, attr string, styleRe *regexp.Regexp) float64 {
	if s == nil || s.Length() == 0 {
		return 0
	}
	if v, ok := s.Attr(dataAttr); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	if v, ok := s.Attr(attr); ok {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64); err == nil {
			return f
		}
	}
	if style, ok := s.Attr("style"); ok {
		if m := styleRe.FindStringSubmatch(style); m != nil {
			if f, err := strconv.ParseFloat(m[1], 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// Key returns a stable identity for the selection's first node, usable as a
// map key for deduplication. Two selections over the same underlying element
// yield the same key.
func Key(s *goquery.Selection) *html.Node {
	if s == nil || s.Length() == 0 {
		return nil
	}
	return s.Get(0)
}

// ClosestItem walks up from the selection to the nearest list-item ancestor,
// falling back to the nearest block-level container. Returns nil when the
// node has no suitable ancestor.
func ClosestItem(s *goquery.Selection) *goquery.Selection {
	if s == nil {
		return nil
	}
	if li := s.Closest("li"); li.Length() > 0 {
		return li
	}
	for _, sel := range []string{"article", "section", "div"} {
		if b := s.ParentsFiltered(sel).First(); b.Length() > 0 {
			return b
		}
	}
	return nil
}

// OrderedSet is an insertion-ordered set of document nodes. Adding a node
// already present is a no-op; iteration order equals first-seen order.
type OrderedSet struct {
	seen  map[*html.Node]bool
	nodes []*goquery.Selection
}

// NewOrderedSet returns an empty set.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[*html.Node]bool)}
}

// Add inserts the selection's node if it has not been seen before and
// reports whether it was inserted.
func (o *OrderedSet) Add(s *goquery.Selection) bool {
	k := Key(s)
	if k == nil || o.seen[k] {
		return false
	}
	o.seen[k] = true
	o.nodes = append(o.nodes, s)
	return true
}

// Len returns the number of distinct nodes added.
func (o *OrderedSet) Len() int { return len(o.nodes) }

// Nodes returns the nodes in first-seen order.
func (o *OrderedSet) Nodes() []*goquery.Selection { return o.nodes }
