// internal/scraper/classifier.go
package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/PeopleScrapexter/internal/dom"
)

// titleMarkerSelector matches sub-nodes that carry a headline or title, one
// of the strongest signals that a node is a person card.
const titleMarkerSelector = `[class*="title"], [class*="headline"], [class*="subtitle"]`

// Classifier feature weights. Scores are additive and independent: enabling
// one more true feature can only raise the total, never lower it.
const (
	scoreProfileLink = 3
	scoreTextLength  = 1
	scoreTitleMarker = 2
	scoreCardShape   = 2
	scoreRenderedBox = 1
	scoreImage       = 1
	scoreVariantMark = 2

	minCardTextLen = 20
	minCardWidth   = 50
)

// scoreCandidate assigns a confidence score 0-12 to a candidate node from
// independent structural features. Pure except for diagnostic logging.
func scoreCandidate(pc *pipelineContext, s *goquery.Selection) int {
	score := 0

	if s.Find(ProfileLinkSelector).Length() > 0 {
		score += scoreProfileLink
	}
	if len(dom.Text(s)) > minCardTextLen {
		score += scoreTextLength
	}
	if s.Find(titleMarkerSelector).Length() > 0 {
		score += scoreTitleMarker
	}
	if isCardShaped(s) {
		score += scoreCardShape
	}
	if dom.Height(s) > minCandidateHeight && dom.Width(s) > minCardWidth {
		score += scoreRenderedBox
	}
	if s.Find("img").Length() > 0 {
		score += scoreImage
	}
	if pc.profile.Marker != "" && s.Find(pc.profile.Marker).Length() > 0 {
		score += scoreVariantMark
	}

	pc.logger.WithFields(map[string]interface{}{
		"score": score,
		"tag":   dom.Tag(s),
	}).Debug("candidate scored")
	return score
}

// isCardShaped reports whether the node itself matches a known card
// structure: a list-item tag or a card/entity/result-style class token.
func isCardShaped(s *goquery.Selection) bool {
	if dom.Tag(s) == "li" {
		return true
	}
	for _, tok := range cardClassTokens {
		if dom.HasClassSubstring(s, tok) {
			return true
		}
	}
	return false
}

// classifyCandidates filters the located candidates by the variant's score
// threshold, preserving their order.
func classifyCandidates(pc *pipelineContext) []ScoredCandidate {
	var kept []ScoredCandidate
	for _, c := range pc.candidates {
		score := scoreCandidate(pc, c)
		if score >= pc.profile.ScoreThreshold {
			kept = append(kept, ScoredCandidate{Node: c, Score: score})
		}
	}
	pc.logger.WithFields(map[string]interface{}{
		"located":   len(pc.candidates),
		"kept":      len(kept),
		"threshold": pc.profile.ScoreThreshold,
	}).Debug("candidates classified")
	return kept
}
