// internal/scraper/assembler.go
package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// assembleRecords invokes each field extractor independently for every
// filtered candidate and appends a record iff name or profile URL is
// non-empty. Output order equals filtered-candidate order.
//
// Error isolation is tiered: a panic inside one field's cascade resolves
// that field to empty and extraction continues with the next field; a
// failure assembling one candidate skips that candidate only.
func assembleRecords(pc *pipelineContext) []types.Record {
	var records []types.Record
	for i, sc := range pc.scored {
		rec, err := assembleOne(pc, sc.Node)
		if err != nil {
			pc.logger.WithFields(map[string]interface{}{
				"candidate": i,
				"error":     err.Error(),
			}).Warn("candidate skipped")
			continue
		}
		if rec.HasIdentity() {
			records = append(records, rec)
		}
	}
	return records
}

func assembleOne(pc *pipelineContext, c *goquery.Selection) (rec types.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("candidate assembly panicked: %v", r)
		}
	}()

	rec.Name = safeField(pc, "name", func() string { return extractName(pc, c) })
	rec.ProfileURL = safeField(pc, "profile_url", func() string { return extractProfileURL(pc, c) })

	title, company := safeFieldPair(pc, "title_company", func() (string, string) {
		return extractTitleCompany(pc, c)
	})
	rec.Title = title
	rec.Company = company

	rec.Location = safeField(pc, "location", func() string { return extractLocation(pc, c) })
	rec.Industry = safeField(pc, "industry", func() string { return extractIndustry(pc, c) })
	rec.ConnectionDegree = types.ConnectionDegree(safeField(pc, "connection_degree", func() string {
		return string(extractConnectionDegree(pc, c))
	}))
	rec.SharedConnections = safeField(pc, "shared_connections", func() string {
		return extractSharedConnections(pc, c)
	})
	return rec, nil
}

// safeField runs one field extractor, converting a panic into an empty
// result for that field only.
func safeField(pc *pipelineContext, field string, fn func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			pc.logger.WithFields(map[string]interface{}{
				"field": field,
				"error": fmt.Sprintf("%v", r),
			}).Warn("field extractor failed")
			out = ""
		}
	}()
	return fn()
}

func safeFieldPair(pc *pipelineContext, field string, fn func() (string, string)) (a, b string) {
	defer func() {
		if r := recover(); r != nil {
			pc.logger.WithFields(map[string]interface{}{
				"field": field,
				"error": fmt.Sprintf("%v", r),
			}).Warn("field extractor failed")
			a, b = "", ""
		}
	}()
	return fn()
}
