package api

import (
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// ScrapeRequest asks for a single pass over the currently rendered results
// page. The variant selects which cascade set and threshold apply.
type ScrapeRequest struct {
	URL     string        `json:"url"`
	Variant types.Variant `json:"variant"`
}

// ScrapeResponse carries the outcome of one scrape invocation. DebugSnapshot
// is populated only when zero records were produced.
type ScrapeResponse struct {
	Success       bool           `json:"success"`
	Records       []types.Record `json:"records,omitempty"`
	Error         string         `json:"error,omitempty"`
	DebugSnapshot string         `json:"debug_snapshot,omitempty"`
}

// TotalPagesRequest asks how many result pages the current document exposes.
type TotalPagesRequest struct {
	URL     string        `json:"url"`
	Variant types.Variant `json:"variant"`
}

// TotalPagesResponse reports the page count, defaulting to 1 when neither a
// pagination control nor a result-count summary was found.
type TotalPagesResponse struct {
	Success    bool   `json:"success"`
	TotalPages int    `json:"total_pages"`
	Error      string `json:"error,omitempty"`
}

// NavigateRequest asks the driver to move to a given result page by
// rewriting the page query parameter on the current address.
type NavigateRequest struct {
	Variant types.Variant `json:"variant"`
	Page    int           `json:"page"`
}

// NavigateResponse is an acknowledgment only.
type NavigateResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
