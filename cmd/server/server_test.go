// cmd/server/server_test.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/valpere/PeopleScrapexter/internal/utils"
	"github.com/valpere/PeopleScrapexter/pkg/api"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

type stubBackend struct {
	records    []types.Record
	snapshot   string
	totalPages int
	scrapeErr  error
	navigated  []string
	pages      []int
}

func (s *stubBackend) Navigate(ctx context.Context, url string) error {
	s.navigated = append(s.navigated, url)
	return nil
}

func (s *stubBackend) ScrapePage(ctx context.Context, variant types.Variant) ([]types.Record, string, error) {
	return s.records, s.snapshot, s.scrapeErr
}

func (s *stubBackend) TotalPages(ctx context.Context, variant types.Variant) (int, error) {
	return s.totalPages, nil
}

func (s *stubBackend) NavigateToPage(ctx context.Context, page int) error {
	s.pages = append(s.pages, page)
	return nil
}

func newTestServer(b backend) *server {
	return &server{backend: b, logger: utils.NewNopLogger()}
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(&stubBackend{})
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", body["status"])
	}
}

func TestScrapeHandler(t *testing.T) {
	stub := &stubBackend{
		records: []types.Record{
			{Name: "Jane Doe", ProfileURL: "https://example.com/in/jane"},
		},
	}
	s := newTestServer(stub)

	payload, _ := json.Marshal(api.ScrapeRequest{
		URL:     "https://example.com/search",
		Variant: types.VariantPrimary,
	})
	req := httptest.NewRequest("POST", "/api/v1/scrape", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp api.ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if !resp.Success || len(resp.Records) != 1 || resp.Records[0].Name != "Jane Doe" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(stub.navigated) != 1 || stub.navigated[0] != "https://example.com/search" {
		t.Errorf("navigations = %v, want the requested URL", stub.navigated)
	}
}

func TestScrapeHandlerPipelineFailure(t *testing.T) {
	stub := &stubBackend{
		scrapeErr: fmt.Errorf("no candidates located"),
		snapshot:  "url=x | login=unknown",
	}
	s := newTestServer(stub)

	payload, _ := json.Marshal(api.ScrapeRequest{Variant: types.VariantPrimary})
	req := httptest.NewRequest("POST", "/api/v1/scrape", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	// Pipeline failures are reported in-band, not as HTTP errors.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp api.ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("expected in-band failure, got %+v", resp)
	}
	if resp.DebugSnapshot == "" {
		t.Error("debug snapshot should be passed through on failure")
	}
}

func TestScrapeHandlerBadRequests(t *testing.T) {
	s := newTestServer(&stubBackend{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{not json"},
		{"unknown variant", `{"variant":"tertiary"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/scrape", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			s.routes().ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestPagesHandler(t *testing.T) {
	s := newTestServer(&stubBackend{totalPages: 7})

	req := httptest.NewRequest("GET", "/api/v1/pages?variant=secondary", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp api.TotalPagesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if !resp.Success || resp.TotalPages != 7 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestNavigateHandler(t *testing.T) {
	stub := &stubBackend{}
	s := newTestServer(stub)

	payload, _ := json.Marshal(api.NavigateRequest{Variant: types.VariantPrimary, Page: 4})
	req := httptest.NewRequest("POST", "/api/v1/navigate", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(stub.pages) != 1 || stub.pages[0] != 4 {
		t.Errorf("pages = %v, want [4]", stub.pages)
	}
}

func TestNavigateHandlerRejectsBadPage(t *testing.T) {
	s := newTestServer(&stubBackend{})

	payload, _ := json.Marshal(api.NavigateRequest{Page: 0})
	req := httptest.NewRequest("POST", "/api/v1/navigate", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(&stubBackend{})
	limiter := rate.NewLimiter(rate.Limit(1), 2)
	handler := rateLimitMiddleware(limiter, s.routes())

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first requests within burst should pass, got %v", codes)
	}
	limited := false
	for _, c := range codes {
		if c == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Error("expected at least one rate-limited response")
	}
}
