// cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/valpere/PeopleScrapexter/internal/config"
	"github.com/valpere/PeopleScrapexter/internal/monitoring"
	"github.com/valpere/PeopleScrapexter/internal/service"
	"github.com/valpere/PeopleScrapexter/internal/utils"
	"github.com/valpere/PeopleScrapexter/pkg/api"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// backend is the subset of the service the HTTP surface needs; tests
// substitute a stub.
type backend interface {
	Navigate(ctx context.Context, url string) error
	ScrapePage(ctx context.Context, variant types.Variant) ([]types.Record, string, error)
	TotalPages(ctx context.Context, variant types.Variant) (int, error)
	NavigateToPage(ctx context.Context, page int) error
}

type server struct {
	backend backend
	logger  utils.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: server <config.yaml>")
		os.Exit(2)
	}

	cfg, err := config.LoadFromFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := utils.NewLogger()
	svc, err := service.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start service: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	s := &server{backend: svc, logger: logger}
	handler := rateLimitMiddleware(
		rate.NewLimiter(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst),
		s.routes(),
	)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // scrapes pump lazy content and can be slow
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.WithField("addr", cfg.Server.Addr).Info("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func (s *server) routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.healthHandler).Methods("GET")
	r.Handle("/metrics", monitoring.Handler()).Methods("GET")

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/scrape", s.scrapeHandler).Methods("POST")
	apiRouter.HandleFunc("/pages", s.pagesHandler).Methods("GET")
	apiRouter.HandleFunc("/navigate", s.navigateHandler).Methods("POST")

	return r
}

func rateLimitMiddleware(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// scrapeHandler navigates (when a URL is supplied) and runs one scrape
// pass. Pipeline failures come back as success=false with a debug
// snapshot; only malformed requests produce HTTP errors.
func (s *server) scrapeHandler(w http.ResponseWriter, r *http.Request) {
	var req api.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	variant, err := types.ParseVariant(string(req.Variant))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.URL != "" {
		if err := s.backend.Navigate(r.Context(), req.URL); err != nil {
			writeJSON(w, http.StatusOK, api.ScrapeResponse{Success: false, Error: err.Error()})
			return
		}
	}

	records, snapshot, err := s.backend.ScrapePage(r.Context(), variant)
	if err != nil {
		writeJSON(w, http.StatusOK, api.ScrapeResponse{
			Success:       false,
			Error:         err.Error(),
			DebugSnapshot: snapshot,
		})
		return
	}
	writeJSON(w, http.StatusOK, api.ScrapeResponse{
		Success:       true,
		Records:       records,
		DebugSnapshot: snapshot,
	})
}

func (s *server) pagesHandler(w http.ResponseWriter, r *http.Request) {
	variant, err := types.ParseVariant(r.URL.Query().Get("variant"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pages, err := s.backend.TotalPages(r.Context(), variant)
	if err != nil {
		writeJSON(w, http.StatusOK, api.TotalPagesResponse{Success: false, TotalPages: 1, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, api.TotalPagesResponse{Success: true, TotalPages: pages})
}

func (s *server) navigateHandler(w http.ResponseWriter, r *http.Request) {
	var req api.NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Page < 1 {
		http.Error(w, "page must be >= 1, got "+strconv.Itoa(req.Page), http.StatusBadRequest)
		return
	}
	if err := s.backend.NavigateToPage(r.Context(), req.Page); err != nil {
		writeJSON(w, http.StatusOK, api.NavigateResponse{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, api.NavigateResponse{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
