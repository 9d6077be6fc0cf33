// internal/monitoring/metrics.go
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the extraction pipeline.
type Metrics struct {
	scrapesTotal      *prometheus.CounterVec
	recordsExtracted  *prometheus.CounterVec
	candidatesLocated *prometheus.HistogramVec
	candidatesKept    *prometheus.HistogramVec
	extractionTime    *prometheus.HistogramVec
	pumpTicks         prometheus.Histogram
	recordsWritten    *prometheus.CounterVec
	outputErrors      *prometheus.CounterVec
}

// NewMetrics registers the pipeline collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		scrapesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "peoplescrapexter_scrapes_total",
			Help: "Total scrape invocations by variant and outcome",
		}, []string{"variant", "success"}),
		recordsExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "peoplescrapexter_records_extracted_total",
			Help: "Total person records produced",
		}, []string{"variant"}),
		candidatesLocated: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "peoplescrapexter_candidates_located",
			Help:    "Candidates located per scrape",
			Buckets: prometheus.LinearBuckets(0, 5, 12),
		}, []string{"variant"}),
		candidatesKept: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "peoplescrapexter_candidates_kept",
			Help:    "Candidates passing the score threshold per scrape",
			Buckets: prometheus.LinearBuckets(0, 5, 12),
		}, []string{"variant"}),
		extractionTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "peoplescrapexter_extraction_seconds",
			Help:    "Wall time of the extraction pipeline",
			Buckets: prometheus.DefBuckets,
		}, []string{"variant"}),
		pumpTicks: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "peoplescrapexter_pump_ticks",
			Help:    "Poll ticks taken by the lazy-load pump before settling",
			Buckets: prometheus.LinearBuckets(0, 10, 16),
		}),
		recordsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "peoplescrapexter_records_written_total",
			Help: "Records written per output sink",
		}, []string{"sink"}),
		outputErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "peoplescrapexter_output_errors_total",
			Help: "Write failures per output sink",
		}, []string{"sink"}),
	}
}

// defaultMetrics backs the package-level helpers used by the pipeline.
var defaultMetrics = NewMetrics(prometheus.DefaultRegisterer)

// ObserveScrape records the outcome of one extraction-pipeline run.
func ObserveScrape(variant string, located, kept, records int, elapsed time.Duration) {
	defaultMetrics.scrapesTotal.WithLabelValues(variant, strconv.FormatBool(records > 0)).Inc()
	defaultMetrics.recordsExtracted.WithLabelValues(variant).Add(float64(records))
	defaultMetrics.candidatesLocated.WithLabelValues(variant).Observe(float64(located))
	defaultMetrics.candidatesKept.WithLabelValues(variant).Observe(float64(kept))
	defaultMetrics.extractionTime.WithLabelValues(variant).Observe(elapsed.Seconds())
}

// ObservePump records how many ticks the lazy-load pump took.
func ObservePump(ticks int) {
	defaultMetrics.pumpTicks.Observe(float64(ticks))
}

// ObserveOutput records a sink write.
func ObserveOutput(sink string, records int, err error) {
	if err != nil {
		defaultMetrics.outputErrors.WithLabelValues(sink).Inc()
		return
	}
	defaultMetrics.recordsWritten.WithLabelValues(sink).Add(float64(records))
}

// Handler exposes the default registry over HTTP.
func Handler() http.Handler {
	return promhttp.Handler()
}
