package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maltedev/product-scraper/internal/models"
)

// Outcome labels for ScrapesTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeFetchFailed  = "fetch_failed"
	OutcomeUnusable     = "unusable"
)

// Metrics holds the Prometheus collectors of the scrape service. Each
// instance owns its registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	ScrapesTotal  *prometheus.CounterVec
	FieldMatches  *prometheus.CounterVec
	FetchDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ScrapesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_requests_total",
			Help: "Scrape requests by strategy and outcome",
		}, []string{"strategy", "outcome"}),
		FieldMatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_field_matches_total",
			Help: "Fields extracted, by strategy, field and winning candidate",
		}, []string{"strategy", "field", "candidate"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "scraper_fetch_duration_seconds",
			Help:    "Time spent fetching page markup",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncScrape(strategy, outcome string) {
	m.ScrapesTotal.WithLabelValues(strategy, outcome).Inc()
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	m.FetchDuration.Observe(d.Seconds())
}

// ObserveProvenance counts one match per field a candidate supplied.
func (m *Metrics) ObserveProvenance(p models.Provenance) {
	fields := []struct {
		name      string
		candidate string
	}{
		{"name", p.Name},
		{"price", p.Price},
		{"image", p.Image},
		{"variants", p.Variants},
	}
	for _, f := range fields {
		if f.candidate != "" {
			m.FieldMatches.WithLabelValues(p.Strategy, f.name, f.candidate).Inc()
		}
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
