package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests          *prometheus.CounterVec
	HTTPDuration          *prometheus.HistogramVec
	ApplicationsSubmitted *prometheus.CounterVec
	MediaUploads          *prometheus.CounterVec
	Translations          *prometheus.CounterVec
}

// New creates all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sahakari_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sahakari_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		ApplicationsSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sahakari_applications_submitted_total",
			Help: "Account and loan applications submitted",
		}, []string{"kind"}),
		MediaUploads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sahakari_media_uploads_total",
			Help: "Files stored through the media delegate by folder",
		}, []string{"folder"}),
		Translations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sahakari_translations_total",
			Help: "Translation lookups by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementApplication(kind string) {
	if m == nil {
		return
	}
	m.ApplicationsSubmitted.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementUpload(folder string) {
	if m == nil {
		return
	}
	m.MediaUploads.WithLabelValues(folder).Inc()
}

func (m *Metrics) IncrementTranslation(outcome string) {
	if m == nil {
		return
	}
	m.Translations.WithLabelValues(outcome).Inc()
}
