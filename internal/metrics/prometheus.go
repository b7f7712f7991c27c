package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kbsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	documents     prom.Gauge
	indexChanges  *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages (discover, sidebar, index)",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total pipeline duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Pipeline runs by final status",
		}, []string{"outcome"}),
		documents: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Documents found by the last discovery",
		}),
		indexChanges: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "index_documents_total",
			Help:      "Search index document operations by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.buildOutcome, pr.documents, pr.indexChanges)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome Outcome) {
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetDocuments(n int) {
	p.documents.Set(float64(n))
}

func (p *PrometheusRecorder) AddIndexChanges(indexed, unchanged, removed int) {
	p.indexChanges.WithLabelValues("indexed").Add(float64(indexed))
	p.indexChanges.WithLabelValues("unchanged").Add(float64(unchanged))
	p.indexChanges.WithLabelValues("removed").Add(float64(removed))
}

// HTTPHandler serves the metrics registered on reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
