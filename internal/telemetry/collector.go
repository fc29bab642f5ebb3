// Package telemetry expõe as métricas Prometheus do serviço.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
)

// Collector agrupa os vetores de métricas com um registry próprio
type Collector struct {
	registry *prometheus.Registry

	RebuildRuns        *prometheus.CounterVec
	RebuildDuration    *prometheus.HistogramVec
	DerivedRows        *prometheus.GaugeVec
	NarrativeRequests  *prometheus.CounterVec
	NarrativeDuration  *prometheus.HistogramVec
	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		RebuildRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metrics_rebuild_runs_total",
			Help:      "Total de execuções do recálculo das métricas",
		}, []string{"trigger", "status"}),
		RebuildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "metrics_rebuild_duration_seconds",
			Help:      "Duração do recálculo das métricas em segundos",
			Buckets:   prometheus.DefBuckets,
		}, []string{"trigger"}),
		DerivedRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "derived_rows",
			Help:      "Linhas gravadas na última execução, por tabela",
		}, []string{"table"}),
		NarrativeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_requests_total",
			Help:      "Total de narrativas solicitadas ao modelo",
		}, []string{"kind", "provider", "status"}),
		NarrativeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "narrative_duration_seconds",
			Help:      "Duração das chamadas ao modelo em segundos",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"kind", "provider"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requisições HTTP",
		}, []string{"method", "path", "status_code"}),
		HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP em segundos",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		c.RebuildRuns,
		c.RebuildDuration,
		c.DerivedRows,
		c.NarrativeRequests,
		c.NarrativeDuration,
		c.HTTPRequestsTotal,
		c.HTTPRequestLatency,
	)

	return c
}

// ObserveRebuild registra o resultado e a duração de uma execução do recálculo
func (c *Collector) ObserveRebuild(trigger, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.RebuildRuns.WithLabelValues(trigger, status).Inc()
	c.RebuildDuration.WithLabelValues(trigger).Observe(duration.Seconds())
}

func (c *Collector) SetDerivedRows(table string, rows int) {
	if c == nil {
		return
	}
	c.DerivedRows.WithLabelValues(table).Set(float64(rows))
}

func (c *Collector) ObserveNarrative(kind, provider, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.NarrativeRequests.WithLabelValues(kind, provider, status).Inc()
	if status != StatusSkipped {
		c.NarrativeDuration.WithLabelValues(kind, provider).Observe(duration.Seconds())
	}
}

// ObserveHTTP usa o path da rota registrada para não explodir a cardinalidade com ids
func (c *Collector) ObserveHTTP(method, path string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	c.HTTPRequestLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler serve o registry no formato de exposição do Prometheus
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
