// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aliyah"

// Metrics bundles every collector group. Components receive only the group
// they record into.
type Metrics struct {
	HTTP   *HTTPMetrics
	Fields *FieldMetrics
	News   *NewsMetrics
	Cache  *CacheMetrics
	Email  *EmailMetrics
}

// New creates all collector groups and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTP:   NewHTTPMetrics(reg),
		Fields: NewFieldMetrics(reg),
		News:   NewNewsMetrics(reg),
		Cache:  NewCacheMetrics(reg),
		Email:  NewEmailMetrics(reg),
	}
}

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
