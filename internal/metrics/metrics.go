// Package metrics provides Prometheus instrumentation for the polygame client.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequestsTotal counts backend calls by method, route and status.
	// Transport failures are recorded with status "error".
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polygame_client_api_requests_total",
		Help: "Total backend API requests issued by the client",
	}, []string{"method", "route", "status"})

	// APIRequestDuration tracks backend call latency by method and route.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "polygame_client_api_request_duration_seconds",
		Help:    "Backend API request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	}, []string{"method", "route"})

	// StoreInFlight is the number of loading operations running per store.
	StoreInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "polygame_client_store_inflight",
		Help: "Loading operations currently in flight per store",
	}, []string{"store"})

	// Navigations counts guarded route transitions by outcome
	// ("allowed", "redirected").
	Navigations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polygame_client_navigations_total",
		Help: "Route transitions evaluated by the navigation guard",
	}, []string{"outcome"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAPIRequest records one finished backend call. status <= 0 means the
// request never produced an HTTP response.
func ObserveAPIRequest(method, path string, status int, started time.Time) {
	route := RouteLabel(path)
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	APIRequestsTotal.WithLabelValues(method, route, label).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}

// RouteLabel collapses numeric path segments to ":id" so per-entity paths
// such as /markets/42 do not create one series each.
func RouteLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseUint(p, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
