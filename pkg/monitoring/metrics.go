package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "HTTP requests served, by route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_upstream_duration_seconds",
			Help:    "Latency of calls to the booking backend",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 8),
		},
		[]string{"endpoint", "outcome"},
	)

	seatUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seat_updates_total",
			Help: "Block/unblock submissions by operation and result",
		},
		[]string{"operation", "result"},
	)

	seatsUpdated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seats_updated_total",
			Help: "Seats the booking backend reported as updated",
		},
		[]string{"operation"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_lookups_total",
			Help: "Cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)

	activeWorkspaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seat_workspaces_active",
			Help: "Staff sessions with an open block/unblock workspace",
		},
	)
)

// ObserveUpstream records one booking backend call. outcome is "ok" or an
// HTTP status code or "error" for transport failures.
func ObserveUpstream(endpoint, outcome string, elapsed time.Duration) {
	upstreamDuration.WithLabelValues(endpoint, outcome).Observe(elapsed.Seconds())
}

func TrackSeatUpdate(operation, result string, seats int) {
	seatUpdates.WithLabelValues(operation, result).Inc()
	if seats > 0 {
		seatsUpdated.WithLabelValues(operation).Add(float64(seats))
	}
}

func TrackCache(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(cache, result).Inc()
}

func SetActiveWorkspaces(n int) {
	activeWorkspaces.Set(float64(n))
}

// Metrics records count and latency per chi route pattern.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
