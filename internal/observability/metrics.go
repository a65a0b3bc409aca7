package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplist_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shoplist_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// AuthAttempts counts register/login/resolve outcomes.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplist_auth_attempts_total",
		Help: "Authentication attempts by operation and outcome",
	}, []string{"operation", "outcome"})

	// ItemMutations counts successful shopping item writes.
	ItemMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplist_item_mutations_total",
		Help: "Shopping item mutations by operation",
	}, []string{"operation"})

	// PhotoUploads counts processed uploads by result.
	PhotoUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplist_photo_uploads_total",
		Help: "Photo uploads by result",
	}, []string{"result"})

	// ActiveWebSockets is the gauge of open live sync connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shoplist_websocket_connections_active",
		Help: "Number of active live sync WebSocket connections",
	})

	// WebSocketBackpressureDrops counts events dropped because a client send buffer was full.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplist_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordAuth increments the auth attempt counter.
func RecordAuth(operation, outcome string) {
	AuthAttempts.WithLabelValues(operation, outcome).Inc()
}
