package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis operation failures by operation name.
	RedisErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironlog_redis_errors_total",
			Help: "Total number of Redis command errors",
		},
		[]string{"operation"},
	)

	// DatabaseQueryLatency tracks database query duration by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ironlog_db_query_duration_seconds",
			Help:    "Database query latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "table"},
	)

	// LeaderboardBuilds counts leaderboard query builds by mode.
	LeaderboardBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironlog_leaderboard_builds_total",
			Help: "Total number of leaderboard builds",
		},
		[]string{"mode", "source"},
	)

	// LikeToggles counts like toggle operations by outcome.
	LikeToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironlog_like_toggles_total",
			Help: "Total number of like toggle operations",
		},
		[]string{"outcome"},
	)

	// CacheOps counts cache hits and misses by key prefix.
	CacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironlog_cache_ops_total",
			Help: "Total number of cache operations",
		},
		[]string{"prefix", "result"},
	)
)

// DatabaseMetrics provides helpers for recording database metrics.
type DatabaseMetrics struct{}

// TrackQuery records latency for a database operation. Use with defer:
//
//	defer m.TrackQuery("list", "logs")()
func (DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
