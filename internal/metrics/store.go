package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog store Prometheus metrics, recorded by db.InstrumentedStore.
var (
	StoreQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resources_api",
			Name:      "store_queries_total",
			Help:      "Total number of catalog store queries",
		},
		[]string{"driver", "operation", "status"},
	)

	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resources_api",
			Name:      "store_query_duration_seconds",
			Help:      "Catalog store query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"driver", "operation"},
	)
)

var storeMetricsRegistered bool

// RegisterStoreMetrics registers Prometheus store metrics. Must be called
// once from main.
func RegisterStoreMetrics() {
	if storeMetricsRegistered {
		return
	}
	prometheus.MustRegister(StoreQueriesTotal)
	prometheus.MustRegister(StoreQueryDuration)
	storeMetricsRegistered = true
}
