package pipeline

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "fundamentals_"

var (
	registerOnce sync.Once

	hotHits       prometheus.Counter
	durableHits   prometheus.Counter
	originFetches prometheus.Counter
	originErrors  prometheus.Counter
)

// initMetrics registers the cache-tier counters once per process.
func initMetrics() {
	registerOnce.Do(func() {
		hotHits = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "hot_cache_hits_total",
			Help: "Responses served from the hot cache tier",
		})
		durableHits = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "durable_cache_hits_total",
			Help: "Responses reconstructed from the durable store tier",
		})
		originFetches = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "origin_fetches_total",
			Help: "Requests that reached the filing source",
		})
		originErrors = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "origin_errors_total",
			Help: "Filing source fetches that failed",
		})
		prometheus.MustRegister(hotHits, durableHits, originFetches, originErrors)
	})
}
