// Package metrics provides the centralized Prometheus metrics registry for
// the harvester. All metrics are defined in their respective packages
// (fetch, cache, pacing, scrape) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the harvester.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/fetch):
//   - scrape_requests_total{status} (Counter): Page requests by HTTP status
//     (plus the synthetic "network_error" status)
//   - scrape_request_duration_seconds (Histogram): Page request duration
//   - scrape_errors_total{class} (Counter): Fetch errors by class
//     (client, server, rate_limit, network)
//
// Retry Metrics (pkg/fetch):
//   - scrape_retries_total{error_class} (Counter): Retry attempts by error class
//   - scrape_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - scrape_retry_exhausted_total{error_class} (Counter): Fetches that exhausted the retry budget
//
// Page Cache Metrics (pkg/cache):
//   - scrape_page_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - scrape_page_cache_misses_total (Counter): Cache misses
//   - scrape_page_cache_size_bytes{layer="redis"} (Gauge): Cached bytes written
//   - scrape_page_cache_errors_total{operation} (Counter): Cache operation errors
//
// Pacing Metrics (pkg/pacing):
//   - scrape_pacer_pauses_total (Counter): Post-fetch pacing pauses
//   - scrape_pacer_pause_seconds_total (Counter): Total time spent pausing
//
// Partition Metrics (pkg/scrape):
//   - scrape_partitions_total{pass, outcome} (Counter): Decade partitions by
//     pass (slugs, critic, user) and outcome (ok, error)
//
// Example Prometheus Queries:
//
//   # Page cache hit rate
//   sum(rate(scrape_page_cache_hits_total[5m])) /
//   (sum(rate(scrape_page_cache_hits_total[5m])) + sum(rate(scrape_page_cache_misses_total[5m])))
//
//   # Retry pressure by class
//   rate(scrape_retries_total[5m])
//
//   # P95 page latency
//   histogram_quantile(0.95, rate(scrape_request_duration_seconds_bucket[5m]))
//
//   # Partition failure ratio
//   rate(scrape_partitions_total{outcome="error"}[1h]) /
//   rate(scrape_partitions_total[1h])
