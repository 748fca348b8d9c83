package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts query service requests by route pattern, method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptvindex_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"route", "method", "status"})

	// HTTPDuration tracks request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "iptvindex_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// DatasetLoadFailures counts requests that could not load the channel dataset.
	DatasetLoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iptvindex_dataset_load_failures_total",
		Help: "Total number of failed channel dataset loads",
	})

	// DatasetChannels is the size of the dataset this process last loaded or
	// published.
	DatasetChannels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "iptvindex_dataset_channels",
		Help: "Number of channels in the most recently loaded or published dataset",
	})
)

// ObserveRequest records one finished request. An empty route (no pattern
// matched) is reported as "unmatched" to keep label cardinality bounded.
func ObserveRequest(route, method string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

// RecordLoadFailure increments the dataset load failure counter.
func RecordLoadFailure() {
	DatasetLoadFailures.Inc()
}

// SetDatasetChannels records the size of a freshly loaded or published dataset.
func SetDatasetChannels(n int) {
	DatasetChannels.Set(float64(n))
}
