package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records shopper events, catalog loads, and placed orders.
// A nil receiver or one built without a registerer records nothing.
type StorefrontMetrics struct {
	events        *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	fetchFailures *prometheus.CounterVec
	ordersPlaced  prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_events_total",
		Help: "Shopper events handled, split by whether they changed state.",
	}, []string{"kind", "applied"})
	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_catalog_fetch_seconds",
		Help:    "Duration of catalog retrievals in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	fetchFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_catalog_fetch_failures_total",
		Help: "Failed catalog retrievals.",
	}, []string{"source"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Orders confirmed by shoppers.",
	})
	reg.MustRegister(events, fetchDuration, fetchFailures, ordersPlaced)
	return &StorefrontMetrics{
		events:        events,
		fetchDuration: fetchDuration,
		fetchFailures: fetchFailures,
		ordersPlaced:  ordersPlaced,
	}
}

// ObserveEvent counts one handled event.
func (m *StorefrontMetrics) ObserveEvent(kind string, applied bool) {
	if m == nil || m.events == nil {
		return
	}
	m.events.WithLabelValues(normalizeLabel(kind), strconv.FormatBool(applied)).Inc()
}

// ObserveCatalogFetch records how long a retrieval took and whether it failed.
func (m *StorefrontMetrics) ObserveCatalogFetch(source string, duration time.Duration, err error) {
	if m == nil || m.fetchDuration == nil {
		return
	}
	source = normalizeLabel(source)
	m.fetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		m.fetchFailures.WithLabelValues(source).Inc()
	}
}

// IncOrdersPlaced counts a confirmed order.
func (m *StorefrontMetrics) IncOrdersPlaced() {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
