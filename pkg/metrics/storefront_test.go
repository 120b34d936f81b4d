package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStorefrontMetrics(reg)

	metrics.ObserveEvent("add_to_cart", true)
	metrics.ObserveEvent("add_to_cart", true)
	metrics.ObserveEvent("place_order", false)
	metrics.ObserveCatalogFetch("http", 250*time.Millisecond, nil)
	metrics.ObserveCatalogFetch("http", 100*time.Millisecond, errors.New("boom"))
	metrics.IncOrdersPlaced()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "storefront_events_total", map[string]string{"kind": "add_to_cart", "applied": "true"}); err != nil {
		t.Fatalf("fetch events: %v", err)
	} else if got != 2 {
		t.Fatalf("expected add_to_cart=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "storefront_events_total", map[string]string{"kind": "place_order", "applied": "false"}); err != nil {
		t.Fatalf("fetch rejected events: %v", err)
	} else if got != 1 {
		t.Fatalf("expected place_order rejected=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "storefront_catalog_fetch_failures_total", map[string]string{"source": "http"}); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}

	if got, err := fetchHistogramCount(mfs, "storefront_catalog_fetch_seconds", map[string]string{"source": "http"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got != 2 {
		t.Fatalf("expected 2 observations, got %d", got)
	}

	if got, err := fetchCounterValue(mfs, "storefront_orders_placed_total", nil); err != nil {
		t.Fatalf("fetch orders: %v", err)
	} else if got != 1 {
		t.Fatalf("expected orders=1, got %f", got)
	}
}

func TestStorefrontMetricsNilSafe(t *testing.T) {
	var nilMetrics *StorefrontMetrics
	nilMetrics.ObserveEvent("x", true)
	nilMetrics.ObserveCatalogFetch("http", time.Second, nil)
	nilMetrics.IncOrdersPlaced()

	unregistered := NewStorefrontMetrics(nil)
	unregistered.ObserveEvent("x", true)
	unregistered.ObserveCatalogFetch("http", time.Second, errors.New("boom"))
	unregistered.IncOrdersPlaced()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramCount(mfs []*dto.MetricFamily, name string, labels map[string]string) (uint64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleCount(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	for name, value := range want {
		found := false
		for _, pair := range pairs {
			if pair.GetName() == name && pair.GetValue() == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
