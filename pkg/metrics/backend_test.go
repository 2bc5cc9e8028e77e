package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestBackendMetricsExportsHistogramAndFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewBackendMetrics(reg)
	metrics.Observe("GET", "/products/{id}", 200, 120*time.Millisecond)
	metrics.Observe("POST", "/orders", 500, 80*time.Millisecond)
	metrics.Observe("POST", "/orders", 0, 10*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchHistogramCount(mfs, "backend_request_duration_seconds", "status", "200"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got != 1 {
		t.Fatalf("expected one 200 sample, got %d", got)
	}

	if _, err := fetchHistogramCount(mfs, "backend_request_duration_seconds", "status", "transport_error"); err != nil {
		t.Fatalf("transport errors should be labelled: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "backend_request_failures_total", "route", "/orders"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 2 {
		t.Fatalf("expected failures=2, got %f", got)
	}
}

func TestNilBackendMetricsIsNoop(t *testing.T) {
	var metrics *BackendMetrics
	metrics.Observe("GET", "/cart", 200, time.Millisecond)
	NewBackendMetrics(nil).Observe("GET", "/cart", 500, time.Millisecond)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("counter %q missing label %s=%s", name, label, value)
}

func fetchHistogramCount(mfs []*dto.MetricFamily, name, label, value string) (uint64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleCount(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
