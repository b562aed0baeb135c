package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCronJobMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCronJobMetrics(reg)
	metrics.ObserveDuration("order-expiry", 250*time.Millisecond)
	metrics.IncSuccess("order-expiry")
	metrics.IncFailure("cart-retention")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	byName := map[string]*dto.MetricFamily{}
	for _, mf := range mfs {
		byName[mf.GetName()] = mf
	}

	success := byName["job_success"]
	if success == nil || len(success.GetMetric()) != 1 {
		t.Fatal("expected one job_success series")
	}
	if got := success.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected success=1, got %f", got)
	}

	failure := byName["job_failure"]
	if failure == nil || len(failure.GetMetric()) != 1 {
		t.Fatal("expected one job_failure series")
	}
	if got := failure.GetMetric()[0].GetLabel()[0].GetValue(); got != "cart-retention" {
		t.Fatalf("expected failure labelled cart-retention, got %q", got)
	}

	duration := byName["job_duration_seconds"]
	if duration == nil || len(duration.GetMetric()) != 1 {
		t.Fatal("expected one job_duration_seconds series")
	}
	if sum := duration.GetMetric()[0].GetHistogram().GetSampleSum(); sum <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", sum)
	}
}

func TestCronJobMetricsNilReceiverIsSafe(t *testing.T) {
	var metrics *CronJobMetrics
	metrics.ObserveDuration("noop", time.Second)
	metrics.IncSuccess("noop")
	metrics.IncFailure("noop")
}
