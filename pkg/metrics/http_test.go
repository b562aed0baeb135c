package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveRequestRecordsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/cart", 200, 42*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/cart", 404, 5*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var sawCounter, sawHistogram bool
	var counterMetrics []*dto.Metric
	for _, fam := range families {
		switch fam.GetName() {
		case "http_requests_total":
			sawCounter = true
			counterMetrics = fam.GetMetric()
			if len(counterMetrics) != 2 {
				t.Fatalf("expected two status series, got %d", len(counterMetrics))
			}
		case "http_request_duration_seconds":
			sawHistogram = true
			if got := fam.GetMetric()[0].GetHistogram().GetSampleCount(); got != 2 {
				t.Fatalf("expected 2 histogram samples, got %d", got)
			}
		}
	}
	if !sawCounter || !sawHistogram {
		t.Fatalf("expected both metric families, counter=%v histogram=%v", sawCounter, sawHistogram)
	}
}

func TestObserveRequestNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "/", 200, time.Millisecond)
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{199: "other", 204: "2xx", 302: "3xx", 404: "4xx", 503: "5xx"}
	for status, want := range cases {
		if got := statusClass(status); got != want {
			t.Fatalf("statusClass(%d) = %q, want %q", status, got, want)
		}
	}
}
