package observability

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/employees", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/employees", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/api/employees", "POST", 201, 9*time.Millisecond)

	if got := m.RequestTotal("/api/employees", "GET", 200); got != 2 {
		t.Errorf("expected 2 GET requests, got %d", got)
	}
	if got := m.RequestTotal("/api/employees", "POST", 201); got != 1 {
		t.Errorf("expected 1 POST request, got %d", got)
	}
	if got := m.RequestTotal("/api/employees", "DELETE", 200); got != 0 {
		t.Errorf("expected 0 DELETE requests, got %d", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "INTERNAL_ERROR")
	if m.RequestTotal("/", "GET", 200) != 0 {
		t.Error("nil metrics should report zero")
	}
}
