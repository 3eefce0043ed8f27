package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestVisitMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewVisitMetrics(reg)
	m.ObserveVisitRecorded()
	m.ObserveGatewayRequest("addVisit", "ok")
	m.ObserveGatewayLatency("addVisit", 0.25)
	m.ObserveFallbackRead()
}

func TestVisitMetricsNilSafe(t *testing.T) {
	var m *VisitMetrics
	m.ObserveVisitRecorded()
	m.ObserveGatewayRequest("getAllVisits", "error")
	m.ObserveGatewayLatency("getAllVisits", 0.1)
	m.ObserveFallbackRead()
}
