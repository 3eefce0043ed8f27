package metrics

import "github.com/prometheus/client_golang/prometheus"

// VisitMetrics exposes counters/histograms for visit recording and gateway sync.
type VisitMetrics struct {
	visitsRecorded  prometheus.Counter
	gatewayRequests *prometheus.CounterVec
	gatewayLatency  *prometheus.HistogramVec
	fallbackReads   prometheus.Counter
}

func NewVisitMetrics(reg prometheus.Registerer) *VisitMetrics {
	m := &VisitMetrics{
		visitsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ptfollowup",
			Subsystem: "visits",
			Name:      "recorded_total",
			Help:      "Total visits recorded",
		}),
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptfollowup",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total persistence gateway calls",
		}, []string{"action", "status"}),
		gatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ptfollowup",
			Subsystem: "gateway",
			Name:      "request_latency_seconds",
			Help:      "Latency of persistence gateway calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
		fallbackReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ptfollowup",
			Subsystem: "gateway",
			Name:      "fallback_reads_total",
			Help:      "Reads served from the local cache after a gateway failure",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.visitsRecorded, m.gatewayRequests, m.gatewayLatency, m.fallbackReads)
	return m
}

func (m *VisitMetrics) ObserveVisitRecorded() {
	if m == nil {
		return
	}
	m.visitsRecorded.Inc()
}

func (m *VisitMetrics) ObserveGatewayRequest(action, status string) {
	if m == nil {
		return
	}
	m.gatewayRequests.WithLabelValues(action, status).Inc()
}

func (m *VisitMetrics) ObserveGatewayLatency(action string, seconds float64) {
	if m == nil {
		return
	}
	m.gatewayLatency.WithLabelValues(action).Observe(seconds)
}

func (m *VisitMetrics) ObserveFallbackRead() {
	if m == nil {
		return
	}
	m.fallbackReads.Inc()
}
