package dashboard

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK          = "ok"
	outcomeFailed      = "fetch_failed"
	outcomeLocation    = "location_failed"
	outcomeUnsupported = "unsupported"
	outcomeSuperseded  = "superseded"
)

type metrics struct {
	cycles   *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_fetch_cycles_total",
			Help: "Field data fetch cycles by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_fetch_cycle_duration_seconds",
			Help:    "Duration of fetch cycles that reached the joint wait.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.cycles, m.duration)
	return m
}
