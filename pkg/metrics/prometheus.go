package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type promRecorder struct {
	inFlight prometheus.Gauge
	flights  *prometheus.CounterVec
	duration prometheus.Histogram
	releases prometheus.Counter
}

// NewPrometheus creates a Recorder that exposes flight metrics through reg.
// namespace prefixes the metric names and may be empty. Panics if a metric
// with the same name is already registered.
func NewPrometheus(reg prometheus.Registerer, namespace string) Recorder {
	r := &promRecorder{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "flight",
			Name:      "in_flight",
			Help:      "Number of flights currently executing.",
		}),
		flights: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "flight",
			Name:      "flights_total",
			Help:      "Total number of settled flights by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "flight",
			Name:      "duration_seconds",
			Help:      "Flight duration from start to settlement.",
			Buckets:   prometheus.DefBuckets,
		}),
		releases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "flight",
			Name:      "releases_total",
			Help:      "Total number of flight releases.",
		}),
	}
	reg.MustRegister(r.inFlight, r.flights, r.duration, r.releases)
	return r
}

func (r *promRecorder) FlightStarted() {
	r.inFlight.Inc()
}

func (r *promRecorder) FlightSucceeded(elapsed time.Duration) {
	r.inFlight.Dec()
	r.flights.WithLabelValues("success").Inc()
	r.duration.Observe(elapsed.Seconds())
}

func (r *promRecorder) FlightFailed(elapsed time.Duration) {
	r.inFlight.Dec()
	r.flights.WithLabelValues("error").Inc()
	r.duration.Observe(elapsed.Seconds())
}

func (r *promRecorder) FlightReleased() {
	r.releases.Inc()
}
