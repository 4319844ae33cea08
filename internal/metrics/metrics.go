// Package metrics records probe outcomes as Prometheus series so a run can
// be exported for a textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/daryltucker/gateway-probe/internal/model"
)

// Recorder owns a private registry; each run gets its own.
type Recorder struct {
	registry *prometheus.Registry
	probes   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	rate     prometheus.Gauge
}

// New creates a Recorder with all series registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_probe_results_total",
			Help: "Probes by model and outcome status",
		}, []string{"model", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gateway_probe_duration_seconds",
			Help:    "Wall-clock time of a single probe",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"status"}),
		rate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gateway_probe_success_rate_percent",
			Help: "Success rate of the last completed run",
		}),
	}
	r.registry.MustRegister(r.probes, r.latency, r.rate)
	return r
}

// Observe records one probe result.
func (r *Recorder) Observe(res model.ProbeResult) {
	r.probes.WithLabelValues(res.Model, string(res.Status)).Inc()
	r.latency.WithLabelValues(string(res.Status)).Observe(res.ResponseTime)
}

// Finish records the run-level gauge.
func (r *Recorder) Finish(s *model.RunSummary) {
	r.rate.Set(s.Summary.SuccessRate)
}

// WriteFile writes the text exposition format to path.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
