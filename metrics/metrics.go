// Package metrics exposes Prometheus instrumentation for the
// correction pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	solverInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atmcorr_solver_invocations_total",
			Help: "Total number of radiative transfer solver invocations.",
		},
		[]string{"outcome"},
	)

	bandCorrectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atmcorr_band_corrections_total",
			Help: "Total number of per-band correction pipelines.",
		},
		[]string{"outcome"},
	)

	correctionDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "atmcorr_correction_duration_seconds",
			Help:    "End-to-end correction duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(solverInvocationsTotal)
	prometheus.MustRegister(bandCorrectionsTotal)
	prometheus.MustRegister(correctionDurationSeconds)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordSolverInvocation counts one solver run and its outcome.
func RecordSolverInvocation(err error) {
	solverInvocationsTotal.WithLabelValues(outcome(err)).Inc()
}

// RecordBandCorrection counts one per-band pipeline and its outcome.
func RecordBandCorrection(err error) {
	bandCorrectionsTotal.WithLabelValues(outcome(err)).Inc()
}

// ObserveCorrectionDuration records the duration of a full correction.
func ObserveCorrectionDuration(seconds float64) {
	correctionDurationSeconds.Observe(seconds)
}
