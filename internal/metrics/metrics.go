// Package metrics exposes the pipeline's Prometheus instrumentation: one
// histogram per pipeline run and a counter broken down by the quality
// gate's overall verdict, so a deployment can alert on a rising FAIL rate
// without parsing every response body.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// AnalysisDuration records end-to-end analyze() latency in seconds.
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "steelscan",
		Name:      "analysis_duration_seconds",
		Help:      "Time to run the full drawing-analysis pipeline on one PDF.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	// AnalysisTotal counts completed runs by quality-gate verdict.
	AnalysisTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "steelscan",
		Name:      "analysis_total",
		Help:      "Completed analysis runs, labeled by overall quality verdict.",
	}, []string{"verdict"})

	// AnalysisErrorsTotal counts runs aborted on invalid input.
	AnalysisErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "steelscan",
		Name:      "analysis_errors_total",
		Help:      "Analysis runs aborted before completion, labeled by error code.",
	}, []string{"code"})
)

// Registry builds a fresh registry carrying this package's collectors, for
// callers that want to serve /metrics without reaching into the global
// default registry.
func Registry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(AnalysisDuration, AnalysisTotal, AnalysisErrorsTotal)
	return r
}

func init() {
	prometheus.MustRegister(AnalysisDuration, AnalysisTotal, AnalysisErrorsTotal)
}
