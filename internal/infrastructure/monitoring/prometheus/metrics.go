package prometheus

import "time"

// AnalysisMetrics holds all metrics emitted by the enrichment pipeline.
type AnalysisMetrics struct {
	// Run lifecycle
	RunsTotal   CounterVec
	RunDuration HistogramVec

	// Engine internals
	TermsTested    HistogramVec
	ResultsEmitted HistogramVec
	UnmappedGenes  CounterVec
	QuerySize      HistogramVec

	// Clustering
	DendrogramsTotal CounterVec
	DendrogramLeaves HistogramVec

	// Failures
	ErrorsTotal CounterVec
}

// Default Buckets
var (
	// Runs are in-memory and usually finish in well under a second; the tail
	// covers genome-scale backgrounds.
	DefaultRunDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultCountBuckets       = []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000}
	DefaultLeafCountBuckets   = []float64{2, 5, 10, 25, 50, 100, 250, 500}
)

// NewAnalysisMetrics registers all pipeline metrics and returns the bundle.
func NewAnalysisMetrics(collector MetricsCollector) *AnalysisMetrics {
	m := &AnalysisMetrics{}

	m.RunsTotal = collector.RegisterCounter("runs_total", "Enrichment runs", "mode", "status")
	m.RunDuration = collector.RegisterHistogram("run_duration_seconds", "Enrichment run duration", DefaultRunDurationBuckets, "mode")

	m.TermsTested = collector.RegisterHistogram("terms_tested", "Terms tested per run", DefaultCountBuckets, "mode")
	m.ResultsEmitted = collector.RegisterHistogram("results_emitted", "Result rows emitted per run", DefaultCountBuckets, "mode")
	m.UnmappedGenes = collector.RegisterCounter("unmapped_genes_total", "Query genes that failed identifier resolution", "mode")
	m.QuerySize = collector.RegisterHistogram("query_size", "Query genes per run", DefaultCountBuckets, "mode")

	m.DendrogramsTotal = collector.RegisterCounter("dendrograms_total", "Dendrogram build outcomes", "outcome")
	m.DendrogramLeaves = collector.RegisterHistogram("dendrogram_leaves", "Leaves per built dendrogram", DefaultLeafCountBuckets)

	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Pipeline errors", "component", "code")

	return m
}

// Helpers

// RecordRun records the aggregate counters for one finished enrichment run.
func RecordRun(metrics *AnalysisMetrics, mode string, success bool, duration time.Duration, termsTested, emitted, querySize, unmapped int) {
	if metrics == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	metrics.RunsTotal.WithLabelValues(mode, status).Inc()
	metrics.RunDuration.WithLabelValues(mode).Observe(duration.Seconds())
	metrics.TermsTested.WithLabelValues(mode).Observe(float64(termsTested))
	metrics.ResultsEmitted.WithLabelValues(mode).Observe(float64(emitted))
	metrics.QuerySize.WithLabelValues(mode).Observe(float64(querySize))
	if unmapped > 0 {
		metrics.UnmappedGenes.WithLabelValues(mode).Add(float64(unmapped))
	}
}

// RecordDendrogram records a dendrogram build outcome.  leaves is only
// observed when built is true.
func RecordDendrogram(metrics *AnalysisMetrics, built bool, leaves int) {
	if metrics == nil {
		return
	}
	outcome := "built"
	if !built {
		outcome = "insufficient_data"
	}
	metrics.DendrogramsTotal.WithLabelValues(outcome).Inc()
	if built {
		metrics.DendrogramLeaves.WithLabelValues().Observe(float64(leaves))
	}
}

// RecordError records a classified pipeline error.
func RecordError(metrics *AnalysisMetrics, component, code string) {
	if metrics == nil {
		return
	}
	metrics.ErrorsTotal.WithLabelValues(component, code).Inc()
}
