// Package metrics records per-run operational metrics and pushes them to a
// Prometheus Pushgateway. A batch pipeline has no scrape endpoint to expose,
// so the push model is used: each run sets its gauges and pushes once at the
// end, success or failure. With no gateway configured the recorder still
// collects values (tests read them) but Push is a no-op.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// RunRecorder collects the metrics of one pipeline run.
type RunRecorder struct {
	job        string
	gatewayURL string
	registry   *prometheus.Registry

	rowsRead      *prometheus.GaugeVec
	rowsValidated *prometheus.GaugeVec
	runDuration   prometheus.Gauge
	runSuccess    prometheus.Gauge
}

// NewRunRecorder creates a recorder for the named job. gatewayURL may be
// empty to disable pushing.
func NewRunRecorder(job, gatewayURL string) *RunRecorder {
	registry := prometheus.NewRegistry()

	rowsRead := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pipeline_rows_read",
		Help: "Raw rows read in this run, partitioned by source.",
	}, []string{"source"})
	rowsValidated := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pipeline_rows_validated",
		Help: "Rows that passed validation in this run, partitioned by source.",
	}, []string{"source"})
	runDuration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pipeline_run_duration_seconds",
		Help: "Wall-clock duration of the run in seconds.",
	})
	runSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pipeline_run_success",
		Help: "1 when the run completed, 0 when it aborted.",
	})

	registry.MustRegister(rowsRead, rowsValidated, runDuration, runSuccess)

	return &RunRecorder{
		job:           job,
		gatewayURL:    gatewayURL,
		registry:      registry,
		rowsRead:      rowsRead,
		rowsValidated: rowsValidated,
		runDuration:   runDuration,
		runSuccess:    runSuccess,
	}
}

// SetRowsRead records the raw row count for a source.
func (r *RunRecorder) SetRowsRead(source string, rows int) {
	r.rowsRead.WithLabelValues(source).Set(float64(rows))
}

// SetRowsValidated records the validated row count for a source.
func (r *RunRecorder) SetRowsValidated(source string, rows int) {
	r.rowsValidated.WithLabelValues(source).Set(float64(rows))
}

// ObserveRun records the run's duration and outcome.
func (r *RunRecorder) ObserveRun(d time.Duration, success bool) {
	r.runDuration.Set(d.Seconds())
	if success {
		r.runSuccess.Set(1)
	} else {
		r.runSuccess.Set(0)
	}
}

// Push sends the collected metrics to the Pushgateway, grouped under the
// job name. A recorder without a gateway pushes nowhere and returns nil.
func (r *RunRecorder) Push() error {
	if r.gatewayURL == "" {
		return nil
	}
	if err := push.New(r.gatewayURL, r.job).Gatherer(r.registry).Push(); err != nil {
		return fmt.Errorf("push run metrics: %w", err)
	}
	return nil
}
