// Package metrics records orchestration metrics with Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Recorder implements ports.Metrics on a private Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	tasksLaunched *prometheus.CounterVec
	tasksFinished *prometheus.CounterVec
	taskDuration  *prometheus.HistogramVec
	idleTicks     prometheus.Counter
	runs          *prometheus.CounterVec
	runTicks      prometheus.Gauge
	unlaunched    prometheus.Gauge
}

var _ ports.Metrics = (*Recorder)(nil)

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		tasksLaunched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conduit_tasks_launched_total",
				Help: "Total number of tasks launched",
			},
			[]string{"task_type"},
		),
		tasksFinished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conduit_tasks_finished_total",
				Help: "Total number of tasks whose Process returned",
			},
			[]string{"task_type", "ok"},
		),
		taskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "conduit_task_duration_seconds",
				Help:    "Task processing duration in seconds",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"task_type"},
		),
		idleTicks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "conduit_idle_ticks_total",
				Help: "Total number of scheduling ticks that launched nothing",
			},
		),
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conduit_runs_total",
				Help: "Total number of orchestration runs by stop reason",
			},
			[]string{"reason"},
		),
		runTicks: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "conduit_run_ticks",
				Help: "Number of ticks of the last run",
			},
		),
		unlaunched: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "conduit_run_unlaunched_tasks",
				Help: "Number of tasks the last run never launched",
			},
		),
	}
}

// Registry exposes the registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// TaskLaunched counts a launch.
func (r *Recorder) TaskLaunched(taskType string) {
	r.tasksLaunched.WithLabelValues(taskType).Inc()
}

// TaskFinished counts an outcome and observes its duration.
func (r *Recorder) TaskFinished(taskType string, ok bool, elapsed time.Duration) {
	r.tasksFinished.WithLabelValues(taskType, strconv.FormatBool(ok)).Inc()
	r.taskDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
}

// IdleTick counts a tick that launched nothing.
func (r *Recorder) IdleTick() {
	r.idleTicks.Inc()
}

// RunFinished records the summary of a run.
func (r *Recorder) RunFinished(report *domain.RunReport) {
	r.runs.WithLabelValues(string(report.Reason)).Inc()
	r.runTicks.Set(float64(report.Ticks))
	r.unlaunched.Set(float64(len(report.Unlaunched)))
}

// WriteTextfile writes every metric to path in the text exposition format,
// suitable for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMetricsExportFailed, err.Error()), "path", path)
	}
	return nil
}
