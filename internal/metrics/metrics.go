// Package metrics counts workout activity on a private prometheus registry.
// A CLI process is short-lived, so the registry is flushed to a node-exporter
// textfile instead of being scraped.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Recorder interface {
	IncRecorded(kind string)
	IncRestored(kind string)
	IncValidationFailure(reason string)
	IncLoad(outcome string)
	IncSave(ok bool)
	ObservePersistenceDuration(op string, d time.Duration)
	SetWorkoutsInStore(n int)
}

type PrometheusRecorder struct {
	registry            *prometheus.Registry
	recorded            *prometheus.CounterVec
	restored            *prometheus.CounterVec
	validationFailures  *prometheus.CounterVec
	loads               *prometheus.CounterVec
	saves               *prometheus.CounterVec
	persistenceDuration *prometheus.HistogramVec
	inStore             prometheus.Gauge
}

func NewPrometheusRecorder() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		registry: reg,
		recorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mapty_workouts_recorded_total",
			Help: "Workouts accepted into the log, by kind.",
		}, []string{"kind"}),
		restored: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mapty_workouts_restored_total",
			Help: "Workouts brought back from a snapshot or an import, by kind.",
		}, []string{"kind"}),
		validationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mapty_validation_failures_total",
			Help: "Rejected workout inputs, by reason.",
		}, []string{"reason"}),
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mapty_snapshot_loads_total",
			Help: "Snapshot loads at startup, by outcome.",
		}, []string{"outcome"}),
		saves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mapty_snapshot_saves_total",
			Help: "Snapshot saves, by result.",
		}, []string{"result"}),
		persistenceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mapty_persistence_duration_seconds",
			Help:    "Time spent loading or saving the snapshot.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"op"}),
		inStore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mapty_workouts_in_store",
			Help: "Workouts currently held in memory.",
		}),
	}
}

func (m *PrometheusRecorder) IncRecorded(kind string) {
	m.recorded.WithLabelValues(kind).Inc()
}

func (m *PrometheusRecorder) IncRestored(kind string) {
	m.restored.WithLabelValues(kind).Inc()
}

func (m *PrometheusRecorder) IncValidationFailure(reason string) {
	m.validationFailures.WithLabelValues(reason).Inc()
}

func (m *PrometheusRecorder) IncLoad(outcome string) {
	m.loads.WithLabelValues(outcome).Inc()
}

func (m *PrometheusRecorder) IncSave(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.saves.WithLabelValues(result).Inc()
}

func (m *PrometheusRecorder) ObservePersistenceDuration(op string, d time.Duration) {
	m.persistenceDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *PrometheusRecorder) SetWorkoutsInStore(n int) {
	m.inStore.Set(float64(n))
}

// WriteTextfile writes all metrics in text exposition format to path,
// atomically replacing any previous file.
func (m *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

type noopRecorder struct{}

// Noop returns a Recorder that discards everything. It is used when no
// textfile is configured, since nothing would ever read the samples.
func Noop() Recorder { return noopRecorder{} }

func (noopRecorder) IncRecorded(string)                               {}
func (noopRecorder) IncRestored(string)                               {}
func (noopRecorder) IncValidationFailure(string)                      {}
func (noopRecorder) IncLoad(string)                                   {}
func (noopRecorder) IncSave(bool)                                     {}
func (noopRecorder) ObservePersistenceDuration(string, time.Duration) {}
func (noopRecorder) SetWorkoutsInStore(int)                           {}
