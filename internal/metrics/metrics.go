package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonkarrer/brize/internal/domain"
)

// OutcomeSuccess labels a stage that completed without error. Failed stages
// are labelled with their error kind.
const OutcomeSuccess = "success"

const outcomeError = "error"

var stageBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60}

// Recorder keeps per-stage timings on a private registry so repeated runs in
// one process never collide with the default registerer.
type Recorder struct {
	registry      *prometheus.Registry
	stageDuration *prometheus.HistogramVec
	stageResults  *prometheus.CounterVec
}

// New constructs a Recorder with its collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "brize",
			Subsystem: "setup",
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each setup stage",
			Buckets:   stageBuckets,
		}, []string{"stage"}),
		stageResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brize",
			Subsystem: "setup",
			Name:      "stage_results_total",
			Help:      "Number of setup stage outcomes",
		}, []string{"stage", "outcome"}),
	}
	r.registry.MustRegister(r.stageDuration, r.stageResults)
	return r
}

// Observe records how long stage took and how it ended.
func (r *Recorder) Observe(stage string, took time.Duration, err error) {
	if r == nil {
		return
	}
	r.stageDuration.With(prometheus.Labels{"stage": stage}).Observe(took.Seconds())
	r.stageResults.With(prometheus.Labels{"stage": stage, "outcome": Outcome(err)}).Inc()
}

// Outcome maps err onto a result label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	if kind := domain.KindOf(err); kind != "" {
		return string(kind)
	}
	return outcomeError
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every collected series to path in the text
// exposition format understood by the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
