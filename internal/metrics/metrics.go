// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the pipeline.
//
// A global, pluggable backend defaults to a no-op implementation, so the
// pipeline can call these helpers unconditionally; a concrete backend such
// as the Pushgateway one in the prompush subpackage is installed only when
// the operator asks for it. The abstraction mirrors the storage dialect
// registry: the pipeline depends on this interface and the concrete metric
// systems stay isolated in subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)      {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error                            { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordPhase records one pipeline phase execution: its duration plus a
// success/failure counter. Phases are "extract", "transform", "load" and
// "report".
func RecordPhase(job, phase string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{
		"job":    job,
		"phase":  phase,
		"status": status,
	}
	backend.IncCounter("pipeline_phase_total", 1, lbls)
	backend.ObserveDuration("pipeline_phase_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given entity and kind.
//
// Kinds mirror the quality report fields:
//   - "processed"
//   - "duplicates_removed"
//   - "missing_handled"
//   - "loaded"
func RecordRows(job, entity, kind string, delta int) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("pipeline_rows_total", float64(delta), Labels{
		"job":    job,
		"entity": entity,
		"kind":   kind,
	})
}

// RecordBatch counts one committed load batch for the given job.
func RecordBatch(job string) {
	backend.IncCounter("pipeline_batches_total", 1, Labels{"job": job})
}
