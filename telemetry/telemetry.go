// Package telemetry collects in-process metrics for a single run.
package telemetry

import (
	"sort"
	"time"

	"github.com/armon/go-metrics"
	"github.com/rs/zerolog"
)

// interval is long enough that a whole run lands in one bucket.
const interval = time.Hour

// Metrics wraps a go-metrics instance backed by an in-memory sink. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	sink    *metrics.InmemSink
	metrics *metrics.Metrics
}

// New returns Metrics whose keys are prefixed with serviceName.
func New(serviceName string) (*Metrics, error) {
	sink := metrics.NewInmemSink(interval, interval)

	cfg := metrics.DefaultConfig(serviceName)
	cfg.EnableHostname = false
	cfg.EnableHostnameLabel = false
	cfg.EnableRuntimeMetrics = false

	m, err := metrics.New(cfg, sink)
	if err != nil {
		return nil, err
	}

	return &Metrics{sink: sink, metrics: m}, nil
}

// IncrCounter adds val to the counter named by key.
func (m *Metrics) IncrCounter(key []string, val float32) {
	if m == nil {
		return
	}
	m.metrics.IncrCounter(key, val)
}

// SetGauge sets the gauge named by key.
func (m *Metrics) SetGauge(key []string, val float32) {
	if m == nil {
		return
	}
	m.metrics.SetGauge(key, val)
}

// MeasureSince records the time elapsed since start under key.
func (m *Metrics) MeasureSince(key []string, start time.Time) {
	if m == nil {
		return
	}
	m.metrics.MeasureSince(key, start)
}

// Snapshot flattens every counter, gauge and sample recorded so far into a
// map of key to value. Counters and samples report their sum.
func (m *Metrics) Snapshot() map[string]float64 {
	out := make(map[string]float64)
	if m == nil {
		return out
	}

	for _, im := range m.sink.Data() {
		im.RLock()
		for k, v := range im.Counters {
			out[k] += v.Sum
		}
		for k, v := range im.Samples {
			out[k] += v.Sum
		}
		for k, v := range im.Gauges {
			out[k] = float64(v.Value)
		}
		im.RUnlock()
	}

	return out
}

// Log writes the snapshot as a single structured log event.
func (m *Metrics) Log(logger zerolog.Logger) {
	snapshot := m.Snapshot()
	if len(snapshot) == 0 {
		return
	}

	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	event := logger.Info()
	for _, k := range keys {
		event = event.Float64(k, snapshot[k])
	}
	event.Msg("run metrics")
}
