// Package metrics records hashing operations as Prometheus metrics.
//
//	m, err := metrics.New(metrics.Options{Registerer: prometheus.DefaultRegisterer})
//	h := hashing.New("argon2id", hashing.WithObserver(m))
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// DefaultBuckets suit deliberately slow hashes: 1 ms to ~4 s.
var DefaultBuckets = prometheus.ExponentialBuckets(0.001, 2, 13)

// Options configures the collectors.
type Options struct {
	Registerer prometheus.Registerer
	Namespace  string
	Subsystem  string
	Buckets    []float64
}

// Metrics exposes the Prometheus collectors for hashing operations.  It
// implements hashing.Observer.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// New constructs the collectors and registers them with opts.Registerer
// (prometheus.DefaultRegisterer when nil).  Collectors that are already
// registered under the same names are reused.
func New(opts Options) (*Metrics, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "passhash"
	}

	subsystem := opts.Subsystem
	if subsystem == "" {
		subsystem = "hashing"
	}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = DefaultBuckets
	}

	operations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operations_total",
		Help:      "Total number of hashing operations partitioned by operation, algorithm, and outcome.",
	}, []string{"operation", "algorithm", "outcome"}))
	if err != nil {
		return nil, fmt.Errorf("register operations collector: %w", err)
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operation_duration_seconds",
		Help:      "Histogram of hashing operation latencies in seconds partitioned by operation and algorithm.",
		Buckets:   buckets,
	}, []string{"operation", "algorithm"}))
	if err != nil {
		return nil, fmt.Errorf("register duration collector: %w", err)
	}

	return &Metrics{Operations: operations, Duration: duration}, nil
}

// register registers c, or returns the collector already registered under
// the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return c, err
	}
	existing, ok := already.ExistingCollector.(C)
	if !ok {
		return c, fmt.Errorf("existing collector has unexpected type %T", already.ExistingCollector)
	}
	return existing, nil
}

// ObserveHashing records one operation.  A nil *Metrics is a no-op.
func (m *Metrics) ObserveHashing(operation, algorithm string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.Operations.WithLabelValues(operation, algorithm, outcome).Inc()
	m.Duration.WithLabelValues(operation, algorithm).Observe(elapsed.Seconds())
}
