package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics holds the guts collectors.
type Metrics struct {
	Validations    *prometheus.CounterVec
	CodecOps       *prometheus.CounterVec
	CodecDurations *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := newMetrics()
	reg.MustRegister(m.Validations, m.CodecOps, m.CodecDurations)
	m.gatherer = reg
	return m
}

// NewMetricsWith registers the collectors on r, which also serves as the
// gatherer for Handler when it implements prometheus.Gatherer.
func NewMetricsWith(r prometheus.Registerer) (*Metrics, error) {
	m := newMetrics()
	for _, c := range []prometheus.Collector{m.Validations, m.CodecOps, m.CodecDurations} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	if g, ok := r.(prometheus.Gatherer); ok {
		m.gatherer = g
	} else {
		m.gatherer = prometheus.DefaultGatherer
	}
	return m, nil
}

func newMetrics() *Metrics {
	return &Metrics{
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guts_validations_total",
				Help: "Total number of record validations by kind and result",
			},
			[]string{"kind", "result"},
		),
		CodecOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guts_codec_operations_total",
				Help: "Total number of codec dumps and loads",
			},
			[]string{"codec", "op", "result"},
		),
		CodecDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "guts_codec_duration_seconds",
				Help:    "Duration of codec dumps and loads",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"codec", "op"},
		),
	}
}

// ResultOf maps an error to a result label. Validation failures are
// "invalid"; any other error is "error".
func ResultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, schema.ErrValidation):
		return ResultInvalid
	default:
		return ResultError
	}
}

// ObserveValidation counts one validation of kind. A nil *Metrics is a no-op.
func (m *Metrics) ObserveValidation(kind string, err error) {
	if m == nil {
		return
	}
	m.Validations.WithLabelValues(kind, ResultOf(err)).Inc()
}

// ObserveCodec counts one codec operation started at start.
func (m *Metrics) ObserveCodec(codec, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.CodecOps.WithLabelValues(codec, op, ResultOf(err)).Inc()
	m.CodecDurations.WithLabelValues(codec, op).Observe(time.Since(start).Seconds())
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
