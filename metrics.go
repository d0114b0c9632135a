package metasonic

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "metasonic"

// Block outcome label values of metasonic_blocks_total.
const (
	OutcomeDecoded = "decoded"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Stream result label values of metasonic_streams_total.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// MetricsObserver is an Observer that counts parse events in Prometheus
// metrics. It is safe for concurrent use and is meant to be shared by every
// parse of a process.
type MetricsObserver struct {
	blocks       *prometheus.CounterVec
	streams      *prometheus.CounterVec
	warnings     *prometheus.CounterVec
	payloadBytes prometheus.Histogram
}

// NewMetricsObserver creates a MetricsObserver and registers its collectors
// with reg.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	m := &MetricsObserver{
		blocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "blocks_total",
			Help:      "Metadata blocks read, by block type and outcome.",
		}, []string{"type", "outcome"}),
		streams: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "streams_total",
			Help:      "Streams parsed, by result.",
		}, []string{"result"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "warnings_total",
			Help:      "Non-fatal parse warnings, by stage.",
		}, []string{"stage"}),
		payloadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "block_payload_bytes",
			Help:      "Declared payload length of metadata blocks.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.blocks, m.streams, m.warnings, m.payloadBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// OnEvent implements Observer.
func (m *MetricsObserver) OnEvent(e Event) {
	switch e.Kind {
	case EventBlockDecoded:
		m.observeBlock(e, OutcomeDecoded)
	case EventBlockSkipped:
		m.observeBlock(e, OutcomeSkipped)
	case EventBlockFailed:
		// Fatal failures are counted once, as a failed stream.
		if !e.Fatal {
			m.observeBlock(e, OutcomeFailed)
		}
	case EventWarning:
		m.warnings.WithLabelValues(e.Warning.Stage).Inc()
	case EventStreamFinished:
		if e.Err != nil {
			m.streams.WithLabelValues(ResultFailed).Inc()
			return
		}
		m.streams.WithLabelValues(ResultOK).Inc()
	}
}

func (m *MetricsObserver) observeBlock(e Event, outcome string) {
	m.blocks.WithLabelValues(e.Type.String(), outcome).Inc()
	m.payloadBytes.Observe(float64(e.Size))
}
