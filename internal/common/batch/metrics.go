package batch

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const MetricPrefix = "omsctl_batch_"

const (
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
)

type Metrics struct {
	items    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the batch metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		items: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPrefix + "items_total",
				Help: "Number of batch items settled, by entity and outcome",
			},
			[]string{"entity", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricPrefix + "duration_seconds",
				Help:    "Time from dispatch of the first item to settlement of the last one",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"entity"},
		),
	}
}

func (m *Metrics) recordItem(entity string, err error) {
	outcome := outcomeSucceeded
	if err != nil {
		outcome = outcomeFailed
	}
	m.items.WithLabelValues(entity, outcome).Inc()
}

func (m *Metrics) recordBatch(entity string, d time.Duration) {
	m.duration.WithLabelValues(entity).Observe(d.Seconds())
}

// WriteText writes every metric family gathered from g to w in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "error gathering metrics")
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return errors.Wrapf(err, "error encoding metric family %s", mf.GetName())
		}
	}
	return nil
}
