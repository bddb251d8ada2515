package flagsource

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	fakeapp "github.com/Flagsmith/fakeapp-go"
)

// Metrics counts and times snapshot fetches.
type Metrics struct {
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics registers the fetch collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fakeapp",
			Subsystem: "flags",
			Name:      "fetches_total",
			Help:      "Flag snapshot fetches by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fakeapp",
			Subsystem: "flags",
			Name:      "fetch_duration_seconds",
			Help:      "Time taken to fetch a flag snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.fetches, m.duration)
	return m
}

// Instrumented returns a Middleware recording every fetch.
func (m *Metrics) Instrumented() Middleware {
	return func(next Source) Source {
		return SourceFunc(func(ctx context.Context) (*fakeapp.Flags, error) {
			defer func(begin time.Time) {
				m.duration.Observe(time.Since(begin).Seconds())
			}(time.Now())

			flags, err := next.Flags(ctx)
			result := "ok"
			if err != nil {
				result = "error"
			}
			m.fetches.WithLabelValues(result).Inc()
			return flags, err
		})
	}
}
