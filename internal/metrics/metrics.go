// Package metrics exposes Prometheus collectors fed by generator lifecycle
// hooks.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espigot/pkg/domain"
)

// Collectors groups the espigot metrics.
type Collectors struct {
	DigitsEmitted *prometheus.CounterVec
	TermsAbsorbed prometheus.Counter
	SeriesTerms   prometheus.Gauge
	StepDuration  prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		DigitsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espigot_digits_emitted_total",
				Help: "Total number of digits of e handed to consumers",
			},
			[]string{"engine"},
		),
		TermsAbsorbed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "espigot_cfrac_terms_absorbed_total",
			Help: "Total number of continued-fraction terms absorbed",
		}),
		SeriesTerms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "espigot_series_terms",
			Help: "Size of the series engine term pool after the last step",
		}),
		StepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "espigot_series_step_duration_seconds",
			Help:    "Duration of series engine steps",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	for _, col := range []prometheus.Collector{c.DigitsEmitted, c.TermsAbsorbed, c.SeriesTerms, c.StepDuration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Hooks returns lifecycle hooks recording into c.
func (c *Collectors) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDigit: func(_ context.Context, e *domain.DigitEvent) {
			c.DigitsEmitted.WithLabelValues(string(e.Engine)).Inc()
		},
		OnAbsorb: func(_ context.Context, e *domain.AbsorbEvent) {
			c.TermsAbsorbed.Add(float64(e.Count))
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			c.SeriesTerms.Set(float64(e.Terms))
			c.StepDuration.Observe(e.Duration.Seconds())
		},
	}
}

// Handler serves the exposition format for everything in g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
