// Package metrics exposes the state of the recent tests aggregate as
// Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AndreyAkinshin/recenttests/internal/model"
	"github.com/AndreyAkinshin/recenttests/internal/recent"
)

const (
	MetricsNamespace = "recenttests"
)

// Metrics holds the collectors registered for one aggregate.
type Metrics struct {
	gatherer prometheus.Gatherer

	eventsLoaded          *prometheus.GaugeVec
	configurations        prometheus.Gauge
	failingConfigurations prometheus.Gauge
	rebuildsTotal         prometheus.Counter
}

// New registers the collectors on reg and serves them from Handler.
// A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		eventsLoaded: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "events_loaded",
			Help:      "Number of events in the current aggregate",
		}, []string{
			"kind",
			"outcome",
		}),
		configurations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "configurations",
			Help:      "Number of run configurations shown",
		}),
		failingConfigurations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "failing_configurations",
			Help:      "Number of shown run configurations with a failing test",
		}),
		rebuildsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "rebuilds_total",
			Help:      "Count of aggregate rebuilds",
		}),
	}
}

// Observe records a rebuild from evs. Event counts replace the previous ones.
func (m *Metrics) Observe(evs []model.Event) {
	m.rebuildsTotal.Inc()
	m.eventsLoaded.Reset()
	for _, ev := range evs {
		outcome := ""
		if ev.Kind == model.EventTest {
			outcome = recent.ParseOutcome(ev.Outcome).String()
		}
		m.eventsLoaded.WithLabelValues(string(ev.Kind), outcome).Inc()
	}
}

// ObserveSelection records the entries chosen for display.
func (m *Metrics) ObserveSelection(entries []*recent.Entry) {
	failing := 0
	for _, e := range entries {
		if e.Failed {
			failing++
		}
	}
	m.configurations.Set(float64(len(entries)))
	m.failingConfigurations.Set(float64(failing))
}

// Handler serves the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
