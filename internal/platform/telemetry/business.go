package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/polyworks/site-api/internal/domain"
)

const metricsNamespace = "site"

// BusinessMetrics counts content, cart and quote events in Prometheus.
type BusinessMetrics struct {
	contentQueries *prometheus.CounterVec
	cartMutations  *prometheus.CounterVec
	quotes         *prometheus.CounterVec
}

// NewBusinessMetrics registers the counters on reg. A nil reg uses the
// default registerer.
func NewBusinessMetrics(reg prometheus.Registerer) (*BusinessMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &BusinessMetrics{
		contentQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "content",
			Name:      "queries_total",
			Help:      "Content collection queries by kind and debug mode.",
		}, []string{"kind", "debug"}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cart",
			Name:      "mutations_total",
			Help:      "Cart changes by operation.",
		}, []string{"operation"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "quotes",
			Name:      "submitted_total",
			Help:      "Quote submissions by outcome.",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{m.contentQueries, m.cartMutations, m.quotes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ContentQueried records a collection query.
func (m *BusinessMetrics) ContentQueried(kind domain.Kind, debug bool) {
	m.contentQueries.WithLabelValues(string(kind), strconv.FormatBool(debug)).Inc()
}

// CartMutated records a cart change.
func (m *BusinessMetrics) CartMutated(operation string) {
	m.cartMutations.WithLabelValues(operation).Inc()
}

// QuoteSubmitted records the outcome of a quote submission.
func (m *BusinessMetrics) QuoteSubmitted(outcome string) {
	m.quotes.WithLabelValues(outcome).Inc()
}
