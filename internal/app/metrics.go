package app

import "github.com/polyworks/site-api/internal/domain"

// Metrics receives business events from the services. The telemetry
// package provides a Prometheus implementation.
type Metrics interface {
	ContentQueried(kind domain.Kind, debug bool)
	CartMutated(operation string)
	QuoteSubmitted(outcome string)
}

// Quote submission outcomes.
const (
	OutcomeForwarded     = "forwarded"
	OutcomeForwardFailed = "forward_failed"
	OutcomeStored        = "stored"
	OutcomeRejected      = "rejected"
)

type noopMetrics struct{}

func (noopMetrics) ContentQueried(domain.Kind, bool) {}
func (noopMetrics) CartMutated(string)               {}
func (noopMetrics) QuoteSubmitted(string)            {}
