// Package clients provides the instrumented HTTP client used for outbound
// calls. Failures here are infrastructure errors; the acl package turns
// them into domain errors.
package clients

import "errors"

var (
	// ErrCircuitOpen is returned without calling the service while the
	// breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure once every attempt is used.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
