// Package acl translates between the sales CRM's HTTP API and the domain.
//
// CRM payloads never leave this package: [CRMClient] turns a
// domain.QuoteRequest into a lead, posts it, and maps every failure onto a
// domain error with [MapHTTPError]:
//
//   - 404 → domain.ErrNotFound
//   - 409 → domain.ErrConflict
//   - 400/422 → domain.ErrValidation
//   - 401/403, 429, 5xx and transport failures → domain.ErrUnavailable
//
// Client-level failures ([clients.ErrCircuitOpen],
// [clients.ErrMaxRetriesExceeded]) also become domain.ErrUnavailable.
package acl
