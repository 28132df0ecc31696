package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/polyworks/site-api/internal/adapters/clients"
	"github.com/polyworks/site-api/internal/domain"
)

// ErrorResponse is the CRM error body. Both the nested (error.code) and the
// flat (code) layouts are accepted.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorDetail contains error information from external services.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// GetCode returns the nested code, else the flat one.
func (e *ErrorResponse) GetCode() string {
	if e.Error.Code != "" {
		return e.Error.Code
	}

	return e.Code
}

// GetMessage returns the nested message, else the flat one.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// Error codes the CRM puts in its error bodies.
const (
	ExternalCodeNotFound      = "NOT_FOUND"
	ExternalCodeDuplicateLead = "DUPLICATE_LEAD"
	ExternalCodeValidation    = "VALIDATION_ERROR"
	ExternalCodeUnauthorized  = "UNAUTHORIZED"
)

// ParseErrorResponse returns nil when body is empty or not an error document.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError turns a failed call into a domain error. clientErr is the
// error from the clients package, if any; otherwise resp must be a non-2xx
// response. entityID names the record for not-found errors.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	_, _, detailed := firstDetail(errResp)
	if errResp != nil && errResp.GetCode() != "" && !detailed && resp.StatusCode < http.StatusInternalServerError {
		return MapExternalCode(errResp.GetCode(), errResp.GetMessage(), serviceName, operation, entityID)
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation, entityID)
}

// mapClientError covers calls that never produced a usable response. All
// of them leave the CRM unavailable from the caller's point of view.
func mapClientError(err error, serviceName, operation string) error {
	reason := fmt.Sprintf("%s failed: %v", operation, err)

	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		reason = "circuit breaker open during " + operation
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		reason = "max retries exceeded during " + operation
	}

	return domain.NewUnavailableError(serviceName, reason)
}

func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation, entityID string) error {
	message := defaultMessageForStatus(status, operation)
	if errResp != nil && errResp.GetMessage() != "" {
		message = errResp.GetMessage()
	}

	switch status {
	case http.StatusNotFound:
		return domain.NewNotFoundError(serviceName, entityID)

	case http.StatusConflict:
		return domain.NewConflictError(serviceName, message)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if field, msg, ok := firstDetail(errResp); ok {
			return domain.NewValidationError(field, msg)
		}

		return domain.NewValidationError("", message)

	case http.StatusUnauthorized, http.StatusForbidden:
		// Our API key was rejected.
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s: credentials rejected", operation))

	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return domain.NewUnavailableError(serviceName, message)

	default:
		if status >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName, message)
		}
		return domain.NewValidationError("", message)
	}
}

var statusMessages = map[int]string{
	http.StatusNotFound:           "resource not found",
	http.StatusConflict:           "resource conflict",
	http.StatusBadRequest:         "invalid request",
	http.StatusForbidden:          "access denied",
	http.StatusUnauthorized:       "authentication required",
	http.StatusTooManyRequests:    "rate limit exceeded",
	http.StatusServiceUnavailable: "service temporarily unavailable",
}

func defaultMessageForStatus(status int, operation string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}

	return fmt.Sprintf("%s failed with status %d", operation, status)
}

// MapExternalCode maps a CRM error code onto a domain error.
func MapExternalCode(code, message, serviceName, operation, entityID string) error {
	switch code {
	case ExternalCodeNotFound:
		return domain.NewNotFoundError(serviceName, entityID)
	case ExternalCodeDuplicateLead:
		return domain.NewConflictError(serviceName, message)
	case ExternalCodeValidation:
		return domain.NewValidationError("", message)
	case ExternalCodeUnauthorized:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s: credentials rejected", operation))
	default:
		return domain.NewUnavailableError(serviceName, message)
	}
}

// firstDetail returns the alphabetically first field detail so the error is
// stable across calls.
func firstDetail(errResp *ErrorResponse) (string, string, bool) {
	if errResp == nil || len(errResp.Error.Details) == 0 {
		return "", "", false
	}

	fields := slices.Sorted(maps.Keys(errResp.Error.Details))

	return fields[0], errResp.Error.Details[fields[0]], true
}
