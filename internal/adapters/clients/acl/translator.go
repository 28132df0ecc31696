package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/polyworks/site-api/internal/adapters/clients"
	"github.com/polyworks/site-api/internal/domain"
)

// BaseAdapter holds the client and error mapping shared by adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{client: client, serviceName: serviceName}
}

// ServiceName returns the name used in domain errors.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get performs a GET and returns the body of a 2xx response; the caller
// closes it. Failures come back as domain errors.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)

	return a.checkResponse(resp, err, operation, "")
}

// PostJSON posts payload and returns the body of a 2xx response; the caller
// closes it. entityID names the record in not-found errors.
func (a *BaseAdapter) PostJSON(ctx context.Context, path string, payload any, operation, entityID string) (io.ReadCloser, error) {
	resp, err := a.client.PostJSON(ctx, path, payload)

	return a.checkResponse(resp, err, operation, entityID)
}

func (a *BaseAdapter) checkResponse(resp *http.Response, err error, operation, entityID string) (io.ReadCloser, error) {
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		return nil, MapHTTPError(nil, err, a.serviceName, operation, entityID)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation, entityID)
	}

	return resp.Body, nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// ValidateRequired returns a validation error when value is empty.
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}

// ValidatePositive returns a validation error when value is not above zero.
func ValidatePositive[T ~int | ~int64 | ~float64](value T, fieldName string) error {
	if value <= 0 {
		return domain.NewValidationError(fieldName, "must be positive")
	}

	return nil
}

// Translator converts one value across the boundary, validating it.
type Translator[From any, To any] func(from *From) (*To, error)

// TranslateSlice translates every item and stops at the first failure.
func TranslateSlice[From any, To any](items []From, translate Translator[From, To]) ([]To, error) {
	result := make([]To, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, *translated)
	}

	return result, nil
}
