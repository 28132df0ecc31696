package reqctx

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyCommitted is returned when actions are added or committed twice.
var ErrAlreadyCommitted = errors.New("request context already committed")

type ctxKey struct{}

// RequestContext holds the memoized reads and staged writes of one request.
type RequestContext struct {
	ctx       context.Context
	cache     sync.Map
	inflight  sync.Map // key -> *sync.Once guarding the first fetch
	mu        sync.Mutex
	actions   []Action
	committed bool
}

// New creates a RequestContext bound to ctx.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{ctx: ctx}
}

// FromContext returns the RequestContext stored in ctx, or nil.
func FromContext(ctx context.Context) *RequestContext {
	if ctx == nil {
		return nil
	}

	if rc, ok := ctx.Value(ctxKey{}).(*RequestContext); ok {
		return rc
	}

	return nil
}

// WithContext stores rc in ctx.
func WithContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// Ensure returns the RequestContext from ctx, or a fresh one that is not
// shared with anybody when ctx carries none.
func Ensure(ctx context.Context) *RequestContext {
	if rc := FromContext(ctx); rc != nil {
		return rc
	}

	return New(ctx)
}

// Context returns the context the RequestContext was created with.
func (rc *RequestContext) Context() context.Context {
	return rc.ctx
}

// GetOrFetch returns the cached value for key, running fetchFn on the first
// call. Concurrent callers for the same key wait for a single fetch. Errors
// are not cached.
func (rc *RequestContext) GetOrFetch(key string, fetchFn func(ctx context.Context) (any, error)) (any, error) {
	if cached, ok := rc.cache.Load(key); ok {
		return cached, nil
	}

	onceAny, _ := rc.inflight.LoadOrStore(key, &sync.Once{})
	once := onceAny.(*sync.Once)

	var fetchErr error

	once.Do(func() {
		value, err := fetchFn(rc.ctx)
		if err != nil {
			fetchErr = err
			rc.inflight.Delete(key)

			return
		}

		rc.cache.Store(key, value)
	})

	if fetchErr != nil {
		return nil, fetchErr
	}

	if cached, ok := rc.cache.Load(key); ok {
		return cached, nil
	}

	// Another caller's fetch failed while we waited; try once more ourselves.
	return rc.GetOrFetch(key, fetchFn)
}

// Fetch is the typed form of GetOrFetch.
func Fetch[T any](rc *RequestContext, key string, fetchFn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	v, err := rc.GetOrFetch(key, func(ctx context.Context) (any, error) {
		return fetchFn(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached value for %q has type %T", key, v)
	}

	return typed, nil
}
