package query

import (
	"context"
)

// Query is a typed handle to one cache key.
type Query[T any] struct {
	client  *Client
	key     string
	fn      func(context.Context) (T, error)
	enabled bool
}

// New creates a query for key backed by fn.
func New[T any](c *Client, key string, fn func(context.Context) (T, error)) *Query[T] {
	return &Query[T]{client: c, key: key, fn: fn, enabled: true}
}

// Enabled gates the query. A disabled query never calls its function.
func (q *Query[T]) Enabled(on bool) *Query[T] {
	q.enabled = on
	return q
}

// Key returns the cache key.
func (q *Query[T]) Key() string {
	return q.key
}

// Cached returns the last successful result, fresh or not.
func (q *Query[T]) Cached() (T, bool) {
	var zero T
	e, ok := q.client.lookup(q.key)
	if !ok {
		return zero, false
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Get returns the cached result while fresh, otherwise fetches it.
// On failure the previous result (if any) is returned together with the error.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	if !q.enabled {
		var zero T
		return zero, ErrDisabled
	}
	if e, ok := q.client.lookup(q.key); ok && q.client.fresh(e) {
		if v, ok := e.value.(T); ok {
			return v, nil
		}
	}
	return q.run(ctx)
}

// Refetch always fetches and replaces the cached result on success.
func (q *Query[T]) Refetch(ctx context.Context) (T, error) {
	if !q.enabled {
		var zero T
		return zero, ErrDisabled
	}
	return q.run(ctx)
}

func (q *Query[T]) run(ctx context.Context) (T, error) {
	v, err := q.client.fetch(ctx, q.key, func(ctx context.Context) (any, error) {
		return q.fn(ctx)
	})
	if err != nil {
		q.client.fail(ctx, q.key, err)
		prev, _ := q.Cached()
		return prev, err
	}
	out, _ := v.(T)
	return out, nil
}

// Mutate runs a write. Its failure goes to the client's error hook under key;
// on success the given cache prefixes are invalidated.
func Mutate[T any](ctx context.Context, c *Client, key string, fn func(context.Context) (T, error), invalidate ...string) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		c.fail(ctx, key, err)
		return v, err
	}
	for _, prefix := range invalidate {
		c.Invalidate(prefix)
	}
	return v, nil
}
