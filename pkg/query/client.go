// Package query is a small keyed request cache: results are kept per key,
// served while fresh, deduplicated while in flight and refreshed on demand.
// Failures from queries and mutations are funnelled to one error hook so
// cross-cutting reactions (such as sending the user back to login on 401)
// live in a single place.
package query

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrDisabled is returned by a query whose Enabled gate is off.
var ErrDisabled = errors.New("query disabled")

// errAbandoned marks a shared call cancelled because nobody waits for it.
var errAbandoned = errors.New("query abandoned by all callers")

// DefaultStaleTime is how long a result is served without refetching.
const DefaultStaleTime = 30 * time.Second

// ErrorHook observes every failed query or mutation.
type ErrorHook func(ctx context.Context, key string, err error)

// Option configures a Client.
type Option func(*Client)

// WithStaleTime sets the freshness window. Zero means results are always
// refetched (concurrent callers still share one request).
func WithStaleTime(d time.Duration) Option {
	return func(c *Client) {
		c.staleTime = d
	}
}

// WithErrorHook installs the global failure hook.
func WithErrorHook(h ErrorHook) Option {
	return func(c *Client) {
		c.onError = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

type entry struct {
	value     any
	fetchedAt time.Time
}

type flight struct {
	cancel context.CancelFunc
}

// Client holds the cache shared by all queries.
type Client struct {
	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group
	waiters map[string]int
	flights map[string]*flight

	staleTime time.Duration
	onError   ErrorHook
	logger    *slog.Logger
	now       func() time.Time

	fetches  atomic.Int64
	failures atomic.Int64
}

// NewClient creates a query client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		entries:   make(map[string]*entry),
		waiters:   make(map[string]int),
		flights:   make(map[string]*flight),
		staleTime: DefaultStaleTime,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// SetErrorHook replaces the global failure hook.
func (c *Client) SetErrorHook(h ErrorHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = h
}

// Invalidate drops every entry whose key starts with prefix and returns how
// many were dropped. An empty prefix clears the cache.
func (c *Client) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	if n > 0 {
		c.logger.Debug("query cache invalidated", "prefix", prefix, "entries", n)
	}
	return n
}

func (c *Client) lookup(key string) (*entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *Client) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{value: value, fetchedAt: c.now()}
}

func (c *Client) fresh(e *entry) bool {
	return c.staleTime > 0 && c.now().Sub(e.fetchedAt) < c.staleTime
}

func (c *Client) fail(ctx context.Context, key string, err error) {
	c.failures.Add(1)
	c.logger.Debug("query failed", "key", key, "error", err)

	c.mu.RLock()
	hook := c.onError
	c.mu.RUnlock()
	if hook != nil {
		hook(ctx, key, err)
	}
}

// fetch runs fn once per key at a time. Callers of the same key share the
// call; each gives up when its own ctx ends and the call itself is cancelled
// once no caller is left waiting for it.
func (c *Client) fetch(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	c.join(key)
	defer c.leave(key)

	for {
		ch := c.group.DoChan(key, func() (any, error) {
			fctx, done := c.begin(ctx, key)
			defer done()

			c.fetches.Add(1)
			v, err := fn(fctx)
			if err != nil {
				if fctx.Err() != nil {
					return nil, errAbandoned
				}
				return nil, err
			}
			c.store(key, v)
			return v, nil
		})

		select {
		case res := <-ch:
			if errors.Is(res.Err, errAbandoned) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				// joined a call that was already being torn down
				continue
			}
			return res.Val, res.Err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (c *Client) join(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waiters[key]++
}

func (c *Client) leave(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waiters[key]--
	if c.waiters[key] > 0 {
		return
	}
	delete(c.waiters, key)
	if f, ok := c.flights[key]; ok {
		f.cancel()
	}
}

// begin registers the running call for key. The returned context keeps the
// values of ctx but is only cancelled through leave or done.
func (c *Client) begin(ctx context.Context, key string) (context.Context, func()) {
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f := &flight{cancel: cancel}

	c.mu.Lock()
	c.flights[key] = f
	if c.waiters[key] == 0 {
		cancel()
	}
	c.mu.Unlock()

	return fctx, func() {
		c.mu.Lock()
		if c.flights[key] == f {
			delete(c.flights, key)
		}
		c.mu.Unlock()
		cancel()
	}
}
