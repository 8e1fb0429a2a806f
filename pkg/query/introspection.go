package query

import (
	"github.com/aretw0/introspection"
)

// ClientState exposes internal state for observability.
type ClientState struct {
	Entries   int    `json:"entries"`
	Fetches   int64  `json:"fetches"`
	Failures  int64  `json:"failures"`
	StaleTime string `json:"stale_time"`
}

// State implements introspection.Introspectable.
func (c *Client) State() any {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()

	return ClientState{
		Entries:   n,
		Fetches:   c.fetches.Load(),
		Failures:  c.failures.Load(),
		StaleTime: c.staleTime.String(),
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "query-cache"
}

var _ introspection.Introspectable = (*Client)(nil)
var _ introspection.Component = (*Client)(nil)
