// Package lifecycle exposes session store changes as a lifecycle.Source so
// long-running commands can react to logins and logouts made elsewhere.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/avyna/pkg/core"
)

type storeSource struct {
	events <-chan core.Event
	keys   map[string]bool
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting the store events read from
// events. When keys are given, events for other keys are dropped.
func NewSource(events <-chan core.Event, keys ...string) lifecycle.Source {
	s := &storeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	if len(keys) > 0 {
		s.keys = make(map[string]bool, len(keys))
		for _, k := range keys {
			s.keys[k] = true
		}
	}
	return s
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.keys != nil && !s.keys[e.Key] {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
