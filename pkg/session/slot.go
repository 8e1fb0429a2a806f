// Package session provides typed, versioned views over the key-value store
// holding client state between invocations.
//
// Each value is persisted inside an envelope {"state": ..., "version": N} so
// files written by older or newer clients can be recognised and discarded.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/avyna/pkg/core"
)

// ErrCorrupt is returned by Load when the persisted value cannot be decoded
// into the slot's type.
var ErrCorrupt = errors.New("corrupt session entry")

// Envelope is the on-disk shape of a persisted slot.
type Envelope[T any] struct {
	State   T   `json:"state"`
	Version int `json:"version"`
}

// Slot is a typed view of one key of the store.
type Slot[T any] struct {
	store   core.KeyValueStore
	key     string
	version int
	initial T
	logger  *slog.Logger
}

// NewSlot creates a typed view of key. initial is returned while nothing (or
// nothing readable at this version) has been persisted.
func NewSlot[T any](store core.KeyValueStore, key string, version int, initial T) *Slot[T] {
	return &Slot[T]{store: store, key: key, version: version, initial: initial}
}

// Key returns the store key backing the slot.
func (s *Slot[T]) Key() string {
	return s.key
}

// Load reads the persisted state.
func (s *Slot[T]) Load(ctx context.Context) (T, error) {
	raw, err := s.store.Get(ctx, s.key)
	if errors.Is(err, core.ErrNotFound) {
		return s.initial, nil
	}
	if err != nil {
		return s.initial, err
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return s.initial, fmt.Errorf("failed to decode %s: %w: %w", s.key, ErrCorrupt, err)
	}
	if env.Version != s.version {
		return s.initial, nil
	}
	return env.State, nil
}

// Save persists state.
func (s *Slot[T]) Save(ctx context.Context, state T) error {
	raw, err := json.Marshal(Envelope[T]{State: state, Version: s.version})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.key, err)
	}
	return s.store.Put(ctx, s.key, raw)
}

// Update loads the state, applies fn and saves the result.
// A corrupt entry is replaced, starting from the initial value.
func (s *Slot[T]) Update(ctx context.Context, fn func(*T)) error {
	state, err := s.Load(ctx)
	if errors.Is(err, ErrCorrupt) {
		if s.logger != nil {
			s.logger.Warn("discarding unreadable session entry", "key", s.key, "error", err)
		}
		state, err = s.initial, nil
	}
	if err != nil {
		return err
	}
	fn(&state)
	return s.Save(ctx, state)
}

// Clear removes the persisted state.
func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.key)
}
