package core

import "context"

// KeyValueStore defines the contract of the persisted session store.
// Values are opaque JSON documents; typed access lives in pkg/session.
type KeyValueStore interface {
	// Get returns the raw value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put persists value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for stores that can report changes made by
// other processes.
type Watchable interface {
	// Watch emits an Event for each change to a key matching pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
