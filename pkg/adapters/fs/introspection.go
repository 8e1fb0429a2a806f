package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path           string     `json:"path"`
	ReadOnly       bool       `json:"read_only"`
	CacheSize      int        `json:"cache_size"`
	CacheHits      int64      `json:"cache_hits"`
	CacheMisses    int64      `json:"cache_misses"`
	ActiveWatchers int        `json:"active_watchers"`
	LastEvent      *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits, misses := s.cache.Stats()
	return StoreState{
		Path:           s.Path,
		ReadOnly:       s.config.ReadOnly,
		CacheSize:      s.cache.Len(),
		CacheHits:      hits,
		CacheMisses:    misses,
		ActiveWatchers: s.activeWatchers,
		LastEvent:      s.lastEvent,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "session-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) setWatcherActive(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeWatchers += delta
}

func (s *Store) recordEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastEvent = &now
}
