package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/avyna/pkg/core"
)

// Watch reports changes to keys matching pattern (doublestar syntax, e.g.
// "auth-*" or "**"). Events are emitted for writes from any process,
// including this one. The channel is closed once ctx is done.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	known := make(map[string]bool)
	if keys, err := s.Keys(ctx); err == nil {
		for _, k := range keys {
			known[k] = true
		}
	}

	events := make(chan core.Event, 16)
	s.setWatcherActive(1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer s.setWatcherActive(-1)
		defer watcher.Close()
		return s.watchLoop(ctx, watcher, pattern, known, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		s.reportWatchError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return events, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, pattern string, known map[string]bool, out chan<- core.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}

			e, ok := s.mapEvent(event, pattern, known)
			if !ok {
				continue
			}
			s.recordEvent()
			s.config.Logger.Debug("store change", "type", e.Type, "key", e.Key)

			select {
			case out <- e:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			s.reportWatchError(err)
		}
	}
}

// mapEvent translates a raw fsnotify event into a store event, filtering out
// temp files, foreign files and keys outside pattern.
func (s *Store) mapEvent(event fsnotify.Event, pattern string, known map[string]bool) (core.Event, bool) {
	key, ok := keyFromName(filepath.Base(event.Name))
	if !ok {
		return core.Event{}, false
	}
	if match, _ := doublestar.Match(pattern, key); !match {
		return core.Event{}, false
	}

	// Cached bytes are revalidated by file stamp, but an external writer can
	// land inside the stamp resolution; drop them to be safe.
	s.cache.Delete(key)

	var t core.EventType
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		t = core.EventDelete
		delete(known, key)
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		t = core.EventCreate
		if known[key] {
			t = core.EventModify
		}
		known[key] = true
	default:
		return core.Event{}, false
	}

	return core.Event{Type: t, Key: key, Timestamp: time.Now().Unix()}, true
}

func (s *Store) reportWatchError(err error) {
	s.config.Logger.Error("store watcher error", "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}
