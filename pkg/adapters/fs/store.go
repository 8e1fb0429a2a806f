// Package fs implements core.KeyValueStore on a local directory: one JSON file
// per key, written atomically, watchable for changes made by other processes.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/avyna/pkg/core"
)

const (
	fileExt  = ".json"
	filePerm = 0o600
	dirPerm  = 0o700
)

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string // directory holding the key files
	ReadOnly     bool   // Put and Delete fail with core.ErrReadOnly; nothing is created on disk
	Logger       *slog.Logger
	ErrorHandler func(error) // receives runtime watcher errors
}

// Store implements core.KeyValueStore and core.Watchable.
type Store struct {
	Path   string
	config Config
	cache  *cache

	mu             sync.RWMutex
	activeWatchers int
	lastEvent      *time.Time
}

// NewStore creates a new filesystem-backed store.
func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		Path:   config.Path,
		config: config,
		cache:  newCache(),
	}
}

// Initialize ensures the store directory exists.
func (s *Store) Initialize(ctx context.Context) error {
	if s.Path == "" {
		return errors.New("store path cannot be empty")
	}
	if s.config.ReadOnly {
		return nil
	}
	if err := os.MkdirAll(s.Path, dirPerm); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// validateKey rejects keys that would escape the store directory or clash
// with temp files.
func validateKey(key string) error {
	switch {
	case key == "":
		return errors.New("key cannot be empty")
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("invalid key %q: must not start with a dot", key)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("invalid key %q: must not contain path separators", key)
	}
	return nil
}

func (s *Store) filename(key string) string {
	return filepath.Join(s.Path, key+fileExt)
}

// Get returns the raw JSON stored under key.
// Unreadable JSON is treated as missing so a corrupted session self-heals on
// the next write.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.filename(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		s.cache.Delete(key)
		return nil, fmt.Errorf("key %q: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", key, err)
	}

	if data, ok := s.cache.Get(key, info.ModTime(), info.Size()); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !json.Valid(data) {
		s.config.Logger.Warn("ignoring corrupted store entry", "key", key, "path", path)
		return nil, fmt.Errorf("key %q: %w", key, core.ErrNotFound)
	}

	s.cache.Set(key, data, info.ModTime(), info.Size())
	return data, nil
}

// Put persists value under key. The value must be valid JSON.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.filename(key)
	if err := writeFileAtomic(path, value, filePerm); err != nil {
		return err
	}

	if info, err := os.Stat(path); err == nil {
		s.cache.Set(key, value, info.ModTime(), info.Size())
	} else {
		s.cache.Delete(key)
	}

	s.config.Logger.Debug("store entry written", "key", key, "bytes", len(value))
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := validateKey(key); err != nil {
		return err
	}

	s.cache.Delete(key)
	if err := os.Remove(s.filename(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	s.config.Logger.Debug("store entry deleted", "key", key)
	return nil
}

// Keys lists the stored keys in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list store: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if k, ok := keyFromName(e.Name()); ok && !e.IsDir() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// keyFromName maps a file name in the store directory back to its key.
func keyFromName(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || filepath.Ext(name) != fileExt {
		return "", false
	}
	return strings.TrimSuffix(name, fileExt), true
}

var _ core.KeyValueStore = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
