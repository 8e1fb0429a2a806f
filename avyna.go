package avyna

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/avyna/internal/platform"
	"github.com/aretw0/avyna/pkg/core"
)

// --- Types ---

// App is the wired client.
type App = platform.App

// Config is the file and environment configuration.
type Config = platform.Config

// Navigator moves the user to another screen, e.g. to login on 401.
type Navigator = platform.Navigator

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc = platform.NavigatorFunc

// LoginRoute is where a rejected session is sent.
const LoginRoute = platform.LoginRoute

// --- Configuration ---

// Option defines a functional option for configuring the client.
type Option = platform.Option

// WithBaseURL sets the API root.
func WithBaseURL(url string) Option {
	return platform.WithBaseURL(url)
}

// WithTimeout bounds every API request.
func WithTimeout(d time.Duration) Option {
	return platform.WithTimeout(d)
}

// WithUserAgent sets the User-Agent sent to the API.
func WithUserAgent(ua string) Option {
	return platform.WithUserAgent(ua)
}

// WithHTTPClient replaces the HTTP client used for the API.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// WithStateDir sets the directory holding the persisted session.
func WithStateDir(dir string) Option {
	return platform.WithStateDir(dir)
}

// WithStaleTime sets how long query results are served from cache.
func WithStaleTime(d time.Duration) Option {
	return platform.WithStaleTime(d)
}

// WithReadOnly opens the state directory without writing to it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temp-dir sandbox used under `go run`/`go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithNavigator sets where the user is sent when the session is rejected.
func WithNavigator(n Navigator) Option {
	return platform.WithNavigator(n)
}

// WithAPI injects an API implementation.
func WithAPI(api core.API) Option {
	return platform.WithAPI(api)
}

// WithStore injects the session store.
func WithStore(store core.KeyValueStore) Option {
	return platform.WithStore(store)
}

// --- Factory ---

// New wires a client.
func New(opts ...Option) (*App, error) {
	return platform.New(opts...)
}

// LoadConfig reads the YAML file at path, .env and the environment.
func LoadConfig(path string, explicit bool) (Config, error) {
	return platform.LoadConfig(path, explicit)
}

// DefaultConfigPath is the config file used when none is given.
func DefaultConfigPath() string {
	return platform.DefaultConfigPath()
}

// --- History ---

// GroupByDate partitions entries into sections keyed by their date, in
// first-seen order.
func GroupByDate(entries []core.SymptomLogEntry) []core.SymptomSection {
	return core.GroupByDate(entries)
}
