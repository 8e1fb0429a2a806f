package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/avyna/pkg/core"
)

// options holds the internal configuration of an App.
type options struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	stateDir   string
	staleTime  time.Duration
	readOnly   bool
	devSafety  bool
	logger     *slog.Logger
	navigator  Navigator
	api        core.API
	store      core.KeyValueStore
}

// Option defines a functional option for configuring an App.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		devSafety: true,
	}
}

// WithBaseURL sets the API root, e.g. "https://api.example.com/api".
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithTimeout bounds every API request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent sent to the API.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithHTTPClient replaces the HTTP client used for the API.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithStateDir sets the directory holding the persisted session.
func WithStateDir(dir string) Option {
	return func(o *options) {
		o.stateDir = dir
	}
}

// WithStaleTime sets how long query results are served from cache.
func WithStaleTime(d time.Duration) Option {
	return func(o *options) {
		o.staleTime = d
	}
}

// WithReadOnly opens the state directory without ever writing to it.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithDevSafety controls re-rooting the state directory under the system temp
// directory when running via `go run` or `go test`. Enabled by default.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithNavigator sets where the user is sent when the session is rejected.
func WithNavigator(n Navigator) Option {
	return func(o *options) {
		o.navigator = n
	}
}

// WithAPI injects an API implementation (e.g. a fake). The base URL is then
// not required.
func WithAPI(api core.API) Option {
	return func(o *options) {
		o.api = api
	}
}

// WithStore injects the session store. The state directory is then ignored.
func WithStore(store core.KeyValueStore) Option {
	return func(o *options) {
		o.store = store
	}
}
