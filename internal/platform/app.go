package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/introspection"

	"github.com/aretw0/avyna/pkg/adapters/fs"
	"github.com/aretw0/avyna/pkg/adapters/rest"
	"github.com/aretw0/avyna/pkg/core"
	"github.com/aretw0/avyna/pkg/query"
	"github.com/aretw0/avyna/pkg/session"
)

// App is the wired client: API, session store, request cache and use cases.
type App struct {
	Service    *core.Service
	API        core.API
	Store      core.KeyValueStore
	Auth       *session.Auth
	Onboarding *session.Onboarding
	Queries    *query.Client
	Logger     *slog.Logger
	StateDir   string
}

// New wires an App from opts.
func New(opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.navigator == nil {
		o.navigator = discardNavigator{}
	}

	api := o.api
	if api == nil {
		client, err := rest.NewClient(rest.Config{
			BaseURL:    o.baseURL,
			Timeout:    o.timeout,
			UserAgent:  o.userAgent,
			HTTPClient: o.httpClient,
			Logger:     o.logger,
		})
		if err != nil {
			return nil, err
		}
		api = client
	}

	app := &App{API: api, Logger: o.logger}

	store := o.store
	if store == nil {
		useTemp := o.devSafety && !o.readOnly && IsDevRun()
		dir := ResolveStateDir(o.stateDir, useTemp)
		if useTemp {
			o.logger.Warn("running in SAFE MODE (dev/test)", "original_path", o.stateDir, "resolved_path", dir)
		}

		fsStore := fs.NewStore(fs.Config{
			Path:     dir,
			ReadOnly: o.readOnly,
			Logger:   o.logger,
			ErrorHandler: func(err error) {
				o.logger.Error("session watcher failed", "error", err)
			},
		})
		if err := fsStore.Initialize(context.Background()); err != nil {
			return nil, err
		}
		store = fsStore
		app.StateDir = dir
	}
	app.Store = store

	app.Auth = session.NewAuth(store, o.logger)
	app.Onboarding = session.NewOnboarding(store)

	qopts := []query.Option{query.WithLogger(o.logger)}
	if o.staleTime > 0 {
		qopts = append(qopts, query.WithStaleTime(o.staleTime))
	}
	app.Queries = query.NewClient(qopts...)
	app.Queries.SetErrorHook(UnauthorizedHook(app.Auth, app.Queries, o.navigator, o.logger))

	app.Service = core.NewService(api, app.Auth, o.logger)
	return app, nil
}

// Components lists the introspectable parts of the app.
func (a *App) Components() []introspection.Component {
	var out []introspection.Component
	for _, c := range []any{a.Service, a.API, a.Store, a.Queries} {
		if comp, ok := c.(introspection.Component); ok {
			out = append(out, comp)
		}
	}
	return out
}

// Watch reports changes of the persisted session made by any process.
func (a *App) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := a.Store.(core.Watchable)
	if !ok {
		return nil, errors.New("session store does not support watching")
	}
	return w.Watch(ctx, "*-storage")
}

// UserID reads the account id from the stored token.
func (a *App) UserID() (int, error) {
	token := a.Auth.Token()
	if token == "" {
		return 0, core.ErrNoCredential
	}
	claims, err := session.DecodeClaims(token)
	if err != nil {
		return 0, fmt.Errorf("failed to read token: %w", err)
	}
	return claims.UserID, nil
}
