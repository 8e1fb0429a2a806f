package platform

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/avyna/pkg/core"
	"github.com/aretw0/avyna/pkg/query"
)

// LoginRoute is where a rejected session is sent.
const LoginRoute = "/login"

// Navigator moves the user to another screen.
type Navigator interface {
	Push(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Push(route string) { f(route) }

type discardNavigator struct{}

func (discardNavigator) Push(string) {}

// UnauthorizedHook returns the query error hook that reacts to a rejected
// token: the session is forgotten, cached results are dropped and the user
// is sent to the login screen. Other errors are left to the caller.
func UnauthorizedHook(session core.Session, queries *query.Client, nav Navigator, logger *slog.Logger) query.ErrorHook {
	return func(ctx context.Context, key string, err error) {
		if !errors.Is(err, core.ErrUnauthorized) {
			return
		}
		logger.Info("session rejected by server", "query", key)

		if derr := session.DeleteUser(ctx); derr != nil {
			logger.Warn("failed to clear session", "error", derr)
		}
		queries.Invalidate("")
		nav.Push(LoginRoute)
	}
}
