package session

import (
	"context"
	"log/slog"

	"github.com/aretw0/avyna/pkg/core"
)

const (
	AuthKey     = "auth-storage"
	authVersion = 0
)

// AuthState is the persisted login state.
type AuthState struct {
	User       *core.AuthSession `json:"user"`
	IsLoggedIn bool              `json:"isLoggedIn"`
}

// Auth is the typed view of the login state. It implements core.Session.
type Auth struct {
	slot   *Slot[AuthState]
	logger *slog.Logger
}

// NewAuth creates the auth view over store.
func NewAuth(store core.KeyValueStore, logger *slog.Logger) *Auth {
	if logger == nil {
		logger = slog.Default()
	}
	slot := NewSlot(store, AuthKey, authVersion, AuthState{})
	slot.logger = logger
	return &Auth{slot: slot, logger: logger}
}

// Load returns the persisted login state.
func (a *Auth) Load(ctx context.Context) (AuthState, error) {
	return a.slot.Load(ctx)
}

// Token returns the stored bearer token, or "" when logged out or unreadable.
func (a *Auth) Token() string {
	st, err := a.slot.Load(context.Background())
	if err != nil {
		a.logger.Warn("failed to read session", "error", err)
		return ""
	}
	if st.User == nil {
		return ""
	}
	return st.User.Token
}

// SetUser stores the session and marks the user logged in.
func (a *Auth) SetUser(ctx context.Context, s core.AuthSession) error {
	return a.slot.Update(ctx, func(st *AuthState) {
		st.User = &s
		st.IsLoggedIn = true
	})
}

// DeleteUser forgets the session.
func (a *Auth) DeleteUser(ctx context.Context) error {
	return a.slot.Update(ctx, func(st *AuthState) {
		st.User = nil
		st.IsLoggedIn = false
	})
}

// SetLoggedIn flips the logged-in flag without touching the stored user.
func (a *Auth) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	return a.slot.Update(ctx, func(st *AuthState) {
		st.IsLoggedIn = loggedIn
	})
}

var _ core.Session = (*Auth)(nil)
