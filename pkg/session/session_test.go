package session_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/avyna/pkg/adapters/fs"
	"github.com/aretw0/avyna/pkg/core"
	"github.com/aretw0/avyna/pkg/session"
)

func setupStore(t *testing.T) *fs.Store {
	t.Helper()
	store := fs.NewStore(fs.Config{Path: t.TempDir()})
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

func TestAuth_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	auth := session.NewAuth(store, nil)

	st, err := auth.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.User)
	assert.False(t, st.IsLoggedIn)
	assert.Empty(t, auth.Token())

	require.NoError(t, auth.SetUser(ctx, core.AuthSession{Token: "tok", User: &core.User{ID: 7, Email: "ada@example.com"}}))
	assert.Equal(t, "tok", auth.Token())

	st, err = auth.Load(ctx)
	require.NoError(t, err)
	assert.True(t, st.IsLoggedIn)
	require.NotNil(t, st.User)
	assert.Equal(t, 7, st.User.User.ID)

	require.NoError(t, auth.SetLoggedIn(ctx, false))
	st, _ = auth.Load(ctx)
	assert.False(t, st.IsLoggedIn)
	assert.Equal(t, "tok", auth.Token(), "flag does not touch the stored user")

	require.NoError(t, auth.DeleteUser(ctx))
	assert.Empty(t, auth.Token())
}

func TestAuth_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	require.NoError(t, session.NewAuth(store, nil).SetUser(ctx, core.AuthSession{Token: "tok"}))

	raw, err := os.ReadFile(filepath.Join(store.Path, session.AuthKey+".json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"user":{"token":"tok"},"isLoggedIn":true},"version":0}`, string(raw))

	assert.Equal(t, "tok", session.NewAuth(store, nil).Token())
}

func TestAuth_UnknownVersionIsIgnored(t *testing.T) {
	store := setupStore(t)
	raw := `{"state":{"user":{"token":"old"},"isLoggedIn":true},"version":3}`
	require.NoError(t, os.WriteFile(filepath.Join(store.Path, session.AuthKey+".json"), []byte(raw), 0600))

	assert.Empty(t, session.NewAuth(store, nil).Token())
}

func TestAuth_WrongShapeIsOverwritten(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	raw := `{"state":{"user":"legacy","isLoggedIn":true},"version":0}`
	require.NoError(t, os.WriteFile(filepath.Join(store.Path, session.AuthKey+".json"), []byte(raw), 0600))

	auth := session.NewAuth(store, nil)
	assert.Empty(t, auth.Token())

	_, err := auth.Load(ctx)
	assert.ErrorIs(t, err, session.ErrCorrupt)

	require.NoError(t, auth.SetUser(ctx, core.AuthSession{Token: "fresh"}))
	assert.Equal(t, "fresh", auth.Token())

	require.NoError(t, os.WriteFile(filepath.Join(store.Path, session.AuthKey+".json"), []byte(raw), 0600))
	require.NoError(t, auth.DeleteUser(ctx))
	st, err := auth.Load(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsLoggedIn)
	assert.Nil(t, st.User)
}

func TestOnboarding(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	ob := session.NewOnboarding(store)

	p, err := ob.HasSeen(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Progress{Step: 1, Seen: false}, p)

	require.NoError(t, ob.SetHasSeen(ctx, session.Progress{Step: 3, Seen: true}))
	p, err = session.NewOnboarding(store).HasSeen(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Progress{Step: 3, Seen: true}, p)
}

func TestSlot_Clear(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	slot := session.NewSlot(store, "prefs", 1, map[string]string{})

	require.NoError(t, slot.Save(ctx, map[string]string{"theme": "dark"}))
	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", got["theme"])

	require.NoError(t, slot.Clear(ctx))
	got, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func makeToken(payload string) string {
	enc := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return "eyJhbGciOiJIUzI1NiJ9." + enc + ".sig"
}

func TestDecodeClaims(t *testing.T) {
	c, err := session.DecodeClaims(makeToken(`{"user_id":42,"exp":1700000000}`))
	require.NoError(t, err)
	assert.Equal(t, 42, c.UserID)
	assert.Equal(t, time.Unix(1700000000, 0), c.Expiry())
	assert.True(t, c.Expired(time.Unix(1700000000, 0)))
	assert.False(t, c.Expired(time.Unix(1699999999, 0)))

	noExp, err := session.DecodeClaims(makeToken(`{"user_id":1}`))
	require.NoError(t, err)
	assert.False(t, noExp.Expired(time.Now()))
	assert.True(t, noExp.Expiry().IsZero())
}

func TestDecodeClaims_Malformed(t *testing.T) {
	for _, tok := range []string{"", "abc", "a.b", "a.!!!.c", makeToken("not json")} {
		_, err := session.DecodeClaims(tok)
		assert.Error(t, err, "token %q", tok)
	}
}
