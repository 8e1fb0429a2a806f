package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/avyna/pkg/adapters/rest"
	"github.com/aretw0/avyna/pkg/core"
)

func newClient(t *testing.T, h http.HandlerFunc) *rest.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := rest.NewClient(rest.Config{BaseURL: srv.URL + "/api/"})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClient_RejectsBadBaseURL(t *testing.T) {
	_, err := rest.NewClient(rest.Config{BaseURL: "ftp://example.com"})
	assert.Error(t, err)

	_, err = rest.NewClient(rest.Config{BaseURL: "::not a url"})
	assert.Error(t, err)
}

func TestListSymptoms(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/symptoms/", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("offset"))
		assert.Equal(t, "asc", r.URL.Query().Get("sort"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(rest.RequestIDHeader))

		writeJSON(w, http.StatusOK, map[string]any{
			"logs": []map[string]any{
				{"id": 1, "date": "2024-01-02", "symptoms": "Cramps", "pain_level": 4, "recommendation": nil},
				{"id": 2, "date": "2024-01-01", "symptoms": "Nausea"},
			},
			"pagination": map[string]any{"total": 7, "limit": 50, "offset": 5, "has_more": false},
		})
	})

	page, err := c.ListSymptoms(context.Background(), "tok", core.ListOptions{Offset: 5, Sort: core.SortAsc})
	require.NoError(t, err)
	require.Len(t, page.Logs, 2)
	assert.Equal(t, core.LogID("1"), page.Logs[0].ID)
	assert.Equal(t, 4, page.Logs[0].PainLevel)
	assert.Nil(t, page.Logs[0].Recommendation)
	require.NotNil(t, page.Pagination)
	assert.Equal(t, 7, page.Pagination.Total)
}

func TestListSymptoms_AlwaysSendsOffset(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "offset=0", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, map[string]any{"logs": []any{}})
	})

	page, err := c.ListSymptoms(context.Background(), "tok", core.ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, page.Logs)
	assert.Empty(t, page.Logs)
}

func TestListSymptoms_MissingLogsIsEmpty(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})

	page, err := c.ListSymptoms(context.Background(), "tok", core.ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, page.Logs)
}

func TestErrorDecoding(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token has expired"})
	})

	_, err := c.ListSymptoms(context.Background(), "stale", core.ListOptions{})
	require.Error(t, err)

	var herr *core.HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusUnauthorized, herr.Status)
	assert.Equal(t, "Token has expired", herr.Message)
	assert.True(t, errors.Is(err, core.ErrUnauthorized))

	state := c.State().(rest.ClientState)
	assert.EqualValues(t, 1, state.Requests)
	assert.EqualValues(t, 1, state.Failures)
}

func TestErrorDecoding_NonJSONBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := c.GetProfile(context.Background(), "tok")
	var herr *core.HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusBadGateway, herr.Status)
	assert.Empty(t, herr.Message)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := rest.NewClient(rest.Config{BaseURL: base, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.ListSymptoms(context.Background(), "tok", core.ListOptions{})
	var terr *core.TransportError
	require.True(t, errors.As(err, &terr), "got %T: %v", err, err)
	assert.NotNil(t, errors.Unwrap(err))
	assert.Zero(t, core.StatusCode(err))
}

func TestContextCancellation(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListSymptoms(ctx, "tok", core.ListOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogin(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		assert.NotContains(t, body, "full_name")

		writeJSON(w, http.StatusOK, map[string]string{"token": "jwt"})
	})

	auth, err := c.Login(context.Background(), core.Credentials{Email: "ada@example.com", Password: "secret1", FullName: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", auth.Token)
	assert.Nil(t, auth.User)
}

func TestRegister(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ada", body["full_name"])
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
	})

	msg, err := c.Register(context.Background(), core.Credentials{Email: "ada@example.com", Password: "secret1", FullName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg)
}

func TestProfileCalls(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/profile/":
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": 7, "email": "ada@example.com", "full_name": "Ada"}})
		case "PUT /api/profile/":
			writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "user": map[string]any{"id": 7, "full_name": "Ada L"}})
		case "PUT /api/profile/change-password":
			writeJSON(w, http.StatusOK, map[string]any{"message": "Password changed successfully"})
		case "PUT /api/profile/subscription":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": 7, "subscription_plan": body["subscription_plan"]}})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	u, err := c.GetProfile(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 7, u.ID)

	u, err = c.UpdateProfile(ctx, "tok", core.EditProfile{FullName: "Ada L"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L", u.FullName)

	msg, err := c.ChangePassword(ctx, "tok", core.PasswordChange{CurrentPassword: "a", NewPassword: "b"})
	require.NoError(t, err)
	assert.Equal(t, "Password changed successfully", msg)

	u, err = c.UpdateSubscription(ctx, "tok", "paid")
	require.NoError(t, err)
	assert.Equal(t, "paid", u.SubscriptionPlan)
}

func TestRecentSymptoms(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/symptoms/recent", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		writeJSON(w, http.StatusOK, map[string]any{
			"logs": []map[string]any{
				{"id": 5, "date": "2024-01-03", "symptoms": "Fatigue", "has_recommendation": true},
				{"id": 4, "date": "2024-01-02", "symptoms": "Cramps"},
			},
			"period_days": 7,
			"total_logs":  2,
		})
	})

	recent, err := c.RecentSymptoms(context.Background(), "tok", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, recent.PeriodDays)
	assert.Equal(t, 2, recent.TotalLogs)
	require.Len(t, recent.Logs, 2)
	assert.Equal(t, core.LogID("5"), recent.Logs[0].ID)
	assert.True(t, recent.Logs[0].HasRecommendation)
	assert.False(t, recent.Logs[1].HasRecommendation)
}

func TestSymptomLogAndRecommendation(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /api/symptoms/":
			writeJSON(w, http.StatusCreated, map[string]any{"log_id": 12, "message": "created", "recommendation": map[string]string{"diet": "greens"}})
		case "GET /api/symptoms/12":
			writeJSON(w, http.StatusOK, map[string]any{"log": map[string]any{"id": 12, "date": "2024-01-02"}})
		case "GET /api/recommendations/12":
			writeJSON(w, http.StatusOK, map[string]any{"recommendation": map[string]string{"wellness": "rest"}})
		case "GET /api/symptoms/analytics":
			assert.Equal(t, "30", r.URL.Query().Get("days"))
			writeJSON(w, http.StatusOK, map[string]any{"analytics": nil, "message": "No symptom logs found"})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Symptom log not found"})
		}
	})
	ctx := context.Background()

	resp, err := c.CreateSymptomLog(ctx, "tok", core.HealthLog{Mood: "Calm"})
	require.NoError(t, err)
	assert.Equal(t, core.LogID("12"), resp.LogID)
	assert.Equal(t, "greens", resp.Recommendation.Diet)

	log, err := c.GetSymptomLog(ctx, "tok", "12")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", log.Date)

	rec, err := c.GetRecommendation(ctx, "tok", "12")
	require.NoError(t, err)
	assert.Equal(t, "rest", rec.Wellness)

	a, err := c.GetAnalytics(ctx, "tok", 30)
	require.NoError(t, err)
	assert.Nil(t, a)

	_, err = c.GetSymptomLog(ctx, "tok", "99")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = c.GetRecommendation(ctx, "tok", "")
	assert.Error(t, err)
}
