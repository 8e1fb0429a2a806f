package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/avyna/pkg/core"
	"github.com/aretw0/avyna/pkg/query"
	"github.com/aretw0/avyna/pkg/validate"
)

// Cache key prefixes.
const (
	KeySymptoms       = "symptoms/"
	KeySymptomLog     = "symptom-log/"
	KeyRecommendation = "recommendation/"
	KeyAnalytics      = "analytics/"
	KeyProfile        = "profile"
)

func (a *App) loggedIn() bool {
	return a.Auth.Token() != ""
}

// History is the grouped symptom history at offset. It only runs while a
// session token is present.
func (a *App) History(offset int) *query.Query[[]core.SymptomSection] {
	return query.New(a.Queries, fmt.Sprintf("%s%d", KeySymptoms, offset), func(ctx context.Context) ([]core.SymptomSection, error) {
		return a.Service.FetchGroupedSymptoms(ctx, offset)
	}).Enabled(a.loggedIn())
}

// Profile is the current user's profile.
func (a *App) Profile() *query.Query[core.User] {
	return query.New(a.Queries, KeyProfile, a.Service.Profile).Enabled(a.loggedIn())
}

// SymptomLog is one log entry.
func (a *App) SymptomLog(id core.LogID) *query.Query[core.SymptomLogEntry] {
	return query.New(a.Queries, KeySymptomLog+string(id), func(ctx context.Context) (core.SymptomLogEntry, error) {
		return a.Service.SymptomLog(ctx, id)
	}).Enabled(a.loggedIn() && id != "")
}

// Recommendation is the advice generated for a log.
func (a *App) Recommendation(id core.LogID) *query.Query[core.Recommendation] {
	return query.New(a.Queries, KeyRecommendation+string(id), func(ctx context.Context) (core.Recommendation, error) {
		return a.Service.Recommendation(ctx, id)
	}).Enabled(a.loggedIn() && id != "")
}

// Recent is the logs of the last days grouped by date. Its key lives under
// KeySymptoms so tracking refreshes it with the history.
func (a *App) Recent(days int) *query.Query[[]core.SymptomSection] {
	return query.New(a.Queries, fmt.Sprintf("%srecent/%d", KeySymptoms, days), func(ctx context.Context) ([]core.SymptomSection, error) {
		recent, err := a.Service.RecentSymptoms(ctx, days)
		if err != nil {
			return nil, err
		}
		return core.GroupByDate(recent.Logs), nil
	}).Enabled(a.loggedIn())
}

// Analytics is the symptom summary over the last days.
func (a *App) Analytics(days int) *query.Query[*core.Analytics] {
	return query.New(a.Queries, fmt.Sprintf("%s%d", KeyAnalytics, days), func(ctx context.Context) (*core.Analytics, error) {
		return a.Service.Analytics(ctx, days)
	}).Enabled(a.loggedIn())
}

// Track validates the form and records it for the logged in user.
// History and analytics are refetched afterwards.
func (a *App) Track(ctx context.Context, form validate.Track) (core.HealthLogResponse, error) {
	if err := validate.Struct(form); err != nil {
		return core.HealthLogResponse{}, err
	}
	userID, err := a.UserID()
	if err != nil {
		return core.HealthLogResponse{}, err
	}
	return query.Mutate(ctx, a.Queries, "track", func(ctx context.Context) (core.HealthLogResponse, error) {
		return a.Service.LogSymptoms(ctx, form.HealthLog(userID))
	}, KeySymptoms, KeyAnalytics)
}

// Login validates the form and signs in. A rejected login is reported to the
// caller only: there is no session to expire yet.
func (a *App) Login(ctx context.Context, form validate.Login) (core.AuthSession, error) {
	if err := validate.Struct(form); err != nil {
		return core.AuthSession{}, err
	}
	auth, err := a.Service.Login(ctx, form.Credentials())
	if err == nil {
		a.Queries.Invalidate("")
	}
	return auth, err
}

// Register validates the form, creates the account and signs in.
func (a *App) Register(ctx context.Context, form validate.Register) (core.AuthSession, error) {
	if err := validate.Struct(form); err != nil {
		return core.AuthSession{}, err
	}
	auth, err := a.Service.Register(ctx, form.Credentials())
	if err == nil {
		a.Queries.Invalidate("")
	}
	return auth, err
}

// Logout forgets the session and every cached result.
func (a *App) Logout(ctx context.Context) error {
	a.Queries.Invalidate("")
	return a.Service.Logout(ctx)
}

// EditProfile validates the form and saves it.
func (a *App) EditProfile(ctx context.Context, form validate.Profile) (core.User, error) {
	if err := validate.Struct(form); err != nil {
		return core.User{}, err
	}
	return query.Mutate(ctx, a.Queries, "edit-profile", func(ctx context.Context) (core.User, error) {
		return a.Service.EditProfile(ctx, form.Payload())
	}, KeyProfile)
}

// ChangePassword validates the form and changes the password.
func (a *App) ChangePassword(ctx context.Context, form validate.ChangePassword) (string, error) {
	if err := validate.Struct(form); err != nil {
		return "", err
	}
	return query.Mutate(ctx, a.Queries, "change-password", func(ctx context.Context) (string, error) {
		return a.Service.ChangePassword(ctx, form.Payload())
	})
}

// ChangePlan switches the subscription plan.
func (a *App) ChangePlan(ctx context.Context, plan string) (core.User, error) {
	if plan != "free" && plan != "paid" {
		return core.User{}, validate.Errors{{Field: "plan", Message: "Plan must be free or paid"}}
	}
	return query.Mutate(ctx, a.Queries, "change-plan", func(ctx context.Context) (core.User, error) {
		return a.Service.ChangePlan(ctx, plan)
	}, KeyProfile)
}
