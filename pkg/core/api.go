package core

import "context"

// SymptomLister is the read side of the API used by the history pipeline.
type SymptomLister interface {
	// ListSymptoms returns one page of the user's symptom logs.
	ListSymptoms(ctx context.Context, token string, opts ListOptions) (SymptomPage, error)
}

// API defines the contract of the remote tracking service.
// Adhering to this interface keeps the use cases independent of the
// transport (HTTP today, an in-memory fake in tests).
type API interface {
	SymptomLister

	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, c Credentials) (string, error)

	// Login exchanges credentials for a session token.
	Login(ctx context.Context, c Credentials) (AuthSession, error)

	GetProfile(ctx context.Context, token string) (User, error)
	UpdateProfile(ctx context.Context, token string, p EditProfile) (User, error)
	ChangePassword(ctx context.Context, token string, p PasswordChange) (string, error)
	UpdateSubscription(ctx context.Context, token string, plan string) (User, error)

	// CreateSymptomLog records symptoms; the API answers with a recommendation.
	CreateSymptomLog(ctx context.Context, token string, log HealthLog) (HealthLogResponse, error)
	GetSymptomLog(ctx context.Context, token string, id LogID) (SymptomLogEntry, error)

	// RecentSymptoms lists the logs of the last days (the server caps it at 30).
	RecentSymptoms(ctx context.Context, token string, days int) (RecentLogs, error)
	GetAnalytics(ctx context.Context, token string, days int) (*Analytics, error)
	GetRecommendation(ctx context.Context, token string, id LogID) (Recommendation, error)
}
