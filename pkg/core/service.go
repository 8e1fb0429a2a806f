package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Session is the credential holder read and updated by the use cases.
type Session interface {
	// Token returns the bearer token, or "" when logged out.
	Token() string
	SetUser(ctx context.Context, s AuthSession) error
	DeleteUser(ctx context.Context) error
}

// Service handles the use cases of the tracking client.
type Service struct {
	api     API
	session Session
	history *History
	logger  *slog.Logger
}

// NewService creates a new Service.
func NewService(api API, session Session, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		api:     api,
		session: session,
		history: NewHistory(api),
		logger:  logger,
	}
}

// Token exposes the current bearer token ("" when logged out).
func (s *Service) Token() string {
	return s.session.Token()
}

func (s *Service) token() (string, error) {
	t := s.session.Token()
	if t == "" {
		return "", ErrNoCredential
	}
	return t, nil
}

// Register creates the account and logs straight into it.
func (s *Service) Register(ctx context.Context, c Credentials) (AuthSession, error) {
	if c.Email == "" || c.Password == "" {
		return AuthSession{}, errors.New("email and password are required")
	}
	msg, err := s.api.Register(ctx, c)
	if err != nil {
		return AuthSession{}, err
	}
	s.logger.Debug("account registered", "email", c.Email, "message", msg)

	return s.Login(ctx, Credentials{Email: c.Email, Password: c.Password})
}

// Login authenticates and persists the session.
// When the API omits the user profile, it is fetched with the new token.
func (s *Service) Login(ctx context.Context, c Credentials) (AuthSession, error) {
	if c.Email == "" || c.Password == "" {
		return AuthSession{}, errors.New("email and password are required")
	}
	auth, err := s.api.Login(ctx, c)
	if err != nil {
		return AuthSession{}, err
	}
	if auth.Token == "" {
		return AuthSession{}, errors.New("login response carried no token")
	}

	if auth.User == nil {
		u, err := s.api.GetProfile(ctx, auth.Token)
		if err != nil {
			return AuthSession{}, fmt.Errorf("failed to load profile after login: %w", err)
		}
		auth.User = &u
	}

	if err := s.session.SetUser(ctx, auth); err != nil {
		return AuthSession{}, fmt.Errorf("failed to persist session: %w", err)
	}
	s.logger.Info("logged in", "user_id", auth.User.ID)
	return auth, nil
}

// Logout forgets the stored session.
func (s *Service) Logout(ctx context.Context) error {
	return s.session.DeleteUser(ctx)
}

// Profile fetches the current user's profile.
func (s *Service) Profile(ctx context.Context) (User, error) {
	token, err := s.token()
	if err != nil {
		return User{}, err
	}
	return s.api.GetProfile(ctx, token)
}

// EditProfile updates profile fields and refreshes the stored user.
func (s *Service) EditProfile(ctx context.Context, p EditProfile) (User, error) {
	token, err := s.token()
	if err != nil {
		return User{}, err
	}
	u, err := s.api.UpdateProfile(ctx, token, p)
	if err != nil {
		return User{}, err
	}
	if err := s.session.SetUser(ctx, AuthSession{Token: token, User: &u}); err != nil {
		s.logger.Warn("failed to refresh stored user", "error", err)
	}
	return u, nil
}

// ChangePassword changes the account password.
func (s *Service) ChangePassword(ctx context.Context, p PasswordChange) (string, error) {
	token, err := s.token()
	if err != nil {
		return "", err
	}
	return s.api.ChangePassword(ctx, token, p)
}

// ChangePlan switches the subscription plan.
func (s *Service) ChangePlan(ctx context.Context, plan string) (User, error) {
	token, err := s.token()
	if err != nil {
		return User{}, err
	}
	return s.api.UpdateSubscription(ctx, token, plan)
}

// LogSymptoms records a health log and returns the generated recommendation.
func (s *Service) LogSymptoms(ctx context.Context, log HealthLog) (HealthLogResponse, error) {
	token, err := s.token()
	if err != nil {
		return HealthLogResponse{}, err
	}
	resp, err := s.api.CreateSymptomLog(ctx, token, log)
	if err != nil {
		return HealthLogResponse{}, err
	}
	s.logger.Debug("symptoms logged", "log_id", resp.LogID)
	return resp, nil
}

// SymptomLog fetches one log entry.
func (s *Service) SymptomLog(ctx context.Context, id LogID) (SymptomLogEntry, error) {
	token, err := s.token()
	if err != nil {
		return SymptomLogEntry{}, err
	}
	return s.api.GetSymptomLog(ctx, token, id)
}

// RecentSymptoms fetches the logs of the last days.
func (s *Service) RecentSymptoms(ctx context.Context, days int) (RecentLogs, error) {
	token, err := s.token()
	if err != nil {
		return RecentLogs{}, err
	}
	return s.api.RecentSymptoms(ctx, token, days)
}

// Analytics fetches the symptom summary for the last days.
// A nil result with a nil error means there is nothing to analyse.
func (s *Service) Analytics(ctx context.Context, days int) (*Analytics, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.api.GetAnalytics(ctx, token, days)
}

// Recommendation fetches the recommendation generated for a log.
func (s *Service) Recommendation(ctx context.Context, id LogID) (Recommendation, error) {
	token, err := s.token()
	if err != nil {
		return Recommendation{}, err
	}
	return s.api.GetRecommendation(ctx, token, id)
}

// FetchGroupedSymptoms runs the history pipeline with the stored token.
func (s *Service) FetchGroupedSymptoms(ctx context.Context, offset int) ([]SymptomSection, error) {
	return s.history.FetchGroupedSymptoms(ctx, s.session.Token(), offset)
}
