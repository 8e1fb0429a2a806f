// Package core holds the domain model of the tracking client and the use cases
// that operate on it. It has no knowledge of HTTP, files or terminals: those
// live behind the ports declared in api.go and repository.go.
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// LogID identifies a symptom log entry.
// The API encodes it as an integer; clients treat it as an opaque string.
type LogID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *LogID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = LogID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("log id must be a string or number: %w", err)
	}
	*id = LogID(n.String())
	return nil
}

// Int returns the numeric form used in URL paths.
func (id LogID) Int() (int, error) {
	return strconv.Atoi(string(id))
}

// Recommendation is the AI generated advice attached to a symptom log.
type Recommendation struct {
	Diet        string `json:"diet"`
	Exercise    string `json:"exercise"`
	Wellness    string `json:"wellness"`
	GeneratedAt string `json:"generated_at,omitempty"`
	Markdown    string `json:"markdown,omitempty"`
}

// SymptomLogEntry is one record as returned by the API.
type SymptomLogEntry struct {
	ID             LogID           `json:"id"`
	Date           string          `json:"date"`
	Condition      string          `json:"condition"`
	Symptoms       string          `json:"symptoms"`
	PainLevel      int             `json:"pain_level"`
	Mood           string          `json:"mood"`
	CycleDay       int             `json:"cycle_day"`
	Notes          string          `json:"notes"`
	Recommendation *Recommendation `json:"recommendation"`

	// HasRecommendation is only set by the recent logs listing.
	HasRecommendation bool `json:"has_recommendation,omitempty"`
}

// SymptomSection groups the entries sharing one date.
type SymptomSection struct {
	Title   string            `json:"title"`
	Entries []SymptomLogEntry `json:"entries"`
}

// Pagination describes the page returned by the symptom listing.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// SymptomPage is the body of a successful symptom listing.
type SymptomPage struct {
	Logs       []SymptomLogEntry `json:"logs"`
	Pagination *Pagination       `json:"pagination,omitempty"`
}

// RecentLogs is the newest-first list of logs within the last PeriodDays.
type RecentLogs struct {
	Logs       []SymptomLogEntry `json:"logs"`
	PeriodDays int               `json:"period_days"`
	TotalLogs  int               `json:"total_logs"`
}

// SortOrder controls the order in which the API returns logs.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// ListOptions narrows a symptom listing. Zero values are omitted from the query.
type ListOptions struct {
	Offset    int
	Limit     int
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Condition string
	Sort      SortOrder
}

// HealthLog is the payload used to record today's symptoms.
type HealthLog struct {
	UserID    int    `json:"user_id"`
	Condition string `json:"condition"`
	Symptoms  string `json:"symptoms"`
	PainLevel int    `json:"pain_level"`
	Mood      string `json:"mood"`
	CycleDay  int    `json:"cycle_day"`
	Notes     string `json:"notes,omitempty"`
}

// HealthLogResponse is returned after a log is created.
type HealthLogResponse struct {
	LogID          LogID          `json:"log_id"`
	Message        string         `json:"message"`
	Recommendation Recommendation `json:"recommendation"`
}

// User is the profile of the account holder.
type User struct {
	ID                int     `json:"id"`
	Email             string  `json:"email"`
	FullName          string  `json:"full_name"`
	Age               *int    `json:"age"`
	HasPCOS           *bool   `json:"has_pcos"`
	HasEndometriosis  *bool   `json:"has_endometriosis"`
	SubscriptionPlan  string  `json:"subscription_plan,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	CreatedAt         string  `json:"created_at,omitempty"`
}

// AuthSession is what the client keeps after a successful login.
type AuthSession struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// EditProfile is the set of profile fields a user may change.
type EditProfile struct {
	FullName         string `json:"full_name,omitempty"`
	Email            string `json:"email,omitempty"`
	Age              *int   `json:"age,omitempty"`
	HasPCOS          *bool  `json:"has_pcos,omitempty"`
	HasEndometriosis *bool  `json:"has_endometriosis,omitempty"`
	SubscriptionPlan string `json:"subscription_plan,omitempty"`
}

// Credentials are used for login and registration.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// PasswordChange is the payload of the change-password call.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SymptomCount is one row of the top symptoms table.
type SymptomCount struct {
	Symptom string `json:"symptom"`
	Count   int    `json:"count"`
}

// PainAnalytics summarises pain levels over a period.
type PainAnalytics struct {
	AveragePain      float64 `json:"average_pain"`
	MaxPain          int     `json:"max_pain"`
	TotalPainEntries int     `json:"total_pain_entries"`
}

// Analytics is the symptom pattern summary computed by the API.
type Analytics struct {
	PeriodDays            int            `json:"period_days"`
	TotalLogs             int            `json:"total_logs"`
	Pain                  PainAnalytics  `json:"pain_analytics"`
	MoodDistribution      map[string]int `json:"mood_distribution"`
	ConditionDistribution map[string]int `json:"condition_distribution"`
	TopSymptoms           []SymptomCount `json:"top_symptoms"`
	LoggingFrequency      float64        `json:"logging_frequency"`
}

// EventType represents the type of change in the session store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of one key in the session store.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}
