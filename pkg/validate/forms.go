package validate

import (
	"strings"

	"github.com/aretw0/avyna/pkg/core"
)

// DefaultCondition is recorded with every tracked log.
const DefaultCondition = "PCOS (Polycystic Ovary Syndrome)"

// Login is the sign-in form.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

func (Login) messages() map[string]string {
	return map[string]string{
		"Email.required": "Email is required",
		"Email.email":    "Invalid email address",
		"Password":       "Password must be at least 6 characters long",
	}
}

// Credentials converts the form into the API payload.
func (f Login) Credentials() core.Credentials {
	return core.Credentials{Email: f.Email, Password: f.Password}
}

// Register is the sign-up form.
type Register struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"min=6,eqfield=Password"`
	AcceptTerms     bool   `json:"acceptTerms" validate:"eq=true"`
}

func (Register) messages() map[string]string {
	return map[string]string{
		"FullName":                "Full name is required",
		"Email.required":          "Email is required",
		"Email.email":             "Invalid email address",
		"Password":                "Password must be at least 6 characters long",
		"ConfirmPassword.min":     "Password must be at least 6 characters long",
		"ConfirmPassword.eqfield": "Passwords do not match",
		"AcceptTerms":             "You must accept the terms and conditions",
	}
}

func (f Register) Credentials() core.Credentials {
	return core.Credentials{Email: f.Email, Password: f.Password, FullName: f.FullName}
}

// ChangePassword is the change-password form.
type ChangePassword struct {
	CurrentPassword string `json:"currentPassword" validate:"min=6"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"min=6,eqfield=NewPassword"`
}

func (ChangePassword) messages() map[string]string {
	return map[string]string{
		"CurrentPassword":         "Current password must be at least 6 characters long",
		"NewPassword.required":    "New password is required",
		"NewPassword.min":         "Password must be at least 6 characters long",
		"ConfirmPassword.min":     "Confirm password must be at least 6 characters long",
		"ConfirmPassword.eqfield": "Passwords do not match",
	}
}

func (f ChangePassword) Payload() core.PasswordChange {
	return core.PasswordChange{CurrentPassword: f.CurrentPassword, NewPassword: f.NewPassword}
}

// Profile is the edit-profile form.
type Profile struct {
	FullName         string `json:"fullName" validate:"min=2,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Age              int    `json:"age" validate:"min=10,max=150"`
	HasPCOS          bool   `json:"hasPcos"`
	HasEndometriosis bool   `json:"hasEndometriosis"`
	SubscriptionPlan string `json:"subscriptionPlan" validate:"omitempty,oneof=free paid"`
}

func (Profile) messages() map[string]string {
	return map[string]string{
		"FullName.min":     "Full name must be at least 2 characters",
		"FullName.max":     "Full name must be at most 100 characters",
		"Email":            "Invalid email address",
		"Age.min":          "Age must be at least 10",
		"Age.max":          "Age must be at most 150",
		"SubscriptionPlan": "Plan must be free or paid",
	}
}

// ProfileFrom prefills the form from the stored user.
func ProfileFrom(u core.User) Profile {
	p := Profile{FullName: u.FullName, Email: u.Email, SubscriptionPlan: u.SubscriptionPlan}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.HasPCOS != nil {
		p.HasPCOS = *u.HasPCOS
	}
	if u.HasEndometriosis != nil {
		p.HasEndometriosis = *u.HasEndometriosis
	}
	if p.SubscriptionPlan == "" {
		p.SubscriptionPlan = "free"
	}
	return p
}

func (f Profile) Payload() core.EditProfile {
	age, pcos, endo := f.Age, f.HasPCOS, f.HasEndometriosis
	return core.EditProfile{
		FullName:         f.FullName,
		Email:            f.Email,
		Age:              &age,
		HasPCOS:          &pcos,
		HasEndometriosis: &endo,
		SubscriptionPlan: f.SubscriptionPlan,
	}
}

// Track is the daily symptom form.
type Track struct {
	Fatigue   bool   `json:"fatigue"`
	Cramps    bool   `json:"cramps"`
	Headache  bool   `json:"headache"`
	Nausea    bool   `json:"nausea"`
	Bloating  bool   `json:"bloating"`
	PainLevel int    `json:"painLevel" validate:"min=0,max=10"`
	Mood      string `json:"mood" validate:"required"`
	CycleDay  int    `json:"cycleDay" validate:"required,min=1,max=31"`
	Notes     string `json:"notes"`
}

func (Track) messages() map[string]string {
	return map[string]string{
		"PainLevel":         "Pain level must be between 0 and 10",
		"Mood":              "Mood is required",
		"CycleDay.required": "Cycle Day is required",
		"CycleDay":          "Cycle Day must be between 1 and 31",
	}
}

// Symptoms joins the ticked symptoms in form order.
func (f Track) Symptoms() string {
	var picked []string
	for _, s := range []struct {
		on   bool
		name string
	}{
		{f.Fatigue, "Fatigue"},
		{f.Cramps, "Cramps"},
		{f.Headache, "Headache"},
		{f.Nausea, "Nausea"},
		{f.Bloating, "Bloating"},
	} {
		if s.on {
			picked = append(picked, s.name)
		}
	}
	return strings.Join(picked, ", ")
}

// HealthLog converts the form into the API payload for userID.
func (f Track) HealthLog(userID int) core.HealthLog {
	return core.HealthLog{
		UserID:    userID,
		Condition: DefaultCondition,
		Symptoms:  f.Symptoms(),
		PainLevel: f.PainLevel,
		Mood:      f.Mood,
		CycleDay:  f.CycleDay,
		Notes:     f.Notes,
	}
}
