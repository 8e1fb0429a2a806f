package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/avyna/pkg/core"
	"github.com/aretw0/avyna/pkg/validate"
)

func fieldErrors(t *testing.T, err error) validate.Errors {
	t.Helper()
	var verrs validate.Errors
	require.True(t, errors.As(err, &verrs), "expected validate.Errors, got %T: %v", err, err)
	return verrs
}

func TestLogin(t *testing.T) {
	assert.NoError(t, validate.Struct(validate.Login{Email: "ada@example.com", Password: "secret"}))

	verrs := fieldErrors(t, validate.Struct(validate.Login{Email: "nope", Password: "123"}))
	assert.Equal(t, "Invalid email address", verrs.Get("email"))
	assert.Equal(t, "Password must be at least 6 characters long", verrs.Get("password"))

	verrs = fieldErrors(t, validate.Struct(validate.Login{Password: "secret"}))
	assert.Equal(t, "Email is required", verrs.Get("email"))
	assert.Len(t, verrs, 1)
}

func TestRegister(t *testing.T) {
	ok := validate.Register{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		AcceptTerms:     true,
	}
	require.NoError(t, validate.Struct(ok))
	assert.Equal(t, core.Credentials{Email: "ada@example.com", Password: "secret1", FullName: "Ada Lovelace"}, ok.Credentials())

	bad := ok
	bad.FullName = ""
	bad.ConfirmPassword = "secret2"
	bad.AcceptTerms = false
	verrs := fieldErrors(t, validate.Struct(bad))
	assert.Equal(t, "Full name is required", verrs.Get("fullName"))
	assert.Equal(t, "Passwords do not match", verrs.Get("confirmPassword"))
	assert.Equal(t, "You must accept the terms and conditions", verrs.Get("acceptTerms"))
	assert.Empty(t, verrs.Get("email"))
}

func TestChangePassword(t *testing.T) {
	require.NoError(t, validate.Struct(validate.ChangePassword{
		CurrentPassword: "oldpass", NewPassword: "newpass", ConfirmPassword: "newpass",
	}))

	verrs := fieldErrors(t, validate.Struct(validate.ChangePassword{
		CurrentPassword: "old", NewPassword: "newpass", ConfirmPassword: "other1",
	}))
	assert.Equal(t, "Current password must be at least 6 characters long", verrs.Get("currentPassword"))
	assert.Equal(t, "Passwords do not match", verrs.Get("confirmPassword"))

	verrs = fieldErrors(t, validate.Struct(validate.ChangePassword{CurrentPassword: "oldpass"}))
	assert.Equal(t, "New password is required", verrs.Get("newPassword"))
}

func TestProfile(t *testing.T) {
	age := 29
	pcos := true
	p := validate.ProfileFrom(core.User{FullName: "Ada", Email: "ada@example.com", Age: &age, HasPCOS: &pcos})
	assert.Equal(t, "free", p.SubscriptionPlan)
	assert.True(t, p.HasPCOS)
	require.NoError(t, validate.Struct(p))

	payload := p.Payload()
	require.NotNil(t, payload.Age)
	assert.Equal(t, 29, *payload.Age)
	assert.False(t, *payload.HasEndometriosis)

	p.FullName = "A"
	p.Age = 9
	p.SubscriptionPlan = "gold"
	verrs := fieldErrors(t, validate.Struct(p))
	assert.Equal(t, "Full name must be at least 2 characters", verrs.Get("fullName"))
	assert.Equal(t, "Age must be at least 10", verrs.Get("age"))
	assert.Equal(t, "Plan must be free or paid", verrs.Get("subscriptionPlan"))

	p = validate.ProfileFrom(core.User{FullName: "Ada", Email: "ada@example.com"})
	p.Age = 151
	verrs = fieldErrors(t, validate.Struct(p))
	assert.Equal(t, "Age must be at most 150", verrs.Get("age"))
}

func TestTrack(t *testing.T) {
	f := validate.Track{
		Fatigue:   true,
		Headache:  true,
		Bloating:  true,
		PainLevel: 4,
		Mood:      "Tired",
		CycleDay:  12,
		Notes:     "slept badly",
	}
	require.NoError(t, validate.Struct(f))
	assert.Equal(t, "Fatigue, Headache, Bloating", f.Symptoms())

	log := f.HealthLog(7)
	assert.Equal(t, core.HealthLog{
		UserID:    7,
		Condition: validate.DefaultCondition,
		Symptoms:  "Fatigue, Headache, Bloating",
		PainLevel: 4,
		Mood:      "Tired",
		CycleDay:  12,
		Notes:     "slept badly",
	}, log)

	assert.Empty(t, validate.Track{}.Symptoms())

	verrs := fieldErrors(t, validate.Struct(validate.Track{PainLevel: 11, CycleDay: 32}))
	assert.Equal(t, "Mood is required", verrs.Get("mood"))
	assert.Equal(t, "Cycle Day must be between 1 and 31", verrs.Get("cycleDay"))
	assert.Equal(t, "Pain level must be between 0 and 10", verrs.Get("painLevel"))

	verrs = fieldErrors(t, validate.Struct(validate.Track{Mood: "ok"}))
	assert.Equal(t, "Cycle Day is required", verrs.Get("cycleDay"))
}

func TestErrors_Error(t *testing.T) {
	err := validate.Errors{{Field: "email", Message: "Invalid email address"}, {Field: "password", Message: "too short"}}
	assert.Equal(t, "email: Invalid email address; password: too short", err.Error())
}

func TestStruct_FallbackMessage(t *testing.T) {
	type settings struct {
		BaseURL string `json:"base_url" validate:"required,url"`
	}
	verrs := fieldErrors(t, validate.Struct(settings{BaseURL: "not a url"}))
	assert.Equal(t, "failed url", verrs.Get("base_url"))
}
