package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/avyna/pkg/core"
)

func TestLogID_UnmarshalJSON(t *testing.T) {
	cases := map[string]core.LogID{
		`{"id": 42}`:     "42",
		`{"id": "abc"}`:  "abc",
		`{"id": null}`:   "",
		`{"id": "0042"}`: "0042",
	}
	for in, want := range cases {
		var e core.SymptomLogEntry
		require.NoError(t, json.Unmarshal([]byte(in), &e), in)
		assert.Equal(t, want, e.ID, in)
	}

	var e core.SymptomLogEntry
	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &e))
}

func TestSymptomLogEntry_DecodeAPIShape(t *testing.T) {
	body := `{
		"id": 3, "date": "2024-01-02", "condition": "PCOS", "symptoms": "Fatigue, Cramps",
		"pain_level": 6, "mood": "Tired", "cycle_day": 2, "notes": null,
		"recommendation": {"diet": "d", "exercise": "e", "wellness": "w", "generated_at": "2024-01-02T10:00:00"}
	}`

	var e core.SymptomLogEntry
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	assert.Equal(t, core.LogID("3"), e.ID)
	assert.Equal(t, 6, e.PainLevel)
	assert.Equal(t, 2, e.CycleDay)
	assert.Empty(t, e.Notes)
	require.NotNil(t, e.Recommendation)
	assert.Equal(t, "w", e.Recommendation.Wellness)

	n, err := e.ID.Int()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestHTTPError(t *testing.T) {
	err := error(&core.HTTPError{Method: "GET", URL: "http://x/symptoms/", Status: 404, Message: "Symptom log not found"})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, core.ErrUnauthorized)
	assert.Equal(t, 404, core.StatusCode(err))
	assert.Equal(t, "Symptom log not found", core.UserMessage(err))
	assert.Contains(t, err.Error(), "404 Not Found")
}
