package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/avyna/pkg/core"
	"github.com/aretw0/avyna/pkg/render"
)

func TestSections_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Sections(&buf, []core.SymptomSection{}))
	assert.Contains(t, buf.String(), render.EmptyHistory)

	buf.Reset()
	require.NoError(t, render.Sections(&buf, nil))
	assert.Contains(t, buf.String(), render.EmptyHistory)
}

func TestSections_PreservesOrder(t *testing.T) {
	sections := []core.SymptomSection{
		{Title: "2024-01-02", Entries: []core.SymptomLogEntry{
			{ID: "1", Symptoms: "Fatigue, Cramps"},
			{ID: "3", Symptoms: "Nausea"},
		}},
		{Title: "2024-01-01", Entries: []core.SymptomLogEntry{
			{ID: "2", Symptoms: "Headache"},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, render.Sections(&buf, sections))
	out := buf.String()

	assert.NotContains(t, out, render.EmptyHistory)
	order := []string{"2024-01-02", "Fatigue, Cramps", "Nausea", "2024-01-01", "Headache"}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		require.GreaterOrEqual(t, i, 0, "missing %q in %q", s, out)
		assert.Greater(t, i, last, "%q out of order", s)
		last = i
	}
}

func TestRecommendationMarkdown(t *testing.T) {
	md := render.RecommendationMarkdown(core.Recommendation{
		Diet:     "Eat **leafy greens**.",
		Exercise: "Walk daily.",
	})

	assert.Contains(t, md, "# Diet")
	assert.Contains(t, md, "## Balanced Nutrition")
	assert.Contains(t, md, "Eat **leafy greens**.")
	assert.Contains(t, md, "## Regular Physical Activity")
	assert.Contains(t, md, "# Wellness")
	assert.Contains(t, md, "_No advice yet._")
	assert.Less(t, strings.Index(md, "Diet"), strings.Index(md, "Exercise"))
	assert.Less(t, strings.Index(md, "Exercise"), strings.Index(md, "Wellness"))
}

func TestRecommendation(t *testing.T) {
	var buf bytes.Buffer
	err := render.Recommendation(&buf, core.Recommendation{
		Diet:     "Eat leafy greens.",
		Exercise: "Walk daily.",
		Wellness: "Breathe slowly.",
	}, render.WithStyle("notty"), render.WithWidth(60))
	require.NoError(t, err)

	out := buf.String()
	for _, s := range []string{"Diet", "Balanced", "leafy", "Walk", "Breathe"} {
		assert.Contains(t, out, s)
	}
}

func TestRecommendation_FallsBackToPlain(t *testing.T) {
	var buf bytes.Buffer
	err := render.Recommendation(&buf, core.Recommendation{Diet: "Eat leafy greens."},
		render.WithStyle("/no/such/style.json"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "# Diet")
	assert.Contains(t, buf.String(), "Eat leafy greens.")
}

func TestAnalytics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Analytics(&buf, nil))
	assert.Contains(t, buf.String(), "No analytics")

	buf.Reset()
	require.NoError(t, render.Analytics(&buf, &core.Analytics{
		PeriodDays:       30,
		TotalLogs:        12,
		Pain:             core.PainAnalytics{AveragePain: 3.5, MaxPain: 8, TotalPainEntries: 12},
		MoodDistribution: map[string]int{"Calm": 2, "Tired": 7, "Anxious": 2},
		TopSymptoms:      []core.SymptomCount{{Symptom: "Fatigue", Count: 9}},
		LoggingFrequency: 0.4,
	}))
	out := buf.String()
	assert.Contains(t, out, "Last 30 days")
	assert.Contains(t, out, "avg 3.5, max 8")
	assert.Contains(t, out, "Fatigue")
	assert.Less(t, strings.Index(out, "Tired"), strings.Index(out, "Anxious"))
	assert.Less(t, strings.Index(out, "Anxious"), strings.Index(out, "Calm"))
	assert.NotContains(t, out, "Conditions")
}

func TestWelcome(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Welcome(&buf, 1))
	assert.Contains(t, buf.String(), render.Slogan)
	assert.NotContains(t, buf.String(), "Welcome back")

	buf.Reset()
	require.NoError(t, render.Welcome(&buf, 2))
	assert.Contains(t, buf.String(), "Welcome back")
}
