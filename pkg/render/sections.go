package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/avyna/pkg/core"
)

// EmptyHistory is shown when there is nothing to list.
const EmptyHistory = "No symptoms history yet"

// Sections prints one header per date followed by the symptoms logged on it,
// in the order given.
func Sections(w io.Writer, sections []core.SymptomSection) error {
	if len(sections) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render(EmptyHistory))
		return err
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(headerStyle.Render(s.Title))
		b.WriteString("\n")
		for _, e := range s.Entries {
			b.WriteString(itemStyle.Render(entryLine(e)))
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func entryLine(e core.SymptomLogEntry) string {
	symptoms := e.Symptoms
	if symptoms == "" {
		symptoms = "(no symptoms)"
	}
	return fmt.Sprintf("%s %s", symptoms, mutedStyle.Render("#"+string(e.ID)))
}

// Analytics prints the symptom pattern summary.
func Analytics(w io.Writer, a *core.Analytics) error {
	if a == nil {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No analytics available yet"))
		return err
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Last %d days", a.PeriodDays)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Logs: %d (%.2f per day)\n", a.TotalLogs, a.LoggingFrequency)
	fmt.Fprintf(&b, "  Pain: avg %.1f, max %d over %d entries\n", a.Pain.AveragePain, a.Pain.MaxPain, a.Pain.TotalPainEntries)

	if len(a.TopSymptoms) > 0 {
		b.WriteString(titleStyle.Render("Top symptoms"))
		b.WriteString("\n")
		for _, s := range a.TopSymptoms {
			fmt.Fprintf(&b, "  %-20s %d\n", s.Symptom, s.Count)
		}
	}
	writeDistribution(&b, "Moods", a.MoodDistribution)
	writeDistribution(&b, "Conditions", a.ConditionDistribution)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeDistribution prints counts, highest first, ties by name.
func writeDistribution(b *strings.Builder, title string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	names := make([]string, 0, len(dist))
	for k := range dist {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if dist[names[i]] != dist[names[j]] {
			return dist[names[i]] > dist[names[j]]
		}
		return names[i] < names[j]
	})

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, n := range names {
		fmt.Fprintf(b, "  %-20s %d\n", n, dist[n])
	}
}
