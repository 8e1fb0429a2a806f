package core

import (
	"context"
)

// GroupByDate folds entries into sections keyed by their exact Date string.
//
// Sections appear in the order their date is first seen and entries keep
// their source order inside a section. Nothing is sorted: an input listed
// newest-first stays newest-first. The result is never nil.
func GroupByDate(entries []SymptomLogEntry) []SymptomSection {
	sections := make([]SymptomSection, 0)
	index := make(map[string]int)

	for _, e := range entries {
		i, ok := index[e.Date]
		if !ok {
			i = len(sections)
			index[e.Date] = i
			sections = append(sections, SymptomSection{Title: e.Date})
		}
		sections[i].Entries = append(sections[i].Entries, e)
	}

	return sections
}

// History retrieves a user's symptom logs and shapes them for sectioned display.
type History struct {
	src SymptomLister
}

// NewHistory creates a History reading from src.
func NewHistory(src SymptomLister) *History {
	return &History{src: src}
}

// FetchGroupedSymptoms issues one listing request for the page starting at
// offset and groups the returned logs by date.
//
// The token is supplied by the caller; an empty token fails with
// ErrNoCredential before any request is made. API errors are returned as is,
// without retry.
func (h *History) FetchGroupedSymptoms(ctx context.Context, token string, offset int) ([]SymptomSection, error) {
	if token == "" {
		return nil, ErrNoCredential
	}

	page, err := h.src.ListSymptoms(ctx, token, ListOptions{Offset: offset})
	if err != nil {
		return nil, err
	}

	return GroupByDate(page.Logs), nil
}
