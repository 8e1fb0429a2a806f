package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/avyna/pkg/core"
)

type markdownOptions struct {
	style string
	width int
}

// Option configures markdown rendering.
type Option func(*markdownOptions)

// WithStyle selects a glamour style ("dark", "light", "notty", ...).
// The default picks one from the terminal.
func WithStyle(style string) Option {
	return func(o *markdownOptions) {
		o.style = style
	}
}

// WithWidth sets the word wrap column.
func WithWidth(width int) Option {
	return func(o *markdownOptions) {
		o.width = width
	}
}

// RecommendationMarkdown lays the three advice blocks out as one document.
func RecommendationMarkdown(rec core.Recommendation) string {
	var b strings.Builder
	for _, part := range []struct{ header, title, body string }{
		{"Diet", "Balanced Nutrition", rec.Diet},
		{"Exercise", "Regular Physical Activity", rec.Exercise},
		{"Wellness", "Stress Management", rec.Wellness},
	} {
		body := strings.TrimSpace(part.body)
		if body == "" {
			body = "_No advice yet._"
		}
		fmt.Fprintf(&b, "# %s\n\n## %s\n\n%s\n\n", part.header, part.title, body)
	}
	return b.String()
}

// Recommendation renders the advice attached to a log. When the markdown
// cannot be rendered the raw document is written instead.
func Recommendation(w io.Writer, rec core.Recommendation, opts ...Option) error {
	md := RecommendationMarkdown(rec)

	out, err := Markdown(md, opts...)
	if err != nil {
		out = md
	}
	_, err = io.WriteString(w, out)
	return err
}

// Markdown renders md for the terminal.
func Markdown(md string, opts ...Option) (string, error) {
	o := markdownOptions{width: 80}
	for _, opt := range opts {
		opt(&o)
	}

	ropts := []glamour.TermRendererOption{glamour.WithWordWrap(o.width)}
	if o.style == "" {
		ropts = append(ropts, glamour.WithAutoStyle())
	} else {
		ropts = append(ropts, glamour.WithStylePath(o.style))
	}

	r, err := glamour.NewTermRenderer(ropts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render(md)
}
