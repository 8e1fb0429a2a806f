// Package render draws domain values for a terminal.
package render

import "github.com/charmbracelet/lipgloss"

// Palette of the product.
const (
	colorAccent = lipgloss.Color("#AF73EA")
	colorInk    = lipgloss.Color("#2D2734")
	colorText   = lipgloss.Color("#141217")
	colorMuted  = lipgloss.Color("#75618A")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInk).
			Background(colorAccent).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Foreground(colorText).
			MarginLeft(2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)
)
