package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: aged parchment and ink.
var (
	Primary   = lipgloss.Color("#D4A373") // parchment gold
	Secondary = lipgloss.Color("#2A9D8F") // verdigris
	Accent    = lipgloss.Color("#E9C46A") // brass
	Success   = lipgloss.Color("#4CAF50")
	Error     = lipgloss.Color("#E63946") // crimson
	Text      = lipgloss.Color("#F1FAEE") // ivory
	TextDim   = lipgloss.Color("#A8A29E") // stone
	BgCard    = lipgloss.Color("#292524") // walnut
	Border    = lipgloss.Color("#57534E")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Answer feedback.
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgCard).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	// Notice flags a degraded question batch.
	Notice = lipgloss.NewStyle().
		Foreground(Accent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Accent).
		PaddingLeft(1)
)
