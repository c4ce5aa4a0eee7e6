package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/ui/theme"
)

// ProgressBar is a labelled track of Done out of Total steps.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a progress bar that fits in width columns.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, Width: width}
}

// Fraction returns Done/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

// View renders "label  ━━━━────  NN%".
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	count := fmt.Sprintf("  %d%%", int(p.Fraction()*100))
	track := max(p.Width-lipgloss.Width(b.String())-len(count), 4)
	filled := int(float64(track) * p.Fraction())

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("━", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", track-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(count))
	return b.String()
}
