package settings

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/ui/components"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Settings"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Customize your quiz"))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	formWidth := cw * 3 / 5
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		s.renderForm(formWidth),
		"  ",
		s.renderStore(cw-formWidth-2),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, cards))

	if s.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if s.statusErr {
			style = style.Foreground(theme.Error)
		}
		b.WriteString("\n\n")
		b.WriteString(style.Width(width).Align(lipgloss.Center).Render(s.status))
	}
	return b.String()
}

func (s *SettingsScreen) renderForm(width int) string {
	var b strings.Builder
	b.WriteString(s.amount.View())
	b.WriteString("\n\n")
	b.WriteString(s.difficulty.View())
	b.WriteString("\n\n")
	b.WriteString(s.qtype.View())
	b.WriteString("\n\n")
	b.WriteString(s.saveBtn.View())
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

// renderStore shows what is persisted, which may differ from unsaved
// form edits.
func (s *SettingsScreen) renderStore(width int) string {
	cur := s.store.Current()
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	row := func(k, v string) string {
		return dim.Render(k+": ") + val.Render(v)
	}

	var b strings.Builder
	b.WriteString(theme.Selected.Render("Current store"))
	b.WriteString("\n\n")
	b.WriteString(row("Amount", fmt.Sprint(cur.Amount)) + "\n")
	b.WriteString(row("Difficulty", cur.Difficulty.String()) + "\n")
	b.WriteString(row("Type", cur.Type.Label()) + "\n")
	b.WriteString(row("High score", fmt.Sprint(s.highScore)) + "\n\n")
	b.WriteString(s.resetBtn.View())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width).
		Padding(0, 1).
		Render(b.String())
}
