package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/ui/layout"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

// SummaryScreen displays one finished session from the history.
type SummaryScreen struct {
	record session.Record
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(record session.Record) *SummaryScreen {
	return &SummaryScreen{record: record}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	rec := s.record
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text) + "\n"
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		fmt.Sprintf("Result: %d / %d", rec.Correct, rec.Total)))
	b.WriteString("\n")

	threshold := session.PassThreshold(rec.Total)
	if rec.Passed {
		b.WriteString(center(theme.Correct, fmt.Sprintf("Passed (≥ %d correct)", threshold)))
	} else {
		b.WriteString(center(theme.Incorrect, fmt.Sprintf("Failed (need %d correct)", threshold)))
	}
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	dur := rec.FinishedAt.Sub(rec.StartedAt)
	b.WriteString(center(dim, fmt.Sprintf("%s  ·  %d:%02d",
		rec.FinishedAt.Local().Format("Jan 02, 2006 15:04"),
		int(dur.Minutes()), int(dur.Seconds())%60)))

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Foreground(theme.Text)
	b.WriteString(center(body, fmt.Sprintf("Requested: %d %s questions, difficulty %s",
		rec.Requested.Amount, rec.Requested.Type.Label(), rec.Requested.Difficulty.String())))
	if rec.Degraded {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent),
			fmt.Sprintf("Served with difficulty %s (%d questions)", rec.UsedDifficulty.String(), rec.Total)))
	}

	return b.String()
}
