package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/screens/summary"
	"github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/ui/layout"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

// ListLimit caps how many past sessions are shown.
const ListLimit = 50

// Repo is the read side of the session history.
type Repo interface {
	ListSessions(ctx context.Context, opts store.QueryOpts) ([]session.Record, error)
	Stats(ctx context.Context) (store.SessionStats, error)
}

type historyLoadedMsg struct {
	Sessions []session.Record
	Stats    store.SessionStats
	Err      error
}

// HistoryScreen displays past quiz sessions with aggregate stats.
type HistoryScreen struct {
	repo     Repo
	sessions []session.Record
	stats    store.SessionStats
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.Focuser = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo Repo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load
}

// Focus reloads when the screen is revealed again.
func (s *HistoryScreen) Focus() tea.Cmd {
	return s.load
}

func (s *HistoryScreen) load() tea.Msg {
	ctx := context.Background()

	sessions, err := s.repo.ListSessions(ctx, store.QueryOpts{Limit: ListLimit})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	return historyLoadedMsg{Sessions: sessions, Stats: stats}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.sessions = msg.Sessions
			s.stats = msg.Stats
			s.selected = min(s.selected, max(len(s.sessions)-1, 0))
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected < len(s.sessions) {
				rec := s.sessions[s.selected]
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: summary.New(rec)} }
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Finish a quiz to see it here.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Accent).
		Render(fmt.Sprintf("%d sessions  ·  %d passed  ·  %.0f%% accuracy",
			s.stats.Sessions, s.stats.Passed, s.stats.Accuracy()*100)))
	b.WriteString("\n\n")

	// Keep the selected row on screen.
	rows := max(height-4, 1)
	first := max(0, s.selected-rows+1)
	last := min(len(s.sessions), first+rows)

	for i := first; i < last; i++ {
		rec := s.sessions[i]
		dateStr := rec.FinishedAt.Local().Format("Jan 02, 2006 15:04")

		verdict := "fail"
		if rec.Passed {
			verdict = "pass"
		}
		degraded := ""
		if rec.Degraded {
			degraded = " *"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %2d/%-2d  %-6s  %-15s  %s%s",
			prefix, dateStr, rec.Correct, rec.Total,
			rec.Requested.Difficulty.String(), rec.Requested.Type.Label(), verdict, degraded)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
