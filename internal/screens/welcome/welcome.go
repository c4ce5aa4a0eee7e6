package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/ui/layout"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 600 * time.Millisecond
	totalDur     = 2 * time.Second
)

// Hourglass frames, top bulb draining into the bottom.
var hourglassFrames = [][]string{
	{"╭───────╮", "╰╮▒▒▒▒▒╭╯", " ╰╮▒▒▒╭╯ ", "  ╰╮▒╭╯  ", "  ╭╯ ╰╮  ", " ╭╯   ╰╮ ", "╭╯     ╰╮", "╰───────╯"},
	{"╭───────╮", "╰╮ ▒▒▒ ╭╯", " ╰╮▒▒▒╭╯ ", "  ╰╮▒╭╯  ", "  ╭╯▒╰╮  ", " ╭╯   ╰╮ ", "╭╯  ▒  ╰╮", "╰───────╯"},
	{"╭───────╮", "╰╮     ╭╯", " ╰╮ ▒ ╭╯ ", "  ╰╮▒╭╯  ", "  ╭╯▒╰╮  ", " ╭╯ ▒ ╰╮ ", "╭╯ ▒▒▒ ╰╮", "╰───────╯"},
	{"╭───────╮", "╰╮     ╭╯", " ╰╮   ╭╯ ", "  ╰╮ ╭╯  ", "  ╭╯ ╰╮  ", " ╭╯▒▒▒╰╮ ", "╭╯▒▒▒▒▒╰╮", "╰───────╯"},
}

type tickMsg time.Time

// WelcomeScreen greets a first-time player and hands the tab over to the
// quiz on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var (
	_ screen.Screen          = (*WelcomeScreen)(nil)
	_ screen.KeyHintProvider = (*WelcomeScreen)(nil)
)

// New creates a WelcomeScreen that is replaced by next() on a key press.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

// Title is the tab label, so it names the screen that replaces it.
func (w *WelcomeScreen) Title() string {
	return "Quiz"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Any key", Description: "Start"},
		{Key: "Tab", Description: "Settings"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) frame() []string {
	i := int(w.elapsed * time.Duration(len(hourglassFrames)) / totalDur)
	if i >= len(hourglassFrames) {
		i = len(hourglassFrames) - 1
	}
	return hourglassFrames[i]
}

func (w *WelcomeScreen) View(width, height int) string {
	glass := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(strings.Join(w.frame(), "\n"))
	sections := []string{glass}

	if w.elapsed >= bannerAt {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("How well do you know your history?")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to start · tab for settings")
		sections = append(sections, "", RenderBanner(width), "", tagline, "", hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
