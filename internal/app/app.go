package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/ui/layout"
)

// HighScoreReader reads the persisted high score for the header.
type HighScoreReader interface {
	Get(ctx context.Context) (int, error)
}

// Options wires the application together.
type Options struct {
	// Tabs are the root screens, left to right. The first is shown at start.
	Tabs       []screen.Screen
	HighScores HighScoreReader
	Logger     *slog.Logger
}

type highScoreLoadedMsg struct {
	score int
	err   error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	scores    HighScoreReader
	logger    *slog.Logger
	highScore int
	width     int
	height    int
}

// New creates an AppModel showing the first tab.
func New(opts Options) AppModel {
	if len(opts.Tabs) == 0 {
		panic("app: at least one tab is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return AppModel{
		router: router.New(opts.Tabs[0], opts.Tabs[1:]...),
		scores: opts.HighScores,
		logger: logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Init(), m.loadHighScore())
}

func (m AppModel) loadHighScore() tea.Cmd {
	if m.scores == nil {
		return nil
	}
	return func() tea.Msg {
		score, err := m.scores.Get(context.Background())
		return highScoreLoadedMsg{score: score, err: err}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case highScoreLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("read high score", "error", msg.err)
			return m, nil
		}
		m.highScore = msg.score
		return m, nil

	case screen.HighScoreMsg:
		m.highScore = msg.Score

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m, m.router.Next()
		case "shift+tab":
			n := len(m.router.TabNames())
			return m, m.router.Switch((m.router.ActiveTab() + n - 1) % n)
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// HighScore returns the score shown in the header.
func (m AppModel) HighScore() int {
	return m.highScore
}

func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(hints, p.KeyHints()...)
	}
	return append(hints,
		layout.KeyHint{Key: "Tab", Description: "Switch tab"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderTooSmall(m.width, m.height)
	}
	header := layout.RenderHeader(m.router.TabNames(), m.router.ActiveTab(), m.highScore, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)
	return layout.Compose(header, footer, m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
