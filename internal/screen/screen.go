package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/histquiz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header tab bar.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Focuser is implemented by screens that refresh their data whenever
// their tab becomes the visible one.
type Focuser interface {
	Focus() tea.Cmd
}

// HighScoreMsg announces the current persisted high score. Screens emit
// it after raising or resetting the score; the app keeps the header in
// sync and forwards it to every tab.
type HighScoreMsg struct {
	Score int
}

// SettingsSavedMsg is broadcast after the settings were saved so the quiz
// restarts with them.
type SettingsSavedMsg struct{}
