package settings

import (
	"context"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	prefs "github.com/abhisek/histquiz/internal/settings"
	"github.com/abhisek/histquiz/internal/trivia"
	"github.com/abhisek/histquiz/internal/ui/components"
	"github.com/abhisek/histquiz/internal/ui/layout"
)

// HighScores is the part of the high-score ledger the settings tab uses.
type HighScores interface {
	Get(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

// Form fields in focus order.
const (
	fieldAmount = iota
	fieldDifficulty
	fieldType
	fieldSave
	fieldReset
	fieldCount
)

type highScoreLoadedMsg struct {
	Score int
	Err   error
}

type savedMsg struct {
	Settings prefs.Settings
	Err      error
}

type resetMsg struct {
	Err error
}

// SettingsScreen edits the quiz settings and shows the persisted store.
type SettingsScreen struct {
	store  *prefs.Store
	scores HighScores

	amount     components.TextInput
	difficulty components.Selector
	qtype      components.Selector
	saveBtn    components.Button
	resetBtn   components.Button
	focus      int

	highScore int
	status    string
	statusErr bool
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.Focuser = (*SettingsScreen)(nil)

// New creates a SettingsScreen.
func New(store *prefs.Store, scores HighScores) *SettingsScreen {
	s := &SettingsScreen{
		store:  store,
		scores: scores,
		amount: components.NewTextInput(
			"Amount (1-20)", strconv.Itoa(prefs.DefaultAmount), true, 2),
		difficulty: components.NewSelector("Difficulty", []components.Option{
			{Label: "Any", Value: string(trivia.DifficultyUnset)},
			{Label: "Easy", Value: string(trivia.DifficultyEasy)},
			{Label: "Medium", Value: string(trivia.DifficultyMedium)},
			{Label: "Hard", Value: string(trivia.DifficultyHard)},
		}, ""),
		qtype: components.NewSelector("Type", []components.Option{
			{Label: trivia.TypeMultiple.Label(), Value: string(trivia.TypeMultiple)},
			{Label: trivia.TypeBoolean.Label(), Value: string(trivia.TypeBoolean)},
		}, ""),
	}
	s.saveBtn = components.NewButton("Save", false, s.save)
	s.resetBtn = components.NewButton("Reset", false, s.reset)
	s.loadForm()
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	return tea.Batch(s.setFocus(fieldAmount), s.loadHighScore)
}

// Focus reloads the form and the high score whenever the tab is shown.
func (s *SettingsScreen) Focus() tea.Cmd {
	s.loadForm()
	s.status = ""
	return tea.Batch(s.setFocus(fieldAmount), s.loadHighScore)
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Field"}}
	switch s.focus {
	case fieldDifficulty, fieldType:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	case fieldReset:
		return append(hints, layout.KeyHint{Key: "Enter", Description: "Reset high score"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Save"},
		layout.KeyHint{Key: "Tab", Description: "Quiz"},
	)
}

// loadForm copies the stored settings into the form fields.
func (s *SettingsScreen) loadForm() {
	cur := s.store.Current()
	s.amount.SetValue(strconv.Itoa(cur.Amount))
	s.difficulty.Select(string(cur.Difficulty))
	s.qtype.Select(string(cur.Type))
}

func (s *SettingsScreen) loadHighScore() tea.Msg {
	score, err := s.scores.Get(context.Background())
	return highScoreLoadedMsg{Score: score, Err: err}
}

func (s *SettingsScreen) setFocus(field int) tea.Cmd {
	s.focus = (field + fieldCount) % fieldCount
	s.difficulty.Focused = s.focus == fieldDifficulty
	s.qtype.Focused = s.focus == fieldType
	s.saveBtn.Focused = s.focus == fieldSave
	s.resetBtn.Focused = s.focus == fieldReset
	if s.focus == fieldAmount {
		return s.amount.Focus()
	}
	s.amount.Blur()
	return nil
}

// formSettings reads the form. Blank or unparsable amounts become the
// default and everything else is clamped into range.
func (s *SettingsScreen) formSettings() prefs.Settings {
	n, err := s.amount.NumericValue()
	if err != nil {
		n = 0
	}
	return prefs.Settings{
		Amount:     prefs.ClampAmount(n),
		Difficulty: trivia.Difficulty(s.difficulty.Value()),
		Type:       trivia.QuestionType(s.qtype.Value()),
	}
}

func (s *SettingsScreen) save() tea.Cmd {
	next := s.formSettings()
	s.amount.SetValue(strconv.Itoa(next.Amount))
	return func() tea.Msg {
		return savedMsg{Settings: next, Err: s.store.Save(context.Background(), next)}
	}
}

func (s *SettingsScreen) reset() tea.Cmd {
	return func() tea.Msg {
		return resetMsg{Err: s.scores.Reset(context.Background())}
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case highScoreLoadedMsg:
		if msg.Err != nil {
			s.setStatus("Could not read high score", true)
			return s, nil
		}
		s.highScore = msg.Score
		return s, nil

	case screen.HighScoreMsg:
		s.highScore = msg.Score
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.setStatus("Could not save settings", true)
			return s, nil
		}
		s.setStatus("Settings saved", false)
		return s, tea.Batch(
			func() tea.Msg { return screen.SettingsSavedMsg{} },
			func() tea.Msg { return router.SwitchTabMsg{Index: 0} },
		)

	case resetMsg:
		if msg.Err != nil {
			s.setStatus("Could not reset high score", true)
			return s, nil
		}
		s.highScore = 0
		s.setStatus("High score reset", false)
		return s, func() tea.Msg { return screen.HighScoreMsg{Score: 0} }

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.focus == fieldAmount {
		var cmd tea.Cmd
		s.amount, cmd = s.amount.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SettingsScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up":
		return s, s.setFocus(s.focus - 1)
	case "down":
		return s, s.setFocus(s.focus + 1)
	case "ctrl+s":
		return s, s.save()
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldSave:
		s.saveBtn, cmd = s.saveBtn.Update(msg)
		return s, cmd
	case fieldReset:
		s.resetBtn, cmd = s.resetBtn.Update(msg)
		return s, cmd
	}

	// Enter on any input field submits the form.
	if msg.String() == "enter" {
		return s, s.save()
	}
	switch s.focus {
	case fieldAmount:
		s.amount, cmd = s.amount.Update(msg)
	case fieldDifficulty:
		s.difficulty, cmd = s.difficulty.Update(msg)
	case fieldType:
		s.qtype, cmd = s.qtype.Update(msg)
	}
	return s, cmd
}

func (s *SettingsScreen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusErr = isErr
}
