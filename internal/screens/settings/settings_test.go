package settings

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/histquiz/internal/highscore"
	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	prefs "github.com/abhisek/histquiz/internal/settings"
	"github.com/abhisek/histquiz/internal/trivia"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newScreen(t *testing.T, best int) (*SettingsScreen, *prefs.Store, *highscore.Ledger) {
	t.Helper()
	st, err := prefs.NewStore(context.Background(), prefs.NewMemoryRepo())
	if err != nil {
		t.Fatal(err)
	}
	ledger := highscore.NewLedger(highscore.NewMemoryRepo(best))
	s := New(st, ledger)
	s.Init()
	return s, st, ledger
}

// run executes cmd and feeds the screen's own result messages back into
// it, returning every message produced. Cursor blink commands are skipped.
func run(s *SettingsScreen, cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, run(s, c)...)
		}
		return out
	case savedMsg, resetMsg, highScoreLoadedMsg:
		_, next := s.Update(msg)
		return append([]tea.Msg{msg}, run(s, next)...)
	case screen.SettingsSavedMsg, screen.HighScoreMsg, router.SwitchTabMsg:
		return []tea.Msg{msg}
	}
	return nil
}

func clearAmount(s *SettingsScreen) {
	for range 3 {
		s.Update(specialKey(tea.KeyBackspace))
	}
}

func TestFormShowsStoredSettings(t *testing.T) {
	s, _, _ := newScreen(t, 4)
	run(s, s.loadHighScore)

	view := ansi.Strip(s.View(100, 30))
	for _, want := range []string{"Settings", "Customize your quiz", "Amount (1-20)", "Current store", "High score: 4", "Multiple Choice"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSaveClampsAndSwitchesToQuiz(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		want  int
	}{
		{"in range", "15", 15},
		{"too many", "99", 20},
		{"zero means default", "0", prefs.DefaultAmount},
		{"blank means default", "", prefs.DefaultAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, st, _ := newScreen(t, 0)
			clearAmount(s)
			for _, r := range tt.typed {
				s.Update(keyPress(r))
			}

			_, cmd := s.Update(specialKey(tea.KeyEnter))
			msgs := run(s, cmd)

			if got := st.Current().Amount; got != tt.want {
				t.Errorf("saved amount = %d, want %d", got, tt.want)
			}
			if s.amount.Value() != strconv.Itoa(tt.want) {
				t.Errorf("amount field shows %q after save", s.amount.Value())
			}

			var saved, switched bool
			for _, m := range msgs {
				switch m := m.(type) {
				case screen.SettingsSavedMsg:
					saved = true
				case router.SwitchTabMsg:
					switched = m.Index == 0
				}
			}
			if !saved || !switched {
				t.Errorf("expected SettingsSavedMsg and SwitchTabMsg{0}, got %v", msgs)
			}
			if s.status != "Settings saved" {
				t.Errorf("status = %q", s.status)
			}
		})
	}
}

func TestSelectorsChangeSettings(t *testing.T) {
	s, st, _ := newScreen(t, 0)

	s.Update(specialKey(tea.KeyDown)) // difficulty
	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyRight)) // easy -> medium -> hard
	s.Update(specialKey(tea.KeyDown))  // type
	s.Update(specialKey(tea.KeyRight))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(s, cmd)

	got := st.Current()
	if got.Difficulty != trivia.DifficultyHard || got.Type != trivia.TypeBoolean {
		t.Errorf("saved %+v, want hard/boolean", got)
	}
}

func TestFocusWraps(t *testing.T) {
	s, _, _ := newScreen(t, 0)
	s.Update(specialKey(tea.KeyUp))
	if s.focus != fieldReset {
		t.Errorf("focus = %d, want reset button", s.focus)
	}
	s.Update(specialKey(tea.KeyDown))
	if s.focus != fieldAmount || !s.amount.Focused() {
		t.Errorf("focus = %d, want amount", s.focus)
	}
}

func TestResetHighScore(t *testing.T) {
	s, _, ledger := newScreen(t, 9)
	run(s, s.loadHighScore)

	s.Update(specialKey(tea.KeyUp)) // reset button
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	msgs := run(s, cmd)

	best, _ := ledger.Get(context.Background())
	if best != 0 {
		t.Errorf("ledger = %d after reset", best)
	}
	if s.highScore != 0 || s.status != "High score reset" {
		t.Errorf("screen shows score %d status %q", s.highScore, s.status)
	}
	var announced bool
	for _, m := range msgs {
		if hs, ok := m.(screen.HighScoreMsg); ok && hs.Score == 0 {
			announced = true
		}
	}
	if !announced {
		t.Error("expected HighScoreMsg{0}")
	}
}

func TestFocusRereadsStore(t *testing.T) {
	s, st, ledger := newScreen(t, 0)

	if err := st.Save(context.Background(), prefs.Settings{Amount: 3, Difficulty: trivia.DifficultyMedium, Type: trivia.TypeBoolean}); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.RaiseIfGreater(context.Background(), 6); err != nil {
		t.Fatal(err)
	}

	s.Focus()
	run(s, s.loadHighScore)
	if s.amount.Value() != "3" || s.difficulty.Value() != "medium" || s.qtype.Value() != "boolean" {
		t.Errorf("form not reloaded: %q %q %q", s.amount.Value(), s.difficulty.Value(), s.qtype.Value())
	}
	if s.highScore != 6 {
		t.Errorf("high score = %d, want 6", s.highScore)
	}
}

func TestHighScoreMsgUpdatesCard(t *testing.T) {
	s, _, _ := newScreen(t, 0)
	s.Update(screen.HighScoreMsg{Score: 12})
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "High score: 12") {
		t.Error("card did not pick up the new high score")
	}
}

type failingScores struct{}

func (failingScores) Get(context.Context) (int, error) { return 0, errors.New("disk gone") }
func (failingScores) Reset(context.Context) error      { return errors.New("disk gone") }

func TestHighScoreErrors(t *testing.T) {
	st, err := prefs.NewStore(context.Background(), prefs.NewMemoryRepo())
	if err != nil {
		t.Fatal(err)
	}
	s := New(st, failingScores{})
	run(s, s.loadHighScore)
	if !s.statusErr {
		t.Error("expected an error status after failed read")
	}

	s.Update(specialKey(tea.KeyUp))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(s, cmd)
	if s.status != "Could not reset high score" {
		t.Errorf("status = %q", s.status)
	}
}

func TestSaveButtonSubmits(t *testing.T) {
	s, st, _ := newScreen(t, 0)
	clearAmount(s)
	s.Update(keyPress('7'))
	for range 3 {
		s.Update(specialKey(tea.KeyDown))
	}
	if s.focus != fieldSave {
		t.Fatalf("focus = %d, want save button", s.focus)
	}
	view := ansi.Strip(s.View(100, 30))
	if !strings.Contains(view, "▸ Save") || strings.Contains(view, "▸ Reset") {
		t.Errorf("save button not highlighted:\n%s", view)
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(s, cmd)

	if got := st.Current().Amount; got != 7 {
		t.Errorf("saved amount = %d, want 7", got)
	}
}
