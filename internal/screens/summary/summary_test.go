package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/trivia"
)

func testRecord(correct, total int, degraded bool) session.Record {
	finished := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	used := trivia.DifficultyHard
	if degraded {
		used = trivia.DifficultyUnset
	}
	return session.Record{
		ID:         "rec-1",
		StartedAt:  finished.Add(-3*time.Minute - 5*time.Second),
		FinishedAt: finished,
		Requested: trivia.Request{
			Amount:     total,
			Difficulty: trivia.DifficultyHard,
			Type:       trivia.TypeBoolean,
		},
		UsedDifficulty: used,
		Degraded:       degraded,
		Correct:        correct,
		Total:          total,
		Passed:         session.Passed(correct, total),
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testRecord(3, 5, false))
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Passed(t *testing.T) {
	view := ansi.Strip(New(testRecord(3, 5, false)).View(80, 24))
	for _, want := range []string{"Result: 3 / 5", "Passed (≥ 3 correct)", "3:05", "True / False", "difficulty hard"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Served with") {
		t.Error("non-degraded session should not mention the served difficulty")
	}
}

func TestSummaryScreen_FailedDegraded(t *testing.T) {
	view := ansi.Strip(New(testRecord(1, 4, true)).View(80, 24))
	for _, want := range []string{"Failed (need 2 correct)", "Served with difficulty any (4 questions)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testRecord(3, 5, false))
		_, cmd := s.Update(tea.KeyPressMsg{Code: key})
		if cmd == nil {
			t.Fatal("expected a command")
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Error("expected PopScreenMsg")
		}
	}
}
