package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screens/summary"
	"github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/trivia"
)

type fakeRepo struct {
	records []session.Record
	stats   store.SessionStats
	err     error
	opts    store.QueryOpts
}

func (f *fakeRepo) ListSessions(_ context.Context, opts store.QueryOpts) ([]session.Record, error) {
	f.opts = opts
	return f.records, f.err
}

func (f *fakeRepo) Stats(context.Context) (store.SessionStats, error) {
	return f.stats, f.err
}

func record(id string, correct, total int) session.Record {
	return session.Record{
		ID:         id,
		FinishedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Requested:  trivia.Request{Amount: total, Difficulty: trivia.DifficultyMedium, Type: trivia.TypeMultiple},
		Correct:    correct,
		Total:      total,
		Passed:     session.Passed(correct, total),
	}
}

func loadedScreen(t *testing.T, repo *fakeRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func TestHistoryEmpty(t *testing.T) {
	s := loadedScreen(t, &fakeRepo{})
	if !strings.Contains(ansi.Strip(s.View(100, 20)), "No sessions yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryListsSessions(t *testing.T) {
	repo := &fakeRepo{
		records: []session.Record{record("b", 7, 10), record("a", 2, 10)},
		stats:   store.SessionStats{Sessions: 2, Passed: 1, Correct: 9, Answered: 20},
	}
	s := loadedScreen(t, repo)

	if repo.opts.Limit != ListLimit {
		t.Errorf("limit = %d, want %d", repo.opts.Limit, ListLimit)
	}
	view := ansi.Strip(s.View(100, 20))
	for _, want := range []string{"2 sessions", "1 passed", "45% accuracy", " 7/10", "pass", "fail"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHistoryNavigateAndOpen(t *testing.T) {
	s := loadedScreen(t, &fakeRepo{records: []session.Record{record("b", 7, 10), record("a", 2, 10)}})

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Fatalf("selected = %d, want 1", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("pushed %T, want summary screen", msg.Screen)
	}
}

func TestHistoryEscPops(t *testing.T) {
	s := loadedScreen(t, &fakeRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestHistoryError(t *testing.T) {
	s := loadedScreen(t, &fakeRepo{err: errors.New("locked")})
	if !strings.Contains(ansi.Strip(s.View(100, 20)), "Error: locked") {
		t.Error("expected error message")
	}
}

func TestHistoryFocusReloads(t *testing.T) {
	repo := &fakeRepo{}
	s := loadedScreen(t, repo)
	repo.records = []session.Record{record("new", 5, 5)}

	s.Update(s.Focus()())
	if len(s.sessions) != 1 {
		t.Errorf("expected reload to pick up 1 session, got %d", len(s.sessions))
	}
}
