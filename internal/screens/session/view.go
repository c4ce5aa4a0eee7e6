package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/trivia"
	"github.com/abhisek/histquiz/internal/ui/components"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

func renderLoading(width, height int) string {
	return components.Center(
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading questions..."),
		width, height)
}

func renderEmpty(action string, width, height int) string {
	cw := components.ContentWidth(width)
	body := theme.Title.Render("No questions") + "\n\n" +
		lipgloss.NewStyle().Width(cw-6).Foreground(theme.Text).Render(
			"No questions could be loaded for the selected settings. "+
				"Try changing amount/type/difficulty in Settings.") + "\n\n" + action
	return components.Center(components.Card(body, cw), width, height)
}

func renderError(action string, width, height int) string {
	cw := components.ContentWidth(width)
	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
		Render("Failed to load questions. Please try again.") + "\n\n" + action
	return components.Center(components.Card(body, cw), width, height)
}

// DegradedNotice explains which request actually produced the questions
// when the requested difficulty had none.
func DegradedNotice(load trivia.LoadResult, n int) string {
	if !load.Degraded {
		return ""
	}
	want := load.Requested.Difficulty.String()
	if load.UsedDifficulty == trivia.DifficultyUnset {
		return fmt.Sprintf("Couldn't find questions for %q. Loaded %d questions without difficulty filter.", want, n)
	}
	return fmt.Sprintf("Couldn't find questions for %q. Loaded %d questions with %q difficulty instead.",
		want, n, load.UsedDifficulty.String())
}

// renderQuestionView renders the active question display.
func (s *SessionScreen) renderQuestionView(width, height int) string {
	snap := s.snap
	q, ok := snap.Current()
	if !ok {
		return renderLoading(width, height)
	}
	cw := components.ContentWidth(width)

	var b strings.Builder

	if notice := DegradedNotice(snap.Load, snap.Total()); notice != "" {
		b.WriteString(theme.Notice.Width(cw).Render(notice))
		b.WriteString("\n\n")
	}

	label := fmt.Sprintf("Question %d of %d", snap.CurrentIndex+1, snap.Total())
	b.WriteString(components.NewProgressBar(label, snap.CurrentIndex+1, snap.Total(), cw).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score: %d", snap.CorrectCount)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Text()))
	b.WriteString("\n\n")
	b.WriteString(s.answers.View(cw))

	if snap.AwaitingAdvance {
		b.WriteString("\n")
		if snap.LastAnswerCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Incorrect. The answer was " + q.CorrectAnswer()))
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderResult renders the finished-session summary.
func renderResult(res *sess.Result, action string, width, height int) string {
	if res == nil {
		return renderLoading(width, height)
	}
	cw := components.ContentWidth(width)
	inner := cw - 6

	var b strings.Builder
	b.WriteString(centered(inner).Inherit(theme.Title).
		Render(fmt.Sprintf("Result: %d / %d", res.Correct, res.Total)))
	b.WriteString("\n\n")

	if res.Pass {
		b.WriteString(centered(inner).Inherit(theme.Correct).
			Render(fmt.Sprintf("Passed (≥ %d correct)", res.PassThreshold)))
	} else {
		b.WriteString(centered(inner).Inherit(theme.Incorrect).
			Render(fmt.Sprintf("Failed (need %d correct)", res.PassThreshold)))
	}
	b.WriteString("\n")

	b.WriteString(centered(inner).Foreground(theme.TextDim).
		Render(fmt.Sprintf("Accuracy %.0f%%  ·  %s", res.Accuracy()*100, formatDuration(res.Duration.Seconds()))))
	b.WriteString("\n")

	if res.IsNewHighScore {
		b.WriteString("\n")
		b.WriteString(centered(inner).Foreground(theme.Accent).Bold(true).Render("★ New high score!"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, action))

	return components.Center(components.Card(b.String(), cw), width, height)
}

func formatDuration(secs float64) string {
	n := int(secs)
	return fmt.Sprintf("%d:%02d", n/60, n%60)
}
