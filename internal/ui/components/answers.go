package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/ui/theme"
)

// AnswerList is the answer picker for one question. Up/down (or j/k)
// moves the cursor, enter picks it, and digit keys pick directly. Once an
// answer is picked the list is locked until Reveal or a new list.
type AnswerList struct {
	Answers []string
	Cursor  int

	picked   int
	correct  string
	revealed bool
}

// NewAnswerList creates a list with nothing picked.
func NewAnswerList(answers []string) AnswerList {
	return AnswerList{Answers: answers, picked: -1}
}

// Picked returns the chosen answer, if any.
func (a AnswerList) Picked() (string, bool) {
	if a.picked < 0 || a.picked >= len(a.Answers) {
		return "", false
	}
	return a.Answers[a.picked], true
}

// Reveal locks the list on chosen and marks the correct answer.
func (a AnswerList) Reveal(chosen, correct string) AnswerList {
	a.picked = -1
	for i, ans := range a.Answers {
		if ans == chosen {
			a.picked = i
			a.Cursor = i
		}
	}
	a.correct = correct
	a.revealed = true
	return a
}

// Update handles navigation and picking.
func (a AnswerList) Update(msg tea.Msg) (AnswerList, tea.Cmd) {
	if a.picked >= 0 || a.revealed {
		return a, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return a, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if a.Cursor > 0 {
			a.Cursor--
		}
	case "down", "j":
		if a.Cursor < len(a.Answers)-1 {
			a.Cursor++
		}
	case "enter":
		if len(a.Answers) > 0 {
			a.picked = a.Cursor
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(a.Answers) {
				a.Cursor, a.picked = i, i
			}
		}
	}

	return a, nil
}

// View renders the numbered answers. After Reveal the correct answer is
// green and a wrong pick is red.
func (a AnswerList) View(width int) string {
	var b strings.Builder
	for i, ans := range a.Answers {
		prefix := "  "
		if i == a.Cursor && !a.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, ans)

		style := lipgloss.NewStyle().Width(width).Foreground(theme.Text)
		switch {
		case a.revealed && ans == a.correct:
			style = style.Foreground(theme.Success).Bold(true)
			line += "  ✓"
		case a.revealed && i == a.picked:
			style = style.Foreground(theme.Error).Bold(true)
			line += "  ✗"
		case a.revealed:
			style = style.Foreground(theme.TextDim)
		case i == a.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
