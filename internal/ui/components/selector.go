package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/ui/theme"
)

// Option is one choice in a Selector.
type Option struct {
	Label string
	Value string
}

// Selector is a horizontal single-choice control, used for the
// difficulty and question type pickers.
type Selector struct {
	Label    string
	Options  []Option
	Selected int
	Focused  bool
}

// NewSelector creates a selector with the option whose Value equals
// value selected, or the first option if none matches.
func NewSelector(label string, options []Option, value string) Selector {
	s := Selector{Label: label, Options: options}
	s.Select(value)
	return s
}

// Select moves the selection to the option with the given value.
// Unknown values select the first option.
func (s *Selector) Select(value string) {
	s.Selected = 0
	for i, o := range s.Options {
		if o.Value == value {
			s.Selected = i
			return
		}
	}
}

// Value returns the selected option's value.
func (s Selector) Value() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[s.Selected].Value
}

// Update moves the selection with left/right (or h/l) while focused.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.Selected > 0 {
			s.Selected--
		}
	case "right", "l", "space":
		if s.Selected < len(s.Options)-1 {
			s.Selected++
		} else if kmsg.String() == "space" {
			s.Selected = 0
		}
	}
	return s, nil
}

// View renders the label followed by every option as a pill.
func (s Selector) View() string {
	var b strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.Focused {
		labelStyle = theme.Selected
	}
	b.WriteString(labelStyle.Render(s.Label))
	b.WriteString("\n")

	pills := make([]string, len(s.Options))
	for i, o := range s.Options {
		switch {
		case i == s.Selected && s.Focused:
			pills[i] = theme.ButtonActive.Render(o.Label)
		case i == s.Selected:
			pills[i] = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 2).Render(o.Label)
		default:
			pills[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2).Render(o.Label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pills...))
	return b.String()
}
