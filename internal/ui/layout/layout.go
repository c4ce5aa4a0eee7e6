package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/ui/theme"
)

// Smallest terminal the quiz renders in.
const (
	MinWidth  = 64
	MinHeight = 20
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderTooSmall asks the user to enlarge the terminal.
func RenderTooSmall(width, height int) string {
	msg := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small\n\nNeed %d x %d, have %d x %d",
			MinWidth, MinHeight, width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// bar draws the rounded strip used above and below the content.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader draws the app name on the left, the tabs centered and the
// persisted high score on the right.
func RenderHeader(tabs []string, active, highScore, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  HistQuiz")
	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(fmt.Sprintf("★ best %d  ", highScore))
	center := RenderTabs(tabs, active)

	inner := max(width-4, 0)
	side := max(lipgloss.Width(left), lipgloss.Width(right))
	mid := max(inner-2*side, lipgloss.Width(center))

	col := func(w int, pos lipgloss.Position, s string) string {
		return lipgloss.NewStyle().Width(w).Align(pos).Render(s)
	}
	return bar(lipgloss.JoinHorizontal(lipgloss.Top,
		col(side, lipgloss.Left, left),
		col(mid, lipgloss.Center, center),
		col(side, lipgloss.Right, right),
	), width)
}

// RenderTabs renders tab labels separated by a divider.
func RenderTabs(tabs []string, active int) string {
	parts := make([]string, len(tabs))
	for i, name := range tabs {
		if i == active {
			parts[i] = theme.Selected.Underline(true).Render(name)
			continue
		}
		parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(name)
	}
	return strings.Join(parts, lipgloss.NewStyle().Foreground(theme.Border).Render("  │  "))
}

// RenderFooter renders the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, key.Render(h.Key)+" "+desc.Render(h.Description))
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// Compose stacks header, body and footer into a width x height frame.
// body is called with the rows left between header and footer.
func Compose(header, footer string, width, height int, body func(w, h int) string) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().
		Width(width).
		Height(h).
		MaxHeight(h).
		Render(body(width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
