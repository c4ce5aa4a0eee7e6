package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/ui/theme"
)

const glyphRows = 5

var glyphs = map[rune][glyphRows]string{
	'H': {"█   █", "█   █", "█████", "█   █", "█   █"},
	'I': {"███", " █ ", " █ ", " █ ", "███"},
	'S': {" ███", "█   ", " ██ ", "   █", "███ "},
	'T': {"█████", "  █  ", "  █  ", "  █  ", "  █  "},
	'Q': {" ███ ", "█   █", "█   █", "█  ██", " ████"},
	'U': {"█   █", "█   █", "█   █", "█   █", " ███ "},
	'Z': {"█████", "   █ ", "  █  ", " █   ", "█████"},
}

const (
	bannerWord    = "HISTQUIZ"
	bannerCompact = "H I S T Q U I Z"
)

// bannerArt spells word in block glyphs, one space between letters.
func bannerArt(word string) string {
	var rows [glyphRows]strings.Builder
	for i, r := range word {
		g := glyphs[r]
		for row := range rows {
			if i > 0 {
				rows[row].WriteByte(' ')
			}
			rows[row].WriteString(g[row])
		}
	}
	lines := make([]string, glyphRows)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

// RenderBanner returns the HISTQUIZ banner in the primary color, or a
// compact one-line form when width cannot fit the block letters.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := bannerArt(bannerWord)
	if width < lipgloss.Width(art)+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(art)
}
