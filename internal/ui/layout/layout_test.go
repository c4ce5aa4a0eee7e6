package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderHeaderShowsTabsAndScore(t *testing.T) {
	h := ansi.Strip(RenderHeader([]string{"Quiz", "Settings"}, 1, 7, 90))
	for _, want := range []string{"HistQuiz", "Quiz", "Settings", "★ best 7"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
}

func TestComposeGivesBodyRemainingRows(t *testing.T) {
	header := RenderHeader([]string{"Quiz"}, 0, 0, 70)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 70)

	var gotW, gotH int
	frame := Compose(header, footer, 70, 24, func(w, h int) string {
		gotW, gotH = w, h
		return "body"
	})

	if gotW != 70 || gotH != 18 {
		t.Errorf("body got %dx%d, want 70x18", gotW, gotH)
	}
	if rows := len(strings.Split(frame, "\n")); rows != 24 {
		t.Errorf("frame has %d rows, want 24", rows)
	}
	if !strings.Contains(ansi.Strip(frame), "body") {
		t.Error("body missing from frame")
	}
}

func TestRenderFooterHints(t *testing.T) {
	f := ansi.Strip(RenderFooter([]KeyHint{{"Enter", "Select"}, {"Tab", "Settings"}}, 70))
	for _, want := range []string{"Enter Select", "Tab Settings"} {
		if !strings.Contains(f, want) {
			t.Errorf("footer missing %q:\n%s", want, f)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow terminal should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}
