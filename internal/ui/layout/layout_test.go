package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a longer title", 8, "a longe…"},
		{"日本語のテキスト", 7, "日本語…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
}

func TestFitHints(t *testing.T) {
	hints := []KeyHint{{"a", "one"}, {"b", "two"}, {"c", "three"}}

	// "a one" + gap + "b two" is 13 cells.
	if got := FitHints(hints, 13); len(got) != 2 {
		t.Errorf("FitHints(13) kept %d hints, want 2", len(got))
	}
	if got := FitHints(hints, 100); len(got) != 3 {
		t.Errorf("FitHints(100) kept %d hints, want 3", len(got))
	}
	if got := FitHints(hints, 2); len(got) != 0 {
		t.Errorf("FitHints(2) kept %d hints, want 0", len(got))
	}
}

func TestChromeRender(t *testing.T) {
	c := Chrome{
		Title:  "Review",
		Status: "3/10 · all",
		Hints:  []KeyHint{{Key: "q", Description: "quit"}},
	}

	var bodyHeight int
	frame := c.Render(80, 24, func(_, h int) string {
		bodyHeight = h
		return "card body"
	})

	for _, want := range []string{"quizflip", "Review", "3/10 · all", "card body", "quit"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}
	if h := lipgloss.Height(frame); h != 24 {
		t.Errorf("frame height = %d, want 24", h)
	}
	if bodyHeight != 18 {
		t.Errorf("body height = %d, want 18", bodyHeight)
	}
}

func TestChromeRenderTooSmall(t *testing.T) {
	called := false
	frame := Chrome{Title: "Review"}.Render(40, 10, func(int, int) string {
		called = true
		return ""
	})
	if called {
		t.Error("body rendered in a terminal below the minimum size")
	}
	if !strings.Contains(frame, "Terminal too small") {
		t.Errorf("frame = %q", frame)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow terminal not flagged")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size flagged as too small")
	}
}
