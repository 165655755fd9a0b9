// Package picker lets the user choose which question sets to review.
package picker

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/router"
	"github.com/abhisek/quizflip/internal/screen"
	"github.com/abhisek/quizflip/internal/ui/components"
	"github.com/abhisek/quizflip/internal/ui/layout"
	"github.com/abhisek/quizflip/internal/ui/theme"
)

// ChosenMsg is sent to the previous screen when the user applies a
// selection. Sets may be empty.
type ChosenMsg struct {
	Sets []string
}

// Screen lists the sets found in the questions directory plus the bundled
// samples, and accepts extra paths or URLs typed into an input.
type Screen struct {
	list  components.Checklist
	input components.TextInput
	// typing is true while the input has focus.
	typing bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a picker over the sets in dir with current pre-checked.
// Current references that are not discovered are listed too.
func New(dir string, current []string) *Screen {
	discovered := catalog.DiscoverSets(dir)
	checked := make(map[string]bool, len(current))
	for _, c := range current {
		checked[c] = true
	}

	var items []components.ChecklistItem
	seen := make(map[string]bool)
	for _, name := range discovered {
		items = append(items, components.ChecklistItem{Label: name, Checked: checked[name]})
		seen[name] = true
	}
	for _, c := range current {
		if !seen[c] {
			items = append(items, components.ChecklistItem{Label: c, Checked: true})
			seen[c] = true
		}
	}

	input := components.NewTextInput("Add:", "path or https:// URL", 48, discovered)
	input.Blur()

	return &Screen{
		list:  components.NewChecklist(items),
		input: input,
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Question Sets"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.typing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Add"},
			{Key: "Tab", Description: "Back to list"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Toggle"},
		{Key: "a", Description: "All/none"},
		{Key: "Tab", Description: "Add path"},
		{Key: "Enter", Description: "Apply"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// Chosen returns the checked set references.
func (s *Screen) Chosen() []string {
	return s.list.Checked()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.typing {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.typing {
		switch kmsg.String() {
		case "tab", "esc":
			s.typing = false
			s.input.Blur()
			return s, nil
		case "enter":
			if v := s.input.Value(); v != "" {
				s.list.Add(v)
			}
			s.input.Reset()
			s.typing = false
			s.input.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "tab":
		s.typing = true
		return s, s.input.Focus()
	case "enter":
		sets := s.Chosen()
		return s, tea.Sequence(
			router.Back(),
			func() tea.Msg { return ChosenMsg{Sets: sets} },
		)
	case "esc", "q":
		return s, router.Back()
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	title := theme.Title.Render("Choose question sets")
	list := s.list.View(!s.typing)
	if len(s.list.Items) == 0 {
		list = theme.Hint.Render("No sets found. Add a path or URL below.") + "\n"
	}
	count := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(pluralSets(len(s.list.Checked())))

	body := lipgloss.JoinVertical(lipgloss.Left,
		title, "", list, count, "", s.input.View())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func pluralSets(n int) string {
	switch n {
	case 0:
		return "No sets selected"
	case 1:
		return "1 set selected"
	}
	return fmt.Sprintf("%d sets selected", n)
}
