package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizflip/internal/ui/theme"
)

// ChecklistItem is one toggleable entry.
type ChecklistItem struct {
	Label   string
	Detail  string
	Checked bool
}

// Checklist is a vertical list of toggleable items.
type Checklist struct {
	Items    []ChecklistItem
	Selected int
}

// NewChecklist creates a checklist with the cursor on the first item.
func NewChecklist(items []ChecklistItem) Checklist {
	return Checklist{Items: items}
}

// Update handles cursor movement and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Items) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Items)-1 {
			c.Selected++
		}
	case "space", "x":
		c.Items[c.Selected].Checked = !c.Items[c.Selected].Checked
	case "a":
		all := !c.allChecked()
		for i := range c.Items {
			c.Items[i].Checked = all
		}
	}
	return c, nil
}

func (c Checklist) allChecked() bool {
	for _, it := range c.Items {
		if !it.Checked {
			return false
		}
	}
	return true
}

// Add appends an item, or checks an existing one with the same label, and
// moves the cursor to it.
func (c *Checklist) Add(label string) {
	for i, it := range c.Items {
		if it.Label == label {
			c.Items[i].Checked = true
			c.Selected = i
			return
		}
	}
	c.Items = append(c.Items, ChecklistItem{Label: label, Checked: true})
	c.Selected = len(c.Items) - 1
}

// Checked returns the labels of checked items in list order.
func (c Checklist) Checked() []string {
	var out []string
	for _, it := range c.Items {
		if it.Checked {
			out = append(out, it.Label)
		}
	}
	return out
}

// View renders the checklist.
func (c Checklist) View(focused bool) string {
	var b strings.Builder
	for i, it := range c.Items {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		prefix := "  "
		style := theme.Unselected
		if focused && i == c.Selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix + box + " " + it.Label))
		if it.Detail != "" {
			b.WriteString(" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(it.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
