package review

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/quizflip/internal/ui/layout"
)

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Random   key.Binding
	Shuffle  key.Binding
	Mode     key.Binding
	Flip     key.Binding
	Explain  key.Binding
	Play     key.Binding
	Theme    key.Binding
	Stats    key.Binding
	History  key.Binding
	Reset    key.Binding
	OpenSets key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Random:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "random")),
		Shuffle:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		Mode:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wrong only")),
		Flip:     key.NewBinding(key.WithKeys("space", "enter"), key.WithHelp("space", "flip")),
		Explain:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "explain")),
		Play:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "run code")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Stats:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "analytics")),
		History:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "history")),
		Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		OpenSets: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sets")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Flip, k.Mode, k.Explain, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Random, k.Shuffle},
		{k.Flip, k.Mode, k.Reset, k.OpenSets},
		{k.Explain, k.Play, k.Theme, k.Stats, k.History},
		{k.Help, k.Quit},
	}
}

func hints(bindings []key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
