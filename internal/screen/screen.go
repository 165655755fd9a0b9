// Package screen declares what the router needs from a TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizflip/internal/ui/layout"
)

// Screen is one page of the TUI. Only the screen on top of the router
// stack receives messages.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View draws the body for the space between header and footer.
	View(width, height int) string
	Title() string
}

// KeyHintProvider screens list their keys in the footer. Screens without
// it get Esc and Ctrl+C hints when they are not the root.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider screens show a short status at the right of the header.
type StatusProvider interface {
	Status() string
}
