package tui

import tea "github.com/charmbracelet/bubbletea"

// View is one wizard screen. The app shows exactly one at a time.
type View interface {
	// Init initializes the view and returns any initial commands
	Init() tea.Cmd

	// Update handles messages and returns the updated view and any commands
	Update(msg tea.Msg) (View, tea.Cmd)

	// View renders the view as a string
	View() string

	// Focus is called when this view becomes visible
	Focus() tea.Cmd

	// Blur is called when this view is hidden
	Blur()

	// Name returns the view name
	Name() string

	// ShortHelp returns keybinding hints for the footer
	ShortHelp() string
}

// HelpBinding represents a single keybinding for the help overlay
type HelpBinding struct {
	Key         string // The key(s) to press (e.g., "tab", "ctrl+s")
	Description string // What the key does
}

// FullHelpProvider can provide complete keybinding documentation.
type FullHelpProvider interface {
	FullHelp() []HelpBinding
}
