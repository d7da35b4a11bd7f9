package tui

import "github.com/charmbracelet/lipgloss"

// Base styles
var (
	// Content container with padding
	ContentStyle = lipgloss.NewStyle().
			Foreground(ColorFg).
			Padding(1, 3)

	// Card/Panel style with border and background
	CardStyle = lipgloss.NewStyle().
			Foreground(ColorFg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 2)

	// Focused card
	CardFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorFg).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 2)

	// Footer bar style
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 3)

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgDim)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Status styles
	StatusReady = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusBusy = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StatusIdle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// List item styles
	SelectedStyle = lipgloss.NewStyle().
			Background(ColorBgLight).
			Foreground(ColorFg).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorFgDim)

	// Badge base style
	BadgeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorBgLight).
			Foreground(ColorFgDim)

	// Help styles
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Step indicator styles
var (
	StepCompletedStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Padding(0, 1)

	StepCurrentStyle = lipgloss.NewStyle().
				Background(ColorSuccess).
				Foreground(ColorBg).
				Bold(true).
				Padding(0, 1)

	StepPendingStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)
)

// Button styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorBg).
			Bold(true).
			Padding(0, 2)

	ButtonFocusedStyle = lipgloss.NewStyle().
				Background(ColorSuccess).
				Foreground(ColorBg).
				Bold(true).
				Underline(true).
				Padding(0, 2)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Background(ColorBgLight).
				Foreground(ColorMuted).
				Padding(0, 2)
)

// Report styles
var (
	SummaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSummary).
			Foreground(ColorSummary).
			Padding(0, 1)

	DiffBoxStyle = lipgloss.NewStyle().
			Background(ColorBgDark).
			Foreground(ColorFgDim).
			Padding(0, 1)

	TokenUsageStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	ExampleStyle = lipgloss.NewStyle().
			Foreground(ColorExample)

	ContextStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)
