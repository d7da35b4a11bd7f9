package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"

	"github.com/nightrabbit666/workassist/internal/wizard"
	pkgtui "github.com/nightrabbit666/workassist/pkg/tui"
)

// Browser is a fuzzy file picker over the uploadable files below a root
// directory. Picking a file submits it into the slot the browser was opened
// for.
type Browser struct {
	input     textinput.Model
	root      string
	files     []string
	matches   []fuzzy.Match
	selected  int
	target    wizard.SlotKey
	scanning  bool
	truncated bool
	err       error
	width     int
	height    int
	visible   bool
}

// NewBrowser creates a browser rooted at root.
func NewBrowser(root string) *Browser {
	input := textinput.New()
	input.Placeholder = "Type to filter files..."
	input.Prompt = "> "
	input.CharLimit = 256

	return &Browser{
		input: input,
		root:  root,
	}
}

// SetSize sets the browser dimensions
func (b *Browser) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.input.Width = max(10, min(width, 72)-8)
}

// Show opens the browser for target and starts a directory scan.
func (b *Browser) Show(target wizard.SlotKey) tea.Cmd {
	b.visible = true
	b.target = target
	b.input.Reset()
	b.selected = 0
	b.err = nil
	b.scanning = true
	return tea.Batch(b.input.Focus(), scanFilesCmd(b.root))
}

// Hide hides the browser
func (b *Browser) Hide() {
	b.visible = false
	b.input.Blur()
}

// Visible returns whether the browser is open
func (b *Browser) Visible() bool {
	return b.visible
}

// Target is the slot the browser submits into.
func (b *Browser) Target() wizard.SlotKey {
	return b.target
}

// SetFiles replaces the candidate list. Paths are relative to the root.
func (b *Browser) SetFiles(files []string) {
	b.files = files
	b.scanning = false
	b.updateMatches()
}

// Selected returns the absolute path of the highlighted file, if any.
func (b *Browser) Selected() (string, bool) {
	if b.selected < 0 || b.selected >= len(b.matches) {
		return "", false
	}
	idx := b.matches[b.selected].Index
	if idx >= len(b.files) {
		return "", false
	}
	return filepath.Join(b.root, b.files[idx]), true
}

// Update handles input
func (b *Browser) Update(msg tea.Msg) (*Browser, tea.Cmd) {
	if !b.visible {
		return b, nil
	}

	switch msg := msg.(type) {
	case filesScannedMsg:
		if msg.root != b.root {
			return b, nil
		}
		b.err = msg.err
		b.truncated = msg.truncated
		b.SetFiles(msg.files)
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			b.Hide()
			return b, nil

		case "enter":
			path, ok := b.Selected()
			if !ok {
				return b, nil
			}
			target := b.target
			b.Hide()
			return b, func() tea.Msg {
				return SubmitFileMsg{Key: target, Path: path}
			}

		case "up", "ctrl+p":
			if b.selected > 0 {
				b.selected--
			}
			return b, nil

		case "down", "ctrl+n":
			if b.selected < len(b.matches)-1 {
				b.selected++
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)

	b.updateMatches()
	b.selected = 0

	return b, cmd
}

func (b *Browser) updateMatches() {
	query := strings.TrimSpace(b.input.Value())
	if query == "" {
		b.matches = make([]fuzzy.Match, len(b.files))
		for i := range b.files {
			b.matches[i] = fuzzy.Match{Index: i}
		}
		return
	}
	b.matches = fuzzy.Find(query, b.files)
}

// View renders the browser
func (b *Browser) View() string {
	if !b.visible {
		return ""
	}

	width := b.width
	if width <= 0 || width > 72 {
		width = 72
	}

	var sb strings.Builder

	sb.WriteString(pkgtui.TitleStyle.Render("Choose a file for "+b.target.Label()) + "\n")
	sb.WriteString(b.input.View() + "\n")
	sb.WriteString(strings.Repeat("─", max(1, width-6)) + "\n")

	maxResults := 10
	if b.height > 0 {
		maxResults = max(1, min(maxResults, b.height-8))
	}

	// Keep the selection inside the visible window.
	start := 0
	if b.selected >= maxResults {
		start = b.selected - maxResults + 1
	}
	for i := start; i < len(b.matches) && i < start+maxResults; i++ {
		name := truncate.StringWithTail(b.files[b.matches[i].Index], uint(max(8, width-10)), "…")
		if i == b.selected {
			name = pkgtui.SelectedStyle.Render(name)
		} else {
			name = pkgtui.UnselectedStyle.Render(name)
		}
		sb.WriteString("  " + name + "\n")
	}

	switch {
	case b.scanning:
		sb.WriteString(pkgtui.LabelStyle.Render("  Scanning " + b.root + "..."))
	case b.err != nil:
		sb.WriteString(pkgtui.StatusError.Render("  " + b.err.Error()))
	case len(b.matches) == 0:
		sb.WriteString(pkgtui.LabelStyle.Render("  No matching files (" + strings.Join(wizard.AllowedExtensions, " ") + ")"))
	case b.truncated:
		sb.WriteString(pkgtui.LabelStyle.Render("  Showing the first files found; type to narrow"))
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pkgtui.ColorPrimary).
		Padding(1, 2).
		Width(width)

	return style.Render(sb.String())
}
