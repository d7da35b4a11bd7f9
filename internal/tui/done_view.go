package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/nightrabbit666/workassist/internal/history"
	"github.com/nightrabbit666/workassist/internal/wizard"
	pkgtui "github.com/nightrabbit666/workassist/pkg/tui"
)

// DoneView is the terminal step. It shows where the new project lives and
// the most recent projects from the local history.
type DoneView struct {
	session    *wizard.Session
	keys       pkgtui.WizardKeys
	recent     []history.Entry
	historyErr error
	width      int
}

func NewDoneView(session *wizard.Session) *DoneView {
	return &DoneView{session: session, keys: pkgtui.NewWizardKeys()}
}

func (v *DoneView) Name() string         { return "Done" }
func (v *DoneView) Init() tea.Cmd        { return nil }
func (v *DoneView) Focus() tea.Cmd       { return nil }
func (v *DoneView) Blur()                {}
func (v *DoneView) SetSize(width, _ int) { v.width = width }

// SetHistory replaces the recent-project list.
func (v *DoneView) SetHistory(entries []history.Entry, err error) {
	v.recent = entries
	v.historyErr = err
}

// Update handles input
func (v *DoneView) Update(msg tea.Msg) (pkgtui.View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, v.keys.Select) {
		return v, tea.Quit
	}
	return v, nil
}

// View renders the created project and recent history
func (v *DoneView) View() string {
	nav := v.session.Navigator()
	var b strings.Builder
	b.WriteString(pkgtui.StatusReady.Render("✓ Project created"))
	b.WriteString("\n\n")
	b.WriteString(pkgtui.LabelStyle.Render("Project ID  ") + nav.ProjectID() + "\n")
	b.WriteString(pkgtui.LabelStyle.Render("Open        ") + pkgtui.TitleStyle.Render(nav.Locator()) + "\n")

	if len(v.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(pkgtui.TitleStyle.Render("Recent projects"))
		b.WriteString("\n")
		for _, e := range v.recent {
			line := fmt.Sprintf("%-24s %-9s %s", e.Name, wizard.ParseMode(e.Mode).Label(), humanize.Time(e.CreatedAt))
			if e.ProjectID == nav.ProjectID() {
				line = pkgtui.SelectedStyle.Render(line)
			} else {
				line = pkgtui.UnselectedStyle.Render(line)
			}
			b.WriteString("  " + line + "\n")
		}
	}
	if v.historyErr != nil {
		b.WriteString("\n" + pkgtui.LabelStyle.Render("History unavailable: "+v.historyErr.Error()) + "\n")
	}
	return b.String()
}

// ShortHelp returns keybinding hints for the footer
func (v *DoneView) ShortHelp() string {
	return "enter exit"
}
