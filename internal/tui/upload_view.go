package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nightrabbit666/workassist/internal/wizard"
	pkgtui "github.com/nightrabbit666/workassist/pkg/tui"
)

// UploadView is the first step: one zone per slot plus the analyze control.
// A zone accepts a dropped (pasted) path, a typed path, or a browser pick.
type UploadView struct {
	session   *wizard.Session
	keys      pkgtui.WizardKeys
	slots     []wizard.SlotKey
	focus     int // index into slots; len(slots) is the analyze control
	path      textinput.Model
	browser   *Browser
	notes     map[wizard.SlotKey]string
	indicator string
	width     int
	height    int
}

// NewUploadView creates the upload step over session. root is where the
// file browser starts.
func NewUploadView(session *wizard.Session, root string) *UploadView {
	path := textinput.New()
	path.Placeholder = "Drop a file here or type a path"
	path.Prompt = "› "
	path.CharLimit = 1024

	return &UploadView{
		session: session,
		keys:    pkgtui.NewWizardKeys(),
		slots:   wizard.AllSlotKeys(),
		path:    path,
		browser: NewBrowser(root),
		notes:   make(map[wizard.SlotKey]string),
	}
}

func (v *UploadView) Name() string { return "Upload" }

func (v *UploadView) Init() tea.Cmd { return nil }

// Focus is called when this view becomes visible
func (v *UploadView) Focus() tea.Cmd {
	if v.focusedSlot() != "" {
		return v.path.Focus()
	}
	return nil
}

// Blur is called when this view is hidden
func (v *UploadView) Blur() {
	v.path.Blur()
	v.browser.Hide()
}

// SetSize sets the available content area.
func (v *UploadView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.path.Width = max(10, width-12)
	v.browser.SetSize(width, height)
}

// SetIndicator sets the busy indicator drawn next to the analyze control.
func (v *UploadView) SetIndicator(s string) {
	v.indicator = s
}

// SetNote shows a local message under a slot, e.g. a rejected file.
// An empty note clears it.
func (v *UploadView) SetNote(key wizard.SlotKey, note string) {
	if note == "" {
		delete(v.notes, key)
		return
	}
	v.notes[key] = note
}

// Browsing reports whether the file browser is open.
func (v *UploadView) Browsing() bool {
	return v.browser.Visible()
}

func (v *UploadView) focusedSlot() wizard.SlotKey {
	if v.focus < len(v.slots) {
		return v.slots[v.focus]
	}
	return ""
}

func (v *UploadView) moveFocus(delta int) tea.Cmd {
	n := len(v.slots) + 1
	v.focus = (v.focus + delta + n) % n
	v.path.Reset()
	if v.focusedSlot() == "" {
		v.path.Blur()
		return nil
	}
	return v.path.Focus()
}

func submit(key wizard.SlotKey, path string) tea.Cmd {
	return func() tea.Msg {
		return SubmitFileMsg{Key: key, Path: path}
	}
}

func requestAnalysis() tea.Msg { return AnalyzeRequestedMsg{} }

// Update handles input
func (v *UploadView) Update(msg tea.Msg) (pkgtui.View, tea.Cmd) {
	if v.browser.Visible() {
		var cmd tea.Cmd
		v.browser, cmd = v.browser.Update(msg)
		if !v.browser.Visible() {
			return v, tea.Batch(cmd, v.path.Focus())
		}
		return v, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		v.path, cmd = v.path.Update(msg)
		return v, cmd
	}

	slot := v.focusedSlot()

	// Terminals deliver dropped files as a bracketed paste.
	if keyMsg.Paste && slot != "" {
		path := wizard.CleanDroppedPath(string(keyMsg.Runes))
		v.path.Reset()
		if path == "" {
			return v, nil
		}
		return v, submit(slot, path)
	}

	switch {
	case key.Matches(keyMsg, v.keys.NavDown), key.Matches(keyMsg, v.keys.Next):
		return v, v.moveFocus(1)
	case key.Matches(keyMsg, v.keys.NavUp), key.Matches(keyMsg, v.keys.Prev):
		return v, v.moveFocus(-1)
	case key.Matches(keyMsg, v.keys.Analyze):
		return v, requestAnalysis
	case key.Matches(keyMsg, v.keys.Browse):
		if slot == "" {
			return v, nil
		}
		v.path.Blur()
		return v, v.browser.Show(slot)
	case key.Matches(keyMsg, v.keys.Select):
		if slot == "" {
			return v, requestAnalysis
		}
		typed := wizard.CleanDroppedPath(v.path.Value())
		if typed == "" {
			v.path.Blur()
			return v, v.browser.Show(slot)
		}
		v.path.Reset()
		return v, submit(slot, typed)
	}

	if slot == "" {
		return v, nil
	}
	var cmd tea.Cmd
	v.path, cmd = v.path.Update(msg)
	return v, cmd
}

// View renders the slot zones and the analyze control
func (v *UploadView) View() string {
	if v.browser.Visible() {
		return v.browser.View()
	}

	var b strings.Builder
	b.WriteString(pkgtui.TitleStyle.Render("Upload documents"))
	b.WriteString("\n")
	b.WriteString(pkgtui.SubtitleStyle.Render("The template is required. The reference document and spreadsheet help the analysis."))
	b.WriteString("\n\n")

	cardWidth := max(30, min(v.width, 96)-2)
	for i, key := range v.slots {
		b.WriteString(v.renderSlot(key, i == v.focus, cardWidth))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.renderTrigger())
	return b.String()
}

func (v *UploadView) renderSlot(key wizard.SlotKey, focused bool, width int) string {
	title := key.Label()
	if key.Required() {
		title += " " + pkgtui.StatusError.Render("*")
	} else {
		title += " " + pkgtui.LabelStyle.Render("(optional)")
	}

	lines := []string{pkgtui.TitleStyle.Render(title), v.statusLine(key)}
	if note, ok := v.notes[key]; ok {
		lines = append(lines, pkgtui.StatusError.Render(note))
	}
	if focused {
		lines = append(lines, v.path.View())
	}

	style := pkgtui.CardStyle
	if focused {
		style = pkgtui.CardFocusedStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (v *UploadView) statusLine(key wizard.SlotKey) string {
	st := v.session.SlotStatus(key)
	var line string
	switch st.Phase {
	case wizard.SlotUploading:
		line = pkgtui.StatusBusy.Render(st.Message)
	case wizard.SlotReady:
		line = pkgtui.StatusReady.Render(st.Message)
	case wizard.SlotFailed:
		line = pkgtui.StatusError.Render(wizard.UserMessage("Upload", st.Err))
		if slot, ok := v.session.Uploads().Slot(key); ok && slot.Ready() {
			line += pkgtui.LabelStyle.Render(fmt.Sprintf("  (keeping %s)", slot.DisplayName))
		}
	default:
		line = pkgtui.StatusIdle.Render("No file")
	}
	if st.Detail != "" {
		line += "\n" + pkgtui.LabelStyle.Render(st.Detail)
	}
	return line
}

func (v *UploadView) renderTrigger() string {
	trigger := v.session.Trigger()
	label := trigger.Label
	var button string
	switch {
	case trigger.Busy:
		button = pkgtui.ButtonDisabledStyle.Render(label)
		if v.indicator != "" {
			button = v.indicator + " " + button
		}
	case !trigger.Enabled:
		button = pkgtui.ButtonDisabledStyle.Render(label)
	case v.focus == len(v.slots):
		button = pkgtui.ButtonFocusedStyle.Render(label)
	default:
		button = pkgtui.ButtonStyle.Render(label)
	}
	return button
}

// ShortHelp returns keybinding hints for the footer
func (v *UploadView) ShortHelp() string {
	if v.browser.Visible() {
		return "↑/↓ select  enter upload  esc close"
	}
	return "↑/↓ slot  enter upload/browse  ctrl+o browse  ctrl+a analyze"
}

// FullHelp lists the upload step bindings for the help overlay.
func (v *UploadView) FullHelp() []pkgtui.HelpBinding {
	return []pkgtui.HelpBinding{
		{Key: "paste/drop", Description: "upload the dropped file into the focused slot"},
		{Key: "enter", Description: "upload the typed path, or browse when empty"},
		{Key: "ctrl+o", Description: "browse files below the working directory"},
		{Key: "ctrl+a", Description: "start AI analysis"},
	}
}
