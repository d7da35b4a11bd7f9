package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nightrabbit666/workassist/internal/wizard"
	pkgtui "github.com/nightrabbit666/workassist/pkg/tui"
)

// formField is a focus stop after the parameter inputs.
type formField int

const (
	formProjectName formField = iota
	formProjectDesc
	formMode
	formDaily
	formMonthly
	formDebug
	formSave
)

var formFields = []formField{formProjectName, formProjectDesc, formMode, formDaily, formMonthly, formDebug, formSave}

type paramInputs struct {
	name textinput.Model
	desc textinput.Model
}

// ReviewView is the second step: the editable parameter list, the analysis
// report and the project form.
//
// The inputs are rebuilt from a fresh EditorView whenever the parameter list
// version changes, and every edit is committed against the version the inputs
// were built from.
type ReviewView struct {
	session *wizard.Session
	keys    pkgtui.WizardKeys

	editor  wizard.EditorView
	built   bool
	inputs  []paramInputs
	summary string
	focus   int

	projectName textinput.Model
	projectDesc textinput.Model
	mode        wizard.Mode
	features    wizard.Features

	width  int
	height int
}

// NewReviewView creates the review step. mode and features are the form
// defaults.
func NewReviewView(session *wizard.Session, mode wizard.Mode, features wizard.Features) *ReviewView {
	name := textinput.New()
	name.Placeholder = "Project name (required)"
	name.Prompt = ""
	name.CharLimit = 128

	desc := textinput.New()
	desc.Placeholder = "Short description"
	desc.Prompt = ""
	desc.CharLimit = 512

	if mode == "" {
		mode = wizard.ModeOneShot
	}
	return &ReviewView{
		session:     session,
		keys:        pkgtui.NewWizardKeys(),
		projectName: name,
		projectDesc: desc,
		mode:        mode,
		features:    features,
	}
}

func (v *ReviewView) Name() string { return "Review" }

func (v *ReviewView) Init() tea.Cmd { return nil }

// Focus rebuilds the inputs if the parameter list changed and focuses the
// first field.
func (v *ReviewView) Focus() tea.Cmd {
	if !v.built || v.editor.Version != v.session.Params().Version() {
		v.rebuild()
	}
	return v.applyFocus()
}

// Blur drops input focus. Leaving the step through Back or Save commits the
// focused field first, so nothing is written here.
func (v *ReviewView) Blur() {
	v.blurAll()
}

// SetSize sets the available content area.
func (v *ReviewView) SetSize(width, height int) {
	if width != v.width && v.built {
		v.summary = v.renderSummary(width)
	}
	v.width = width
	v.height = height
	inputWidth := max(10, min(width, 100)-18)
	for i := range v.inputs {
		v.inputs[i].name.Width = inputWidth
		v.inputs[i].desc.Width = inputWidth
	}
	v.projectName.Width = inputWidth
	v.projectDesc.Width = inputWidth
}

// Mode returns the selected project mode.
func (v *ReviewView) Mode() wizard.Mode { return v.mode }

// Features returns the selected feature toggles.
func (v *ReviewView) Features() wizard.Features { return v.features }

// Draft returns the project form as it stands.
func (v *ReviewView) Draft() wizard.ProjectDraft {
	return wizard.ProjectDraft{
		Name:        v.projectName.Value(),
		Description: strings.TrimSpace(v.projectDesc.Value()),
		Mode:        v.mode,
		Features:    v.features,
	}
}

func (v *ReviewView) rebuild() {
	v.editor = v.session.Editor()
	v.built = true
	v.inputs = make([]paramInputs, len(v.editor.Records))
	width := max(10, min(v.width, 100)-18)
	for i, rec := range v.editor.Records {
		name := textinput.New()
		name.Prompt = ""
		name.CharLimit = 128
		name.Width = width
		name.SetValue(rec.Name)

		desc := textinput.New()
		desc.Prompt = ""
		desc.CharLimit = 1024
		desc.Width = width
		desc.SetValue(rec.Description)

		v.inputs[i] = paramInputs{name: name, desc: desc}
	}
	v.summary = v.renderSummary(v.width)
	v.focus = 0
}

func (v *ReviewView) renderSummary(width int) string {
	if v.editor.Report == nil || v.editor.Report.LogicSummary == "" {
		return ""
	}
	out, err := renderMarkdown(v.editor.Report.LogicSummary, max(20, min(width, 100)-6))
	if err != nil {
		return v.editor.Report.LogicSummary
	}
	return out
}

func (v *ReviewView) stops() int {
	return 2*len(v.inputs) + len(formFields)
}

// focusedForm returns the form field under focus, or false when a parameter
// input is focused.
func (v *ReviewView) focusedForm() (formField, bool) {
	i := v.focus - 2*len(v.inputs)
	if i < 0 {
		return 0, false
	}
	return formFields[i], true
}

func (v *ReviewView) focusedInput() *textinput.Model {
	if v.focus < 2*len(v.inputs) {
		in := &v.inputs[v.focus/2]
		if v.focus%2 == 0 {
			return &in.name
		}
		return &in.desc
	}
	switch f, _ := v.focusedForm(); f {
	case formProjectName:
		return &v.projectName
	case formProjectDesc:
		return &v.projectDesc
	}
	return nil
}

func (v *ReviewView) blurAll() {
	for i := range v.inputs {
		v.inputs[i].name.Blur()
		v.inputs[i].desc.Blur()
	}
	v.projectName.Blur()
	v.projectDesc.Blur()
}

func (v *ReviewView) applyFocus() tea.Cmd {
	v.blurAll()
	if in := v.focusedInput(); in != nil {
		return in.Focus()
	}
	return nil
}

// commit writes the focused parameter input back to the shared list when
// its value changed.
func (v *ReviewView) commit() error {
	if v.focus >= 2*len(v.inputs) {
		return nil
	}
	index := v.focus / 2
	rec := &v.editor.Records[index]
	field := wizard.FieldName
	current := rec.Name
	value := v.inputs[index].name.Value()
	if v.focus%2 == 1 {
		field = wizard.FieldDescription
		current = rec.Description
		value = v.inputs[index].desc.Value()
	}
	if value == current {
		return nil
	}
	if err := v.session.Edit(v.editor.Version, index, field, value); err != nil {
		return err
	}
	if field == wizard.FieldName {
		rec.Name = value
	} else {
		rec.Description = value
	}
	return nil
}

// move commits the focused field and moves focus by delta.
func (v *ReviewView) move(delta int) tea.Cmd {
	status := v.commitWithStatus()
	n := v.stops()
	v.focus = (v.focus + delta + n) % n
	return tea.Batch(status, v.applyFocus())
}

func (v *ReviewView) commitWithStatus() tea.Cmd {
	err := v.commit()
	if err == nil {
		return nil
	}
	if errors.Is(err, wizard.ErrStaleEdit) {
		v.rebuild()
	}
	text := wizard.UserMessage("Edit", err)
	return func() tea.Msg { return StatusMsg{Text: text, Error: true} }
}

func (v *ReviewView) toggle(f formField) {
	switch f {
	case formMode:
		v.mode = v.mode.Toggle()
	case formDaily:
		v.features.Daily = !v.features.Daily
	case formMonthly:
		v.features.Monthly = !v.features.Monthly
	case formDebug:
		v.features.Debug = !v.features.Debug
	}
}

func (v *ReviewView) requestSave() tea.Cmd {
	status := v.commitWithStatus()
	draft := v.Draft()
	return tea.Batch(status, func() tea.Msg { return SaveRequestedMsg{Draft: draft} })
}

// Update handles input
func (v *ReviewView) Update(msg tea.Msg) (pkgtui.View, tea.Cmd) {
	if v.built && v.editor.Version != v.session.Params().Version() {
		v.rebuild()
		return v, v.applyFocus()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if in := v.focusedInput(); in != nil {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	form, onForm := v.focusedForm()

	switch {
	case key.Matches(keyMsg, v.keys.Back):
		return v, tea.Batch(v.commitWithStatus(), func() tea.Msg { return BackRequestedMsg{} })
	case key.Matches(keyMsg, v.keys.Save):
		return v, v.requestSave()
	case key.Matches(keyMsg, v.keys.Mode):
		v.mode = v.mode.Toggle()
		return v, nil
	case key.Matches(keyMsg, v.keys.Next), key.Matches(keyMsg, v.keys.NavDown):
		return v, v.move(1)
	case key.Matches(keyMsg, v.keys.Prev), key.Matches(keyMsg, v.keys.NavUp):
		return v, v.move(-1)
	case key.Matches(keyMsg, v.keys.Select):
		if onForm && form == formSave {
			return v, v.requestSave()
		}
		if onForm && form >= formMode {
			v.toggle(form)
			return v, nil
		}
		return v, v.move(1)
	case key.Matches(keyMsg, v.keys.Toggle) && onForm && form >= formMode && form != formSave:
		v.toggle(form)
		return v, nil
	}

	if in := v.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the report, parameters and project form
func (v *ReviewView) View() string {
	var lines []string
	focusLine := 0
	add := func(block string, focused bool) {
		if focused {
			focusLine = len(lines)
		}
		lines = append(lines, strings.Split(block, "\n")...)
	}

	add(pkgtui.TitleStyle.Render("Review parameters"), false)
	add("", false)

	if block := v.renderReport(); block != "" {
		add(block, false)
		add("", false)
	}

	if v.editor.Empty {
		add(pkgtui.StatusBusy.Render(wizard.NoParametersMessage), false)
	} else {
		add(pkgtui.SubtitleStyle.Render(fmt.Sprintf("%d parameter(s). Name and description are editable.", len(v.editor.Records))), false)
		for i, rec := range v.editor.Records {
			focused := v.focus/2 == i && v.focus < 2*len(v.inputs)
			add(v.renderRecord(rec, focused), focused)
		}
	}
	add("", false)
	form, onForm := v.focusedForm()
	add(v.renderForm(form, onForm), onForm && form < formMode)
	if onForm && form >= formMode {
		focusLine = len(lines) - 1
	}

	return window(lines, focusLine, v.height)
}

func (v *ReviewView) renderReport() string {
	report := v.editor.Report
	if report == nil {
		return ""
	}
	width := max(20, min(v.width, 100)-2)
	var parts []string
	if report.TokenUsage != nil {
		u := report.TokenUsage
		parts = append(parts, pkgtui.TokenUsageStyle.Render(fmt.Sprintf(
			"Tokens: %d prompt + %d completion = %d total", u.PromptTokens, u.CandidatesTokens, u.TotalTokens)))
	}
	if v.summary != "" {
		parts = append(parts, pkgtui.SummaryBoxStyle.Width(width).Render("AI logic summary\n"+v.summary))
	}
	if report.DiffReport != "" {
		diff := wordwrap.String(report.DiffReport, width-4)
		parts = append(parts, pkgtui.DiffBoxStyle.Width(width).Render("Structure comparison\n"+diff))
	}
	return strings.Join(parts, "\n")
}

func (v *ReviewView) renderRecord(rec wizard.RecordView, focused bool) string {
	width := max(20, min(v.width, 100)-2)
	in := v.inputs[rec.Index]
	header := fmt.Sprintf("#%d", rec.Index+1)
	if rec.Type != "" {
		header += " " + pkgtui.BadgeStyle.Render(rec.Type)
	}
	lines := []string{
		pkgtui.LabelStyle.Render(header),
		pkgtui.LabelStyle.Render("Name         ") + in.name.View(),
		pkgtui.LabelStyle.Render("Description  ") + in.desc.View(),
	}
	if rec.Example != "" {
		lines = append(lines, pkgtui.LabelStyle.Render("Example      ")+
			pkgtui.ExampleStyle.Render(truncate.StringWithTail(rec.Example, uint(max(8, width-20)), "…")))
	}
	if rec.Context != "" {
		lines = append(lines, pkgtui.ContextStyle.Render(truncate.StringWithTail(
			strings.Join(strings.Fields(rec.Context), " "), uint(max(8, width-6)), "…")))
	}
	style := pkgtui.CardStyle
	if focused {
		style = pkgtui.CardFocusedStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (v *ReviewView) renderForm(focus formField, onForm bool) string {
	mark := func(f formField, s string) string {
		if onForm && focus == f {
			return pkgtui.SelectedStyle.Render("› " + s)
		}
		return "  " + s
	}

	var b strings.Builder
	b.WriteString(pkgtui.TitleStyle.Render("Project"))
	b.WriteString("\n")
	b.WriteString(mark(formProjectName, pkgtui.LabelStyle.Render("Name         ")+v.projectName.View()) + "\n")
	b.WriteString(mark(formProjectDesc, pkgtui.LabelStyle.Render("Description  ")+v.projectDesc.View()) + "\n")
	b.WriteString(mark(formMode, fmt.Sprintf("Mode         < %s >", v.mode.Label())) + "\n")
	b.WriteString(mark(formDaily, checkbox(v.features.Daily)+" Daily report") + "\n")
	b.WriteString(mark(formMonthly, checkbox(v.features.Monthly)+" Monthly summary") + "\n")
	b.WriteString(mark(formDebug, checkbox(v.features.Debug)+" Debug") + "\n\n")

	label := "Save project"
	var button string
	switch {
	case v.session.Navigator().Saving():
		button = pkgtui.ButtonDisabledStyle.Render("Saving...")
	case onForm && focus == formSave:
		button = pkgtui.ButtonFocusedStyle.Render(label)
	default:
		button = pkgtui.ButtonStyle.Render(label)
	}
	b.WriteString(button)
	return b.String()
}

// window returns at most height lines of lines, keeping focus visible.
func window(lines []string, focus, height int) string {
	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	start := focus - height/3
	start = max(0, min(start, len(lines)-height))
	return strings.Join(lines[start:start+height], "\n")
}

// ShortHelp returns keybinding hints for the footer
func (v *ReviewView) ShortHelp() string {
	return "tab next  space toggle  ctrl+t mode  ctrl+s save  esc back"
}

// FullHelp lists the review step bindings for the help overlay.
func (v *ReviewView) FullHelp() []pkgtui.HelpBinding {
	return []pkgtui.HelpBinding{
		{Key: "tab/enter", Description: "commit the field and move on"},
		{Key: "space", Description: "toggle mode or feature"},
		{Key: "ctrl+s", Description: "save the project"},
		{Key: "esc", Description: "back to uploads"},
	}
}
