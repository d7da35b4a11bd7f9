package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nightrabbit666/workassist/internal/wizard"
	"github.com/nightrabbit666/workassist/pkg/workassist"
)

func reviewView(t *testing.T, resp workassist.AnalyzeResponse) (*ReviewView, *wizard.Session) {
	t.Helper()
	backend := &fakeBackend{analyzeResult: resp}
	session := wizard.NewSession(backend, quietLogger())
	ctx := context.Background()
	if err := session.SubmitFile(ctx, wizard.SlotTemplate, writeFile(t, t.TempDir(), "template.docx")); err != nil {
		t.Fatal(err)
	}
	if err := session.RunAnalysis(ctx); err != nil {
		t.Fatal(err)
	}
	v := NewReviewView(session, wizard.ModeOneShot, wizard.Features{Daily: true})
	v.SetSize(120, 60)
	v.Focus()
	return v, session
}

func TestReviewTogglesModeAndFeatures(t *testing.T) {
	v, _ := reviewView(t, workassist.AnalyzeResponse{Parameters: twoParams()})

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if v.Mode() != wizard.ModeMonthly {
		t.Fatalf("expected monthly after ctrl+t")
	}

	// 2 records x 2 fields, name, description, mode, daily
	for i := 0; i < 7; i++ {
		v.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	if f, ok := v.focusedForm(); !ok || f != formDaily {
		t.Fatalf("expected daily focused, got %v %v", f, ok)
	}
	v.Update(keyRunes(" "))
	if v.Features().Daily {
		t.Fatalf("expected daily toggled off")
	}
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !v.Features().Daily {
		t.Fatalf("expected enter to toggle daily back on")
	}

	draft := v.Draft()
	if draft.Mode != wizard.ModeMonthly || !draft.Features.Daily || draft.Features.Debug {
		t.Fatalf("unexpected draft %+v", draft)
	}
}

func TestReviewSpaceTypesIntoTextFields(t *testing.T) {
	v, session := reviewView(t, workassist.AnalyzeResponse{Parameters: twoParams()})
	v.Update(tea.KeyMsg{Type: tea.KeyTab}) // description of record 0
	v.Update(keyRunes(" "))
	v.Update(keyRunes("2"))
	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})

	p, _ := session.Params().At(0)
	if p.Description != "Company name 2" || p.Name != "company" {
		t.Fatalf("unexpected record %+v", p)
	}
	if p.Type != "text" || p.Context != "Dear {company}" || p.Example != "Acme" {
		t.Fatalf("read-only fields changed: %+v", p)
	}
}

func TestReviewBlurLeavesCommitToBack(t *testing.T) {
	v, session := reviewView(t, workassist.AnalyzeResponse{Parameters: twoParams()})
	v.Update(keyRunes("X"))

	v.Blur()
	if p, _ := session.Params().At(0); p.Name != "company" {
		t.Fatalf("expected blur to leave the list alone, got %q", p.Name)
	}
	if v.inputs[0].name.Focused() {
		t.Fatal("expected input blurred")
	}

	v.Focus()
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p, _ := session.Params().At(0); p.Name != "companyX" {
		t.Fatalf("expected back to commit the typed name, got %q", p.Name)
	}
	var back bool
	for _, msg := range collect(cmd) {
		if _, ok := msg.(BackRequestedMsg); ok {
			back = true
		}
	}
	if !back {
		t.Fatal("expected back request")
	}
}

func TestReviewRebuildsWhenListReplaced(t *testing.T) {
	v, session := reviewView(t, workassist.AnalyzeResponse{Parameters: twoParams()})
	v.Update(keyRunes("Z"))

	session.Params().Replace([]workassist.Parameter{{Name: "fresh"}})
	v.Update(tea.KeyMsg{Type: tea.KeyTab})

	p, _ := session.Params().At(0)
	if p.Name != "fresh" {
		t.Fatalf("expected typed text from the old list to be dropped, got %q", p.Name)
	}
	if len(v.inputs) != 1 || v.inputs[0].name.Value() != "fresh" {
		t.Fatalf("expected inputs rebuilt from the new list")
	}
}

func TestReviewRendersReport(t *testing.T) {
	v, _ := reviewView(t, workassist.AnalyzeResponse{
		Parameters:   twoParams(),
		LogicSummary: "Fills the **company** letter.",
		DiffReport:   "Paragraph 2 differs",
		TokenUsage:   &workassist.TokenUsage{PromptTokens: 10, CandidatesTokens: 5, TotalTokens: 15},
	})
	view := v.View()
	for _, want := range []string{"AI logic summary", "company", "Structure comparison", "Paragraph 2 differs", "= 15 total", "Acme"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestReviewOmitsEmptyReport(t *testing.T) {
	v, _ := reviewView(t, workassist.AnalyzeResponse{Parameters: twoParams()})
	view := v.View()
	for _, unwanted := range []string{"AI logic summary", "Structure comparison", "Tokens:"} {
		if strings.Contains(view, unwanted) {
			t.Fatalf("expected no %q without a report", unwanted)
		}
	}
}

func TestWindowKeepsFocusVisible(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = string(rune('a' + i%26))
	}
	out := strings.Split(window(lines, 25, 9), "\n")
	if len(out) != 9 {
		t.Fatalf("expected 9 lines, got %d", len(out))
	}
	if out[0] != lines[21] || !contains(out, lines[25]) {
		t.Fatalf("expected focus line visible")
	}
	if got := window(lines[:3], 0, 9); got != "a\nb\nc" {
		t.Fatalf("expected short content untouched, got %q", got)
	}
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
