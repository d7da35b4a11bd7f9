package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestWizardKeysBackMatchesEscOnly(t *testing.T) {
	keys := NewWizardKeys()
	if !key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, keys.Back) {
		t.Fatalf("expected Back to match esc")
	}
	if key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}}, keys.Back) {
		t.Fatalf("expected Back to not match h")
	}
}

func TestWizardKeysDoNotShadowTyping(t *testing.T) {
	keys := NewWizardKeys()
	for _, r := range "abcdefghijklmnopqrstuvwxyz?/" {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		for _, b := range []key.Binding{keys.Quit, keys.Help, keys.Back, keys.Browse, keys.Analyze, keys.Save, keys.Mode} {
			if key.Matches(msg, b) {
				t.Fatalf("expected %q to reach text inputs, matched %v", r, b.Keys())
			}
		}
	}
}

func TestHandleCommonQuitAndHelp(t *testing.T) {
	keys := NewWizardKeys()

	quitCmd := HandleCommon(tea.KeyMsg{Type: tea.KeyCtrlC}, keys)
	if quitCmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := quitCmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}

	if cmd := HandleCommon(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, keys); cmd != nil {
		t.Fatalf("expected q to not trigger quit")
	}

	helpCmd := HandleCommon(tea.KeyMsg{Type: tea.KeyF1}, keys)
	if helpCmd == nil {
		t.Fatalf("expected help command")
	}
	if _, ok := helpCmd().(ToggleHelpMsg); !ok {
		t.Fatalf("expected ToggleHelpMsg")
	}
}
