package tui

import (
	"strings"
	"testing"
)

func TestHelpOverlayHiddenByDefault(t *testing.T) {
	h := NewHelpOverlay()
	if out := h.Render(NewWizardKeys(), nil, 80); out != "" {
		t.Fatalf("expected hidden overlay to render nothing, got %q", out)
	}
}

func TestHelpOverlayListsCommonAndExtraBindings(t *testing.T) {
	h := NewHelpOverlay()
	h.Toggle()
	out := h.Render(NewWizardKeys(), []HelpBinding{{Key: "ctrl+v", Description: "paste a path"}}, 80)
	for _, want := range []string{"Keyboard Shortcuts", "ctrl+s", "save project", "This step", "paste a path"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in overlay:\n%s", want, out)
		}
	}
}
