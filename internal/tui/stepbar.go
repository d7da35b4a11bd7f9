package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nightrabbit666/workassist/internal/wizard"
	pkgtui "github.com/nightrabbit666/workassist/pkg/tui"
)

// stepMarker is shown before each step label so the indicator is readable
// without colour.
func stepMarker(style wizard.IndicatorStyle) string {
	switch style {
	case wizard.IndicatorCompleted:
		return "✓"
	case wizard.IndicatorCurrent:
		return "●"
	default:
		return "○"
	}
}

func indicatorStyle(style wizard.IndicatorStyle) lipgloss.Style {
	switch style {
	case wizard.IndicatorCompleted:
		return pkgtui.StepCompletedStyle
	case wizard.IndicatorCurrent:
		return pkgtui.StepCurrentStyle
	default:
		return pkgtui.StepPendingStyle
	}
}

// renderStepBar draws the three-step indicator for current.
func renderStepBar(current wizard.Step) string {
	separator := lipgloss.NewStyle().
		Foreground(pkgtui.ColorMuted).
		Padding(0, 1).
		Render("›")

	steps := wizard.AllSteps()
	parts := make([]string, 0, len(steps)*2)
	for i, step := range steps {
		style := wizard.StyleFor(i, current)
		label := fmt.Sprintf("%s %d %s", stepMarker(style), i+1, step.Label())
		parts = append(parts, indicatorStyle(style).Render(label))
		if i < len(steps)-1 {
			parts = append(parts, separator)
		}
	}
	return strings.Join(parts, "")
}
