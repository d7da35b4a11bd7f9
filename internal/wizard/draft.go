package wizard

import (
	"strings"

	"github.com/nightrabbit666/workassist/pkg/workassist"
)

// Mode selects how the created project is used.
type Mode string

const (
	ModeOneShot Mode = "one_shot"
	ModeMonthly Mode = "monthly"
)

// ParseMode accepts the wire values and a few spellings; unknown input maps
// to the one-shot default.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly":
		return ModeMonthly
	default:
		return ModeOneShot
	}
}

// Label returns the display label for the mode.
func (m Mode) Label() string {
	if m == ModeMonthly {
		return "Monthly"
	}
	return "One-shot"
}

// Toggle flips between the two modes.
func (m Mode) Toggle() Mode {
	if m == ModeMonthly {
		return ModeOneShot
	}
	return ModeMonthly
}

// Features are independent project toggles.
type Features = workassist.Features

// ProjectDraft is the configuration submitted when saving.
type ProjectDraft struct {
	Name           string
	Description    string
	Mode           Mode
	Features       Features
	TemplateFileID string
	Parameters     []Parameter
}

// Validate checks the draft locally. A whitespace-only name counts as empty.
func (d ProjectDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("project name", "please enter a project name")
	}
	if d.TemplateFileID == "" {
		return invalid("template", "upload a template before saving")
	}
	return nil
}

// Request converts the draft to its wire form.
func (d ProjectDraft) Request() workassist.SaveProjectRequest {
	mode := d.Mode
	if mode == "" {
		mode = ModeOneShot
	}
	params := d.Parameters
	if params == nil {
		params = []Parameter{}
	}
	return workassist.SaveProjectRequest{
		ProjectName:    strings.TrimSpace(d.Name),
		ProjectDesc:    d.Description,
		Mode:           string(mode),
		Features:       d.Features,
		TemplateFileID: d.TemplateFileID,
		Parameters:     params,
	}
}
