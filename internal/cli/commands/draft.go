package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/nightrabbit666/workassist/internal/wizard"
	"github.com/nightrabbit666/workassist/pkg/workassist"
)

// DraftFile is the YAML hand-off between `analyze` and `save`. It carries
// the uploaded file ids, the analysed parameters (editable by hand) and the
// project form.
type DraftFile struct {
	Files        map[wizard.SlotKey]DraftUpload `yaml:"files"`
	Project      DraftProject                   `yaml:"project"`
	Parameters   []DraftParameter               `yaml:"parameters"`
	LogicSummary string                         `yaml:"logic_summary,omitempty"`
	DiffReport   string                         `yaml:"diff_report,omitempty"`
	TokenUsage   *DraftTokens                   `yaml:"token_usage,omitempty"`
}

type DraftUpload struct {
	FileID string `yaml:"file_id"`
	Name   string `yaml:"name"`
	Size   int64  `yaml:"size"`
}

type DraftProject struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Mode        string        `yaml:"mode"`
	Features    DraftFeatures `yaml:"features"`
}

type DraftFeatures struct {
	Daily   bool `yaml:"daily"`
	Monthly bool `yaml:"monthly"`
	Debug   bool `yaml:"debug"`
}

type DraftTokens struct {
	Prompt     int `yaml:"prompt"`
	Candidates int `yaml:"candidates"`
	Total      int `yaml:"total"`
}

// DraftParameter mirrors a parameter. Fields the backend sent that the
// wizard does not know about are kept under extra and sent back on save.
type DraftParameter struct {
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type,omitempty"`
	Description string         `yaml:"description"`
	Context     string         `yaml:"context,omitempty"`
	Example     string         `yaml:"example,omitempty"`
	Extra       map[string]any `yaml:"extra,omitempty"`
}

func draftParameter(p wizard.Parameter) (DraftParameter, error) {
	out := DraftParameter{
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
		Context:     p.Context,
		Example:     p.Example,
	}
	if len(p.Extra) == 0 {
		return out, nil
	}
	out.Extra = make(map[string]any, len(p.Extra))
	for k, raw := range p.Extra {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return DraftParameter{}, fmt.Errorf("parameter %q field %q: %w", p.Name, k, err)
		}
		out.Extra[k] = v
	}
	return out, nil
}

func (d DraftParameter) parameter() (wizard.Parameter, error) {
	p := wizard.Parameter{
		Name:        d.Name,
		Type:        d.Type,
		Description: d.Description,
		Context:     d.Context,
		Example:     d.Example,
	}
	if len(d.Extra) == 0 {
		return p, nil
	}
	p.Extra = make(map[string]json.RawMessage, len(d.Extra))
	for k, v := range d.Extra {
		raw, err := json.Marshal(v)
		if err != nil {
			return wizard.Parameter{}, fmt.Errorf("parameter %q field %q: %w", d.Name, k, err)
		}
		p.Extra[k] = raw
	}
	return p, nil
}

// NewDraftFile captures the state of a session at the review step.
func NewDraftFile(s *wizard.Session, project wizard.ProjectDraft) (DraftFile, error) {
	d := DraftFile{
		Files: make(map[wizard.SlotKey]DraftUpload),
		Project: DraftProject{
			Name:        project.Name,
			Description: project.Description,
			Mode:        string(project.Mode),
			Features: DraftFeatures{
				Daily:   project.Features.Daily,
				Monthly: project.Features.Monthly,
				Debug:   project.Features.Debug,
			},
		},
	}
	for key, slot := range s.Uploads().Slots() {
		if !slot.Ready() {
			continue
		}
		d.Files[key] = DraftUpload{FileID: slot.FileID, Name: slot.DisplayName, Size: slot.SizeBytes}
	}
	items, _ := s.Params().Items()
	d.Parameters = make([]DraftParameter, 0, len(items))
	for _, p := range items {
		dp, err := draftParameter(p)
		if err != nil {
			return DraftFile{}, err
		}
		d.Parameters = append(d.Parameters, dp)
	}
	report := s.Analysis().Report()
	d.LogicSummary = report.LogicSummary
	d.DiffReport = report.DiffReport
	if u := report.TokenUsage; u != nil {
		d.TokenUsage = &DraftTokens{Prompt: u.PromptTokens, Candidates: u.CandidatesTokens, Total: u.TotalTokens}
	}
	return d, nil
}

// Resume puts s at the review step with the draft's uploads and parameters.
func (d DraftFile) Resume(s *wizard.Session) error {
	slots := make(wizard.Slots, len(d.Files))
	for key, f := range d.Files {
		if !key.Valid() {
			return fmt.Errorf("draft: unknown slot %q", key)
		}
		slots[key] = wizard.UploadSlot{FileID: f.FileID, DisplayName: f.Name, SizeBytes: f.Size}
	}
	params := make([]wizard.Parameter, 0, len(d.Parameters))
	for _, dp := range d.Parameters {
		p, err := dp.parameter()
		if err != nil {
			return err
		}
		params = append(params, p)
	}
	report := wizard.Report{LogicSummary: d.LogicSummary, DiffReport: d.DiffReport}
	if t := d.TokenUsage; t != nil {
		report.TokenUsage = &workassist.TokenUsage{PromptTokens: t.Prompt, CandidatesTokens: t.Candidates, TotalTokens: t.Total}
	}
	return s.Resume(slots, params, report)
}

// ProjectDraft converts the project section.
func (d DraftFile) ProjectDraft() wizard.ProjectDraft {
	return wizard.ProjectDraft{
		Name:        d.Project.Name,
		Description: d.Project.Description,
		Mode:        wizard.ParseMode(d.Project.Mode),
		Features: wizard.Features{
			Daily:   d.Project.Features.Daily,
			Monthly: d.Project.Features.Monthly,
			Debug:   d.Project.Features.Debug,
		},
	}
}

// SlotKeys returns the draft's slots in wizard order.
func (d DraftFile) SlotKeys() []wizard.SlotKey {
	keys := make([]wizard.SlotKey, 0, len(d.Files))
	for key := range d.Files {
		keys = append(keys, key)
	}
	order := map[wizard.SlotKey]int{}
	for i, k := range wizard.AllSlotKeys() {
		order[k] = i
	}
	sort.Slice(keys, func(i, j int) bool { return order[keys[i]] < order[keys[j]] })
	return keys
}

// WriteDraftFile writes d to path as YAML.
func WriteDraftFile(path string, d DraftFile) error {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, raw, 0o644)
}

// ReadDraftFile loads a draft written by WriteDraftFile, possibly edited by
// hand.
func ReadDraftFile(path string) (DraftFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DraftFile{}, err
	}
	var d DraftFile
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return DraftFile{}, fmt.Errorf("draft %s: %w", path, err)
	}
	return d, nil
}
