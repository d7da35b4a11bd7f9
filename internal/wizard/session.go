// Package wizard holds the state of the project-setup wizard: upload slots,
// the analysis coordinator, the shared parameter list and the step
// navigator. It performs no I/O of its own beyond preflighting local files;
// network calls go through a Backend.
package wizard

import (
	"context"
	"log/slog"

	"github.com/nightrabbit666/workassist/pkg/workassist"
)

// Backend is the remote collaborator the wizard talks to.
type Backend interface {
	Upload(ctx context.Context, path string) (workassist.UploadResult, error)
	Analyze(ctx context.Context, req workassist.AnalyzeRequest) (workassist.AnalyzeResponse, error)
	SaveProject(ctx context.Context, req workassist.SaveProjectRequest) (workassist.SaveProjectResponse, error)
	ProjectURL(projectID string) string
}

// Session is one run of the wizard. Every state change goes through it.
//
// Each operation comes in two halves so an event loop can run the network
// call elsewhere: Prepare* validates and marks the action in flight, Finish*
// applies the outcome. The one-shot methods (SubmitFile, RunAnalysis, Save)
// chain both halves around a Backend call.
type Session struct {
	backend  Backend
	logger   *slog.Logger
	slots    *SlotManager
	params   *ParamList
	nav      *Navigator
	analysis *AnalysisCoordinator
}

// NewSession starts a wizard at the upload step.
func NewSession(backend Backend, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	params := NewParamList()
	nav := NewNavigator()
	return &Session{
		backend:  backend,
		logger:   logger,
		slots:    NewSlotManager(),
		params:   params,
		nav:      nav,
		analysis: NewAnalysisCoordinator(params, nav),
	}
}

func (s *Session) Backend() Backend                  { return s.backend }
func (s *Session) Uploads() *SlotManager             { return s.slots }
func (s *Session) Params() *ParamList                { return s.params }
func (s *Session) Navigator() *Navigator             { return s.nav }
func (s *Session) Analysis() *AnalysisCoordinator    { return s.analysis }
func (s *Session) Step() Step                        { return s.nav.Step() }
func (s *Session) Trigger() Trigger                  { return s.analysis.Trigger() }
func (s *Session) SlotStatus(key SlotKey) SlotStatus { return s.slots.Status(key) }

// Editor renders the current parameter list and report.
func (s *Session) Editor() EditorView {
	items, version := s.params.Items()
	return Render(items, version, s.analysis.Report())
}

// Upload

// PrepareUpload preflights path and starts an upload into key.
func (s *Session) PrepareUpload(key SlotKey, path string) (Ticket, FileInfo, error) {
	info, err := Preflight(path)
	if err != nil {
		s.logger.Warn("upload preflight failed", "slot", key, "path", path, "error", err)
		return Ticket{}, FileInfo{}, err
	}
	ticket, err := s.slots.Begin(key, info.Path)
	if err != nil {
		return Ticket{}, FileInfo{}, err
	}
	s.slots.Annotate(ticket, info.Detail())
	s.logger.Debug("upload started", "slot", key, "seq", ticket.Seq, "file", info.Name, "size", info.Size)
	return ticket, info, nil
}

// FinishUpload applies the outcome of an upload. It reports whether the
// slot changed.
func (s *Session) FinishUpload(ticket Ticket, res workassist.UploadResult, err error) bool {
	if err != nil {
		applied := s.slots.Fail(ticket, err)
		s.logger.Warn("upload failed", "slot", ticket.Key, "seq", ticket.Seq, "kind", Classify(err), "error", err, "applied", applied)
		return applied
	}
	applied := s.slots.Apply(ticket, UploadSlot{
		FileID:      res.FileID,
		DisplayName: res.OriginalName,
		SizeBytes:   res.Size,
	})
	if !applied {
		s.logger.Info("discarded superseded upload", "slot", ticket.Key, "seq", ticket.Seq)
	} else {
		s.logger.Info("upload ready", "slot", ticket.Key, "seq", ticket.Seq, "file_id", res.FileID)
	}
	return applied
}

// SubmitFile uploads path into key and waits for the result.
func (s *Session) SubmitFile(ctx context.Context, key SlotKey, path string) error {
	ticket, info, err := s.PrepareUpload(key, path)
	if err != nil {
		return err
	}
	res, err := s.backend.Upload(ctx, info.Path)
	s.FinishUpload(ticket, res, err)
	return err
}

// Analysis

// PrepareAnalysis validates the slots and disables the analyze trigger.
func (s *Session) PrepareAnalysis() (workassist.AnalyzeRequest, error) {
	req, err := s.analysis.Begin(s.slots.Slots())
	if err != nil {
		s.logger.Warn("analysis not started", "error", err)
		return req, err
	}
	s.logger.Info("analysis started", "template", req.TemplateFileID, "excel", req.ExcelFileID, "old_doc", req.OldDocFileID)
	return req, nil
}

// FinishAnalysis applies an analysis outcome and re-enables the trigger.
func (s *Session) FinishAnalysis(resp workassist.AnalyzeResponse, err error) error {
	if err != nil {
		s.logger.Warn("analysis failed", "kind", Classify(err), "error", err)
		return s.analysis.Fail(err)
	}
	if err := s.analysis.Complete(resp); err != nil {
		s.logger.Warn("analysis rejected", "kind", Classify(err), "error", err)
		return err
	}
	attrs := []any{"parameters", s.params.Len()}
	if usage := resp.TokenUsage; usage != nil {
		attrs = append(attrs, "total_tokens", usage.TotalTokens)
	}
	s.logger.Info("analysis complete", attrs...)
	return nil
}

// RunAnalysis analyses the current uploads and waits for the result.
func (s *Session) RunAnalysis(ctx context.Context) error {
	req, err := s.PrepareAnalysis()
	if err != nil {
		return err
	}
	resp, err := s.backend.Analyze(ctx, req)
	return s.FinishAnalysis(resp, err)
}

// Editing

// Edit commits one field of one parameter. version is the list version the
// edit was made against.
func (s *Session) Edit(version uint64, index int, field Field, value string) error {
	if s.nav.Step() != StepReview {
		return ErrWrongStep
	}
	if err := s.params.Patch(version, index, field, value); err != nil {
		s.logger.Warn("edit rejected", "index", index, "field", field, "error", err)
		return err
	}
	return nil
}

// Back leaves review for upload and restores the analyze trigger.
func (s *Session) Back() error {
	if err := s.nav.Back(); err != nil {
		return err
	}
	s.analysis.Reset()
	return nil
}

// Save

// PrepareSave fills the template id and parameters into draft, validates it
// and marks the save in flight.
func (s *Session) PrepareSave(draft ProjectDraft) (workassist.SaveProjectRequest, error) {
	draft.TemplateFileID = s.slots.Slots().FileID(SlotTemplate)
	draft.Parameters, _ = s.params.Items()
	req, err := s.nav.BeginSave(draft)
	if err != nil {
		s.logger.Warn("save not started", "error", err)
		return req, err
	}
	s.logger.Info("saving project", "name", req.ProjectName, "mode", req.Mode, "parameters", len(req.Parameters))
	return req, nil
}

// FinishSave applies a save outcome. On success the wizard is Done and the
// project locator is available from the navigator.
func (s *Session) FinishSave(resp workassist.SaveProjectResponse, err error) error {
	if err != nil {
		if navErr := s.nav.FailSave(err); navErr != nil {
			s.logger.Warn("save outcome without a save in flight", "error", err)
			return navErr
		}
		s.logger.Warn("save failed", "kind", Classify(err), "error", err)
		return err
	}
	locator := s.backend.ProjectURL(resp.ProjectID)
	if err := s.nav.CompleteSave(resp.ProjectID, locator); err != nil {
		s.logger.Warn("save outcome without a save in flight", "project_id", resp.ProjectID)
		return err
	}
	s.logger.Info("project created", "project_id", resp.ProjectID, "url", locator)
	return nil
}

// Save submits draft and waits for the result.
func (s *Session) Save(ctx context.Context, draft ProjectDraft) error {
	req, err := s.PrepareSave(draft)
	if err != nil {
		return err
	}
	resp, err := s.backend.SaveProject(ctx, req)
	return s.FinishSave(resp, err)
}

// Resume rebuilds a session at the review step from state saved by an
// earlier run, such as a headless draft file. The template slot must be set.
func (s *Session) Resume(slots Slots, params []Parameter, report Report) error {
	if s.nav.Step() != StepUpload || s.analysis.Busy() {
		return ErrWrongStep
	}
	if slots.FileID(SlotTemplate) == "" {
		return invalid("template", "draft has no template file id")
	}
	for key, slot := range slots {
		if err := s.slots.restore(key, slot); err != nil {
			return err
		}
	}
	return s.FinishAnalysis(workassist.AnalyzeResponse{
		Parameters:   params,
		LogicSummary: report.LogicSummary,
		DiffReport:   report.DiffReport,
		TokenUsage:   report.TokenUsage,
	}, nil)
}
