package tui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nightrabbit666/workassist/internal/history"
	"github.com/nightrabbit666/workassist/internal/wizard"
	"github.com/nightrabbit666/workassist/pkg/workassist"
)

type fakeBackend struct {
	uploads  []string
	analyzes []workassist.AnalyzeRequest
	saves    []workassist.SaveProjectRequest

	analyzeResult workassist.AnalyzeResponse
	analyzeErr    error
	saveResult    workassist.SaveProjectResponse
	saveErr       error
}

func (f *fakeBackend) Upload(_ context.Context, path string) (workassist.UploadResult, error) {
	f.uploads = append(f.uploads, path)
	name := filepath.Base(path)
	return workassist.UploadResult{Success: true, FileID: "id-" + name, OriginalName: name, Size: 2048}, nil
}

func (f *fakeBackend) Analyze(_ context.Context, req workassist.AnalyzeRequest) (workassist.AnalyzeResponse, error) {
	f.analyzes = append(f.analyzes, req)
	return f.analyzeResult, f.analyzeErr
}

func (f *fakeBackend) SaveProject(_ context.Context, req workassist.SaveProjectRequest) (workassist.SaveProjectResponse, error) {
	f.saves = append(f.saves, req)
	return f.saveResult, f.saveErr
}

func (f *fakeBackend) ProjectURL(id string) string {
	return "http://backend/project/" + id
}

type fakeHistory struct {
	recorded []history.Entry
}

func (h *fakeHistory) Record(_ context.Context, e history.Entry) error {
	h.recorded = append(h.recorded, e)
	return nil
}

func (h *fakeHistory) Recent(_ context.Context, limit int) ([]history.Entry, error) {
	out := make([]history.Entry, 0, len(h.recorded))
	for i := len(h.recorded) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.recorded[i])
	}
	return out, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestApp(t *testing.T, backend *fakeBackend, hist History) *App {
	t.Helper()
	app := NewApp(Options{
		Session: wizard.NewSession(backend, quietLogger()),
		History: hist,
		Logger:  quietLogger(),
		Root:    t.TempDir(),
	})
	app.Update(tea.WindowSizeMsg{Width: 200, Height: 80})
	return app
}

// collect runs cmd and flattens batches. Only use it on commands that do not
// block, i.e. never on ones that include cursor blinks or spinner ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func twoParams() []workassist.Parameter {
	return []workassist.Parameter{
		{Name: "company", Type: "text", Description: "Company name", Context: "Dear {company}", Example: "Acme"},
		{Name: "amount", Type: "number", Description: "Total", Context: "Total: {amount}", Example: "1200"},
	}
}

// uploadTemplate drives one template upload through the app.
func uploadTemplate(t *testing.T, app *App) {
	t.Helper()
	path := writeFile(t, t.TempDir(), "template.docx")
	cmd := app.submitFile(wizard.SlotTemplate, path)
	if cmd == nil {
		t.Fatalf("expected upload command")
	}
	app.Update(cmd())
	if slot, ok := app.session.Uploads().Slot(wizard.SlotTemplate); !ok || slot.FileID != "id-template.docx" {
		t.Fatalf("expected template slot filled, got %+v", slot)
	}
}

// toReview uploads a template and completes an analysis with params.
func toReview(t *testing.T, app *App, params []workassist.Parameter) {
	t.Helper()
	uploadTemplate(t, app)
	app.Update(AnalyzeRequestedMsg{})
	if !app.session.Trigger().Busy {
		t.Fatalf("expected analysis in flight")
	}
	app.Update(analysisDoneMsg{resp: workassist.AnalyzeResponse{Parameters: params}})
	if app.session.Step() != wizard.StepReview || app.shown != wizard.StepReview {
		t.Fatalf("expected review step, got %s", app.session.Step().ID())
	}
}
