package wizard

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/nightrabbit666/workassist/pkg/workassist"
)

// fakeBackend records calls and returns canned results.
type fakeBackend struct {
	uploads  []string
	analyzes []workassist.AnalyzeRequest
	saves    []workassist.SaveProjectRequest

	uploadResult  workassist.UploadResult
	uploadErr     error
	analyzeResult workassist.AnalyzeResponse
	analyzeErr    error
	saveResult    workassist.SaveProjectResponse
	saveErr       error
}

func (f *fakeBackend) Upload(_ context.Context, path string) (workassist.UploadResult, error) {
	f.uploads = append(f.uploads, path)
	if f.uploadErr != nil {
		return workassist.UploadResult{}, f.uploadErr
	}
	res := f.uploadResult
	if res.FileID == "" {
		res = workassist.UploadResult{Success: true, FileID: "id-" + filepath.Base(path), OriginalName: filepath.Base(path), Size: 10}
	}
	return res, nil
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

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func twoParams() []workassist.Parameter {
	return []workassist.Parameter{
		{Name: "company", Type: "text", Description: "Company name", Context: "Dear {company}", Example: "Acme"},
		{Name: "amount", Type: "number", Description: "Total", Context: "Total: {amount}", Example: "1200"},
	}
}

// reviewSession returns a session already at the review step.
func reviewSession(t *testing.T, backend *fakeBackend) *Session {
	t.Helper()
	s := NewSession(backend, quietLogger())
	if err := s.SubmitFile(context.Background(), SlotTemplate, writeFile(t, "template.docx", "tpl")); err != nil {
		t.Fatalf("upload: %v", err)
	}
	backend.analyzeResult = workassist.AnalyzeResponse{Parameters: twoParams()}
	if err := s.RunAnalysis(context.Background()); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if s.Step() != StepReview {
		t.Fatalf("expected review step, got %s", s.Step().ID())
	}
	return s
}
