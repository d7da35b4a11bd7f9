package workassist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadSendsMultipartFile(t *testing.T) {
	var gotName, gotBody, gotCookie, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotBody = string(data)
		if c, err := r.Cookie(SessionCookieName); err == nil {
			gotCookie = c.Value
		}
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true, "file_id": "f1", "original_name": header.Filename, "size": len(data),
		})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "template.docx")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	client := NewClient(srv.URL + "/").WithSession("abc")
	res, err := client.Upload(context.Background(), path)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.FileID != "f1" || res.OriginalName != "template.docx" || res.Size != 5 {
		t.Fatalf("unexpected result %+v", res)
	}
	if gotName != "template.docx" || gotBody != "hello" {
		t.Fatalf("server saw %q %q", gotName, gotBody)
	}
	if gotCookie != "abc" {
		t.Fatalf("expected session cookie, got %q", gotCookie)
	}
	if gotRequestID == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestUploadRejectedWithErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"File type not allowed"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).UploadReader(context.Background(), "a.txt", strings.NewReader("x"))
	var rej *RejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rej.Message != "File type not allowed" || rej.Status != http.StatusBadRequest {
		t.Fatalf("unexpected rejection %+v", rej)
	}
}

func TestUploadSuccessFalseIsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"disk full"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).UploadReader(context.Background(), "a.docx", strings.NewReader("x"))
	if RejectionMessage(err) != "disk full" {
		t.Fatalf("expected disk full rejection, got %v", err)
	}
}

func TestAnalyzeOmitsEmptyOptionalIDs(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_, _ = w.Write([]byte(`{"parameters":[{"name":"a","type":"text","description":"d","context":"c","example":"e","original_text":"Acme"}],"logic_summary":"sum","token_usage":{"prompt_tokens":1,"candidates_tokens":2,"total_tokens":3}}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Analyze(context.Background(), AnalyzeRequest{TemplateFileID: "f1"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if raw["template_file_id"] != "f1" {
		t.Fatalf("expected template id, got %v", raw)
	}
	if _, ok := raw["excel_file_id"]; ok {
		t.Fatalf("expected excel_file_id omitted, got %v", raw)
	}
	if _, ok := raw["old_doc_file_id"]; ok {
		t.Fatalf("expected old_doc_file_id omitted, got %v", raw)
	}
	if len(resp.Parameters) != 1 || resp.Parameters[0].Name != "a" {
		t.Fatalf("unexpected parameters %+v", resp.Parameters)
	}
	if string(resp.Parameters[0].Extra["original_text"]) != `"Acme"` {
		t.Fatalf("expected original_text preserved, got %v", resp.Parameters[0].Extra)
	}
	if resp.TokenUsage == nil || resp.TokenUsage.TotalTokens != 3 {
		t.Fatalf("unexpected token usage %+v", resp.TokenUsage)
	}
}

func TestAnalyzeErrorFieldIsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"model overloaded"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Analyze(context.Background(), AnalyzeRequest{TemplateFileID: "f1"})
	if !IsRejection(err) || RejectionMessage(err) != "model overloaded" {
		t.Fatalf("expected rejection, got %v", err)
	}
}

func TestTransportFailureIsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Analyze(context.Background(), AnalyzeRequest{TemplateFileID: "f1"})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
	if IsRejection(err) {
		t.Fatal("transport failure must not be a rejection")
	}
}

func TestServerErrorPageIsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SaveProject(context.Background(), SaveProjectRequest{ProjectName: "p"})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestSaveProjectRoundTripsParameters(t *testing.T) {
	var got struct {
		ProjectName string           `json:"project_name"`
		Mode        string           `json:"mode"`
		Features    map[string]bool  `json:"features"`
		Parameters  []map[string]any `json:"parameters"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"success":true,"project_id":"p-1"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	param := Parameter{Name: "X", Type: "text", Extra: map[string]json.RawMessage{"original_text": json.RawMessage(`"Acme"`)}}
	resp, err := client.SaveProject(context.Background(), SaveProjectRequest{
		ProjectName:    "Monthly report",
		Mode:           "monthly",
		Features:       Features{Daily: true},
		TemplateFileID: "f1",
		Parameters:     []Parameter{param},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if resp.ProjectID != "p-1" {
		t.Fatalf("unexpected project id %q", resp.ProjectID)
	}
	if client.ProjectURL(resp.ProjectID) != srv.URL+"/project/p-1" {
		t.Fatalf("unexpected locator %q", client.ProjectURL(resp.ProjectID))
	}
	if got.ProjectName != "Monthly report" || got.Mode != "monthly" || !got.Features["daily"] || got.Features["debug"] {
		t.Fatalf("unexpected payload %+v", got)
	}
	if len(got.Parameters) != 1 || got.Parameters[0]["name"] != "X" || got.Parameters[0]["original_text"] != "Acme" {
		t.Fatalf("unexpected parameters %+v", got.Parameters)
	}
}

func TestSaveProjectFailureIsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SaveProject(context.Background(), SaveProjectRequest{ProjectName: "p"})
	if !IsRejection(err) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if RejectionMessage(err) != "" {
		t.Fatalf("expected no message, got %q", RejectionMessage(err))
	}
}

func TestParameterNonStringExample(t *testing.T) {
	var p Parameter
	if err := json.Unmarshal([]byte(`{"name":"amount","example":1200,"context":null}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Example != "1200" || p.Context != "" {
		t.Fatalf("unexpected parameter %+v", p)
	}
}
