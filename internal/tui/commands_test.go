package tui

import (
	"testing"
	"time"

	"github.com/nightrabbit666/workassist/internal/wizard"
	"github.com/nightrabbit666/workassist/pkg/workassist"
)

func TestUploadCmdCarriesTicket(t *testing.T) {
	backend := &fakeBackend{}
	ticket := wizard.Ticket{Key: wizard.SlotReference, Seq: 3, Path: "/tmp/old.docx"}
	msg, ok := uploadCmd(backend, ticket, time.Second)().(uploadDoneMsg)
	if !ok {
		t.Fatalf("expected uploadDoneMsg")
	}
	if msg.ticket != ticket || msg.result.FileID != "id-old.docx" || msg.err != nil {
		t.Fatalf("unexpected result %+v", msg)
	}
}

func TestAnalyzeCmdPassesRequest(t *testing.T) {
	backend := &fakeBackend{analyzeResult: workassist.AnalyzeResponse{Parameters: twoParams()}}
	req := workassist.AnalyzeRequest{TemplateFileID: "t1"}
	msg := analyzeCmd(backend, req, time.Second)().(analysisDoneMsg)
	if len(backend.analyzes) != 1 || backend.analyzes[0] != req {
		t.Fatalf("unexpected analyze calls %+v", backend.analyzes)
	}
	if len(msg.resp.Parameters) != 2 {
		t.Fatalf("expected parameters in result")
	}
}

func TestSaveCmdSkipsHistoryOnFailure(t *testing.T) {
	backend := &fakeBackend{saveErr: workassist.ErrRequestFailed}
	hist := &fakeHistory{}
	msg := saveCmd(backend, hist, workassist.SaveProjectRequest{ProjectName: "x"}, time.Second)().(saveDoneMsg)
	if msg.err == nil || len(hist.recorded) != 0 {
		t.Fatalf("expected failure without history, got %+v %+v", msg, hist.recorded)
	}
}

func TestLoadHistoryCmdNilStore(t *testing.T) {
	if loadHistoryCmd(nil) != nil {
		t.Fatalf("expected no command without a store")
	}
}
