package tui

import (
	"github.com/nightrabbit666/workassist/internal/history"
	"github.com/nightrabbit666/workassist/internal/wizard"
	"github.com/nightrabbit666/workassist/pkg/workassist"
)

// Requests raised by the step views and handled by the App

// SubmitFileMsg asks for path to be uploaded into a slot. Dropped files,
// typed paths and browser picks all arrive this way.
type SubmitFileMsg struct {
	Key  wizard.SlotKey
	Path string
}

// AnalyzeRequestedMsg is sent when the user presses the analyze control
type AnalyzeRequestedMsg struct{}

// BackRequestedMsg asks to return from review to the upload step
type BackRequestedMsg struct{}

// SaveRequestedMsg carries the project form at the moment save was pressed
type SaveRequestedMsg struct {
	Draft wizard.ProjectDraft
}

// StatusMsg replaces the status line
type StatusMsg struct {
	Text  string
	Error bool
}

// Backend results

type uploadDoneMsg struct {
	ticket wizard.Ticket
	result workassist.UploadResult
	err    error
}

type analysisDoneMsg struct {
	resp workassist.AnalyzeResponse
	err  error
}

type saveDoneMsg struct {
	resp       workassist.SaveProjectResponse
	err        error
	historyErr error
}

type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

type filesScannedMsg struct {
	root      string
	files     []string
	truncated bool
	err       error
}
