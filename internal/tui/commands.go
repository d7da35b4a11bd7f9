package tui

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nightrabbit666/workassist/internal/history"
	"github.com/nightrabbit666/workassist/internal/wizard"
	"github.com/nightrabbit666/workassist/pkg/workassist"
)

// History is the subset of the history store the TUI needs.
type History interface {
	Record(ctx context.Context, e history.Entry) error
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

const (
	recentProjects = 5
	maxBrowseFiles = 5000
)

var errScanLimit = errors.New("scan limit reached")

func uploadCmd(backend wizard.Backend, ticket wizard.Ticket, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := backend.Upload(ctx, ticket.Path)
		return uploadDoneMsg{ticket: ticket, result: res, err: err}
	}
}

func analyzeCmd(backend wizard.Backend, req workassist.AnalyzeRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := backend.Analyze(ctx, req)
		return analysisDoneMsg{resp: resp, err: err}
	}
}

// saveCmd submits the project and, on success, records it in the local
// history. A history failure does not fail the save.
func saveCmd(backend wizard.Backend, hist History, req workassist.SaveProjectRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := backend.SaveProject(ctx, req)
		msg := saveDoneMsg{resp: resp, err: err}
		if err != nil || hist == nil {
			return msg
		}
		msg.historyErr = hist.Record(ctx, history.Entry{
			ProjectID:   resp.ProjectID,
			Name:        req.ProjectName,
			Mode:        req.Mode,
			URL:         backend.ProjectURL(resp.ProjectID),
			Parameters:  len(req.Parameters),
			TemplateRef: req.TemplateFileID,
			CreatedAt:   time.Now(),
		})
		return msg
	}
}

func loadHistoryCmd(hist History) tea.Cmd {
	if hist == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := hist.Recent(ctx, recentProjects)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// scanFilesCmd lists uploadable files under root for the browser.
func scanFilesCmd(root string) tea.Cmd {
	return func() tea.Msg {
		files, truncated, err := scanFiles(root)
		return filesScannedMsg{root: root, files: files, truncated: truncated, err: err}
	}
}

func scanFiles(root string) ([]string, bool, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are skipped, not fatal.
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return fs.SkipDir
			}
			return nil
		}
		// Office lock files
		if strings.HasPrefix(name, "~$") || !wizard.AllowedFile(name) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		files = append(files, rel)
		if len(files) >= maxBrowseFiles {
			return errScanLimit
		}
		return nil
	})
	truncated := errors.Is(err, errScanLimit)
	if truncated {
		err = nil
	}
	sort.Strings(files)
	return files, truncated, err
}
