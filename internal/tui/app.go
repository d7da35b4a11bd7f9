// Package tui is the terminal front end of the project-setup wizard.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nightrabbit666/workassist/internal/wizard"
	pkgtui "github.com/nightrabbit666/workassist/pkg/tui"
)

// Options configures the App.
type Options struct {
	Session  *wizard.Session
	History  History
	Logger   *slog.Logger
	Timeout  time.Duration
	Root     string // where the file browser starts
	Mode     wizard.Mode
	Features wizard.Features
}

// App is the root model. It owns the wizard session: step views raise
// request messages, and only App starts backend calls and applies their
// results.
type App struct {
	session *wizard.Session
	history History
	logger  *slog.Logger
	timeout time.Duration

	keys    pkgtui.WizardKeys
	help    pkgtui.HelpOverlay
	spinner spinner.Model

	upload *UploadView
	review *ReviewView
	done   *DoneView
	shown  wizard.Step

	status    string
	statusErr bool
	width     int
	height    int
}

// NewApp creates the wizard UI.
func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	root := opts.Root
	if root == "" {
		root = "."
	}
	return &App{
		session: opts.Session,
		history: opts.History,
		logger:  logger,
		timeout: timeout,
		keys:    pkgtui.NewWizardKeys(),
		help:    pkgtui.NewHelpOverlay(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		upload:  NewUploadView(opts.Session, root),
		review:  NewReviewView(opts.Session, opts.Mode, opts.Features),
		done:    NewDoneView(opts.Session),
		shown:   opts.Session.Step(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.current().Focus()
}

func (a *App) current() pkgtui.View {
	switch a.shown {
	case wizard.StepReview:
		return a.review
	case wizard.StepDone:
		return a.done
	default:
		return a.upload
	}
}

// syncStep switches views when the navigator moved.
func (a *App) syncStep() tea.Cmd {
	step := a.session.Step()
	if step == a.shown {
		return nil
	}
	a.current().Blur()
	a.shown = step
	a.logger.Debug("step changed", "step", step.ID())
	cmd := a.current().Focus()
	if step == wizard.StepDone {
		return tea.Batch(cmd, loadHistoryCmd(a.history))
	}
	return cmd
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) layout() {
	bodyHeight := max(5, a.height-6)
	a.upload.SetSize(a.width-6, bodyHeight)
	a.review.SetSize(a.width-6, bodyHeight)
	a.done.SetSize(a.width-6, bodyHeight)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		if cmd := pkgtui.HandleCommon(msg, a.keys); cmd != nil {
			return a, cmd
		}
		if a.help.Visible {
			if msg.Type == tea.KeyEsc {
				a.help.Toggle()
			}
			return a, nil
		}

	case pkgtui.ToggleHelpMsg:
		a.help.Toggle()
		return a, nil

	case StatusMsg:
		a.setStatus(msg.Text, msg.Error)
		return a, nil

	case SubmitFileMsg:
		return a, a.submitFile(msg.Key, msg.Path)

	case AnalyzeRequestedMsg:
		return a, a.startAnalysis()

	case BackRequestedMsg:
		if err := a.session.Back(); err != nil {
			a.setStatus(wizard.UserMessage("Back", err), true)
			return a, nil
		}
		a.setStatus("", false)
		return a, a.syncStep()

	case SaveRequestedMsg:
		return a, a.startSave(msg.Draft)

	case uploadDoneMsg:
		a.session.FinishUpload(msg.ticket, msg.result, msg.err)
		return a, nil

	case analysisDoneMsg:
		if err := a.session.FinishAnalysis(msg.resp, msg.err); err != nil {
			a.setStatus(wizard.UserMessage("Analysis", err), true)
		} else {
			a.setStatus("Analysis complete", false)
		}
		a.upload.SetIndicator("")
		return a, a.syncStep()

	case saveDoneMsg:
		if msg.historyErr != nil {
			a.logger.Warn("history record failed", "error", msg.historyErr)
		}
		if err := a.session.FinishSave(msg.resp, msg.err); err != nil {
			a.setStatus(wizard.UserMessage("Save", err), true)
			return a, nil
		}
		a.setStatus("", false)
		return a, a.syncStep()

	case historyLoadedMsg:
		if msg.err != nil {
			a.logger.Warn("history load failed", "error", msg.err)
		}
		a.done.SetHistory(msg.entries, msg.err)
		return a, nil

	case spinner.TickMsg:
		if !a.session.Analysis().Busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.upload.SetIndicator(a.spinner.View())
		return a, cmd
	}

	view, cmd := a.current().Update(msg)
	switch v := view.(type) {
	case *UploadView:
		a.upload = v
	case *ReviewView:
		a.review = v
	case *DoneView:
		a.done = v
	}
	return a, cmd
}

func (a *App) submitFile(key wizard.SlotKey, path string) tea.Cmd {
	ticket, _, err := a.session.PrepareUpload(key, path)
	if err != nil {
		a.upload.SetNote(key, wizard.UserMessage("Upload", err))
		return nil
	}
	a.upload.SetNote(key, "")
	return uploadCmd(a.session.Backend(), ticket, a.timeout)
}

func (a *App) startAnalysis() tea.Cmd {
	req, err := a.session.PrepareAnalysis()
	if err != nil {
		a.setStatus(wizard.UserMessage("Analysis", err), true)
		return nil
	}
	a.setStatus("Analyzing documents, this can take a minute...", false)
	a.upload.SetIndicator(a.spinner.View())
	return tea.Batch(analyzeCmd(a.session.Backend(), req, a.timeout), a.spinner.Tick)
}

func (a *App) startSave(draft wizard.ProjectDraft) tea.Cmd {
	req, err := a.session.PrepareSave(draft)
	if err != nil {
		a.setStatus(wizard.UserMessage("Save", err), true)
		return nil
	}
	a.setStatus("Saving project...", false)
	return saveCmd(a.session.Backend(), a.history, req, a.timeout)
}

// View implements tea.Model
func (a *App) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		pkgtui.TitleStyle.Render("workassist"),
		pkgtui.LabelStyle.Render("  new project  "),
		renderStepBar(a.session.Step()),
	)

	var body string
	if a.help.Visible {
		var extras []pkgtui.HelpBinding
		if p, ok := a.current().(pkgtui.FullHelpProvider); ok {
			extras = p.FullHelp()
		}
		body = a.help.Render(a.keys, extras, a.width)
	} else {
		body = a.current().View()
	}

	var status string
	if a.status != "" {
		if a.statusErr {
			status = pkgtui.StatusError.Render(a.status)
		} else {
			status = pkgtui.StatusIdle.Render(a.status)
		}
	}

	footer := pkgtui.FooterStyle.Render(a.current().ShortHelp() + "  f1 help  ctrl+c quit")

	return strings.Join([]string{
		pkgtui.ContentStyle.Render(header + "\n\n" + body),
		pkgtui.FooterStyle.Render(status),
		footer,
	}, "\n")
}
