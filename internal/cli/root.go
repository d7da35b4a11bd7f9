package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nightrabbit666/workassist/internal/cli/commands"
	"github.com/nightrabbit666/workassist/internal/config"
	"github.com/nightrabbit666/workassist/internal/history"
	"github.com/nightrabbit666/workassist/internal/tui"
	"github.com/nightrabbit666/workassist/internal/wizard"
)

func Execute() error {
	return NewRoot().Execute()
}

var runTUI = func(app *tui.App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "workassist",
		Short:        "Set up document-automation projects from your templates",
		SilenceUsage: true,
		RunE:         runSetup,
	}
	root.PersistentFlags().String("url", "", "Backend base URL (overrides config and "+config.EnvURL+")")
	root.AddCommand(
		&cobra.Command{
			Use:   "setup",
			Short: "Run the interactive project wizard",
			Args:  cobra.NoArgs,
			RunE:  runSetup,
		},
		commands.InitCmd(),
		commands.AnalyzeCmd(),
		commands.SaveCmd(),
		commands.HistoryCmd(),
	)
	return root
}

// runSetup starts the wizard UI. The terminal belongs to the UI, so logs go
// to a file under the data directory.
func runSetup(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	if _, err := config.EnsureInitialized(cwd); err != nil {
		return err
	}
	env, err := commands.LoadEnv(cmd)
	if err != nil {
		return err
	}
	logFile, err := commands.OpenLogFile(env.Config.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := commands.NewLogger(logFile, env.Config.SlogLevel())
	env.Logger = logger
	env.WarnInsecure()
	logger.Info("wizard started", "base_url", env.Config.BaseURL)

	opts := tui.Options{
		Session: wizard.NewSession(env.Client(), logger),
		Logger:  logger,
		Timeout: env.Timeout(),
		Root:    cwd,
		Mode:    wizard.ParseMode(env.Config.DefaultMode),
		Features: wizard.Features{
			Daily:   env.Config.Features.Daily,
			Monthly: env.Config.Features.Monthly,
			Debug:   env.Config.Features.Debug,
		},
	}
	if store, err := history.Open(env.Config.HistoryPath()); err != nil {
		logger.Warn("history unavailable", "error", err)
	} else {
		defer store.Close()
		opts.History = store
	}
	return runTUI(tui.NewApp(opts))
}
