package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/nightrabbit666/workassist/internal/history"
	"github.com/nightrabbit666/workassist/internal/wizard"
)

type saveOptions struct {
	name string
	desc string
	mode string
}

// SaveCmd submits a draft written by `analyze` as a new project.
func SaveCmd() *cobra.Command {
	var opts saveOptions
	cmd := &cobra.Command{
		Use:   "save <draft.yaml>",
		Short: "Create a project from an analysis draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := LoadEnv(cmd)
			if err != nil {
				return err
			}
			draft, err := ReadDraftFile(args[0])
			if err != nil {
				return err
			}
			s := wizard.NewSession(env.Client(), env.Logger)
			return saveRun(cmd.Context(), env, s, draft, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.name, "name", "", "Override the project name")
	cmd.Flags().StringVar(&opts.desc, "desc", "", "Override the project description")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Override the mode (one_shot or monthly)")
	return cmd
}

func saveRun(ctx context.Context, env Env, s *wizard.Session, draft DraftFile, opts saveOptions, out io.Writer) error {
	if err := draft.Resume(s); err != nil {
		return fmt.Errorf("loading draft: %w", err)
	}
	for _, key := range draft.SlotKeys() {
		f := draft.Files[key]
		fmt.Fprintf(out, "%s: %s (%s)\n", key.Label(), f.Name, wizard.FormatBytes(f.Size))
	}
	project := draft.ProjectDraft()
	if opts.name != "" {
		project.Name = opts.name
	}
	if opts.desc != "" {
		project.Description = opts.desc
	}
	if opts.mode != "" {
		project.Mode = wizard.ParseMode(opts.mode)
	}

	ctxSave, cancel := context.WithTimeout(ctx, env.Timeout())
	defer cancel()
	if err := s.Save(ctxSave, project); err != nil {
		return errors.New(wizard.UserMessage("save", err))
	}

	nav := s.Navigator()
	if err := recordHistory(ctx, env, history.Entry{
		ProjectID:   nav.ProjectID(),
		Name:        project.Name,
		Mode:        string(project.Mode),
		URL:         nav.Locator(),
		Parameters:  s.Params().Len(),
		TemplateRef: draft.Files[wizard.SlotTemplate].FileID,
		CreatedAt:   time.Now(),
	}); err != nil {
		env.Logger.Warn("history record failed", "error", err)
	}

	fmt.Fprintf(out, "Project created: %s\n%s\n", nav.ProjectID(), nav.Locator())
	return nil
}

func recordHistory(ctx context.Context, env Env, e history.Entry) error {
	store, err := history.Open(env.Config.HistoryPath())
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, e)
}
