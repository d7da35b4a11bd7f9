package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/nightrabbit666/workassist/internal/wizard"
)

type analyzeOptions struct {
	files  map[wizard.SlotKey]string
	output string
	name   string
	desc   string
}

// AnalyzeCmd uploads documents, runs the analysis and writes a draft that
// `save` can submit.
func AnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{files: map[wizard.SlotKey]string{}}
	var template, reference, spreadsheet string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Upload documents and extract template parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := LoadEnv(cmd)
			if err != nil {
				return err
			}
			for key, path := range map[wizard.SlotKey]string{
				wizard.SlotTemplate:    template,
				wizard.SlotReference:   reference,
				wizard.SlotSpreadsheet: spreadsheet,
			} {
				if path != "" {
					opts.files[key] = path
				}
			}
			return analyzeRun(cmd.Context(), env, wizard.NewSession(env.Client(), env.Logger), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "Template document (required)")
	cmd.Flags().StringVar(&reference, "reference", "", "Previously filled document")
	cmd.Flags().StringVar(&spreadsheet, "spreadsheet", "", "Source spreadsheet")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "draft.yaml", "Draft file to write")
	cmd.Flags().StringVar(&opts.name, "name", "", "Project name to store in the draft")
	cmd.Flags().StringVar(&opts.desc, "desc", "", "Project description to store in the draft")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func analyzeRun(ctx context.Context, env Env, s *wizard.Session, opts analyzeOptions, out io.Writer) error {
	for _, key := range wizard.AllSlotKeys() {
		path, ok := opts.files[key]
		if !ok {
			continue
		}
		ctxUpload, cancel := context.WithTimeout(ctx, env.Timeout())
		err := s.SubmitFile(ctxUpload, key, path)
		cancel()
		if err != nil {
			return fmt.Errorf("%s: %s", key.Label(), wizard.UserMessage("upload", err))
		}
		st := s.SlotStatus(key)
		fmt.Fprintf(out, "%-20s %s\n", key.Label(), st.Message)
		if st.Detail != "" {
			fmt.Fprintf(out, "%-20s %s\n", "", st.Detail)
		}
	}

	ctxAnalyze, cancel := context.WithTimeout(ctx, env.Timeout())
	defer cancel()
	if err := s.RunAnalysis(ctxAnalyze); err != nil {
		return errors.New(wizard.UserMessage("analysis", err))
	}

	view := s.Editor()
	printEditor(out, view)

	project := wizard.ProjectDraft{
		Name:        opts.name,
		Description: opts.desc,
		Mode:        wizard.ParseMode(env.Config.DefaultMode),
		Features: wizard.Features{
			Daily:   env.Config.Features.Daily,
			Monthly: env.Config.Features.Monthly,
			Debug:   env.Config.Features.Debug,
		},
	}
	draft, err := NewDraftFile(s, project)
	if err != nil {
		return err
	}
	if err := WriteDraftFile(opts.output, draft); err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}
	fmt.Fprintf(out, "\nDraft written to %s. Edit names and descriptions, then run: workassist save %s\n", opts.output, opts.output)
	return nil
}

func printEditor(out io.Writer, view wizard.EditorView) {
	if r := view.Report; r != nil {
		if u := r.TokenUsage; u != nil {
			fmt.Fprintf(out, "\nTokens: %s prompt + %s completion = %s total\n",
				humanize.Comma(int64(u.PromptTokens)), humanize.Comma(int64(u.CandidatesTokens)), humanize.Comma(int64(u.TotalTokens)))
		}
		if r.LogicSummary != "" {
			fmt.Fprintf(out, "\nAI logic summary:\n%s\n", r.LogicSummary)
		}
		if r.DiffReport != "" {
			fmt.Fprintf(out, "\nStructure comparison:\n%s\n", r.DiffReport)
		}
	}
	if view.Empty {
		fmt.Fprintln(out, "\n"+wizard.NoParametersMessage)
		return
	}
	fmt.Fprintf(out, "\n%d parameter(s):\n", len(view.Records))
	for _, rec := range view.Records {
		fmt.Fprintf(out, "%3d  %-24s %-10s %s\n", rec.Index+1, rec.Name, rec.Type,
			truncate.StringWithTail(strings.Join(strings.Fields(rec.Description), " "), 60, "…"))
	}
}
