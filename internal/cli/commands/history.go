package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nightrabbit666/workassist/internal/history"
	"github.com/nightrabbit666/workassist/internal/wizard"
)

// HistoryCmd lists recently created projects.
func HistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently created projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := LoadEnv(cmd)
			if err != nil {
				return err
			}
			store, err := history.Open(env.Config.HistoryPath())
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects yet")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d params\t%s\t%s\n",
					e.ProjectID, e.Name, wizard.ParseMode(e.Mode).Label(), e.Parameters, humanize.Time(e.CreatedAt), e.URL)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of projects to show")
	return cmd
}
