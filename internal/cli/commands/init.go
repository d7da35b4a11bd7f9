package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nightrabbit666/workassist/internal/config"
)

// InitCmd writes the default configuration into the current directory.
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create .workassist/config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := os.Getwd()
			if err != nil {
				return err
			}
			created, err := config.EnsureInitialized(root)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.ProjectConfigPath(root))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", config.ProjectConfigPath(root))
			}
			return nil
		},
	}
}
