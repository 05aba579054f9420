package cli

import (
	"github.com/spf13/cobra"

	"github.com/conorfennell/examprep/internal/config"
)

// NewRootCommand creates the root command for the examprep CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "examprep",
		Short:         "Practise previous year exam papers",
		Long:          "Import question/answer pairs from exam PDFs and quiz yourself on them by subject.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewImportCommand())
	cmd.AddCommand(NewSubjectsCommand())
	cmd.AddCommand(NewQuizCommand())
	cmd.AddCommand(NewSyncCommand())

	return cmd
}
