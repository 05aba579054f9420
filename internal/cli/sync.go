package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/examprep/internal/ingest"
)

// NewSyncCommand creates the sync command, which imports every PDF under a
// directory or git repository.
func NewSyncCommand() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "sync <dir|git-url>",
		Short: "Import every PDF under a directory or git repository",
		Long: "Import every PDF under a directory or git repository. Without --subject each PDF is\n" +
			"filed under the name of the directory that contains it. Re-running appends duplicates.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			report, err := ingest.ImportSource(cmd.Context(), a.ctrl, a.log, args[0], a.cfg.Repos, subject)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d questions from %d PDFs (%d without questions), %d errors.\n",
				report.Questions, report.Files, report.Empty, len(report.Errors))
			for _, e := range report.Errors {
				fmt.Fprintf(out, "- %s\n", e)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject for every imported PDF")
	return cmd
}
