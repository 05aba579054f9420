package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conorfennell/examprep/internal/session"
)

// NewImportCommand creates the import command for a single PDF.
func NewImportCommand() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "import <file.pdf>",
		Short: "Extract questions from a PDF and save them under a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc := session.Document{Name: filepath.Base(args[0]), Data: data}
			res, err := a.ctrl.Import(cmd.Context(), doc, subject)
			if err != nil {
				return err
			}
			printImportResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject name for this PDF")
	return cmd
}

func printImportResult(cmd *cobra.Command, res session.ImportResult) {
	out := cmd.OutOrStdout()
	switch res.Status {
	case session.Empty:
		fmt.Fprintln(out, "No questions found in the uploaded PDF.")
	case session.Saved:
		fmt.Fprintf(out, "PDF successfully processed. %d questions extracted.\n", res.Extracted)
		fmt.Fprintln(out, "Questions have been saved to the database. You can now take a test.")
	}
}
