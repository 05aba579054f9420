package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSubjectsCommand creates the subjects command.
func NewSubjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List subjects with stored questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			subjects, err := a.ctrl.Subjects(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range subjects {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", s.Name, s.Questions)
			}
			return nil
		},
	}
}
