package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conorfennell/examprep/internal/quiz"
)

// NewQuizCommand creates the quiz command, an interactive terminal test.
func NewQuizCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz <subject>",
		Short: "Take a shuffled test on a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			run, err := a.ctrl.StartQuiz(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return play(run, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// play drives run to completion, reading one answer per line from in.
// Only the line terminator is stripped from an answer.
func play(run *quiz.Run, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		p, ok := run.Current()
		if !ok {
			break
		}
		fmt.Fprintf(out, "Q%d: %s\n", p.Number, p.Question)
		fmt.Fprintf(out, "Your Answer for Q%d: ", p.Number)

		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				return fmt.Errorf("input ended before question %d of %d", p.Number, p.Total)
			}
			return err
		}
		answer := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		fb, err := run.Submit(answer)
		if err != nil {
			return err
		}
		if fb.Correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Wrong! The correct answer is: %s\n", fb.Expected)
		}
		fmt.Fprintln(out, "---")
	}
	fmt.Fprintf(out, "Your final score: %s\n", run.Score())
	return nil
}
