package cmd

import (
	"fmt"

	sessionscreen "github.com/abhisek/histquiz/internal/screens/session"
	"github.com/abhisek/histquiz/internal/settings"
	"github.com/abhisek/histquiz/internal/trivia"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Fetch a batch of questions and print them (no TUI)",
	Long: `Fetch questions through the same fallback cascade the quiz uses and print
them. Settings come from the store unless overridden by flags; nothing is
saved and no score is recorded.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("amount", 0, "Number of questions (1-20)")
	previewCmd.Flags().String("difficulty", "", "easy, medium, hard or any")
	previewCmd.Flags().String("type", "", "multiple or boolean")
	previewCmd.Flags().Bool("answers", false, "Mark the correct answers")
}

func runPreview(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer d.Close()

	req := d.settings.Current().Request()
	if cmd.Flags().Changed("amount") {
		n, _ := cmd.Flags().GetInt("amount")
		req.Amount = settings.ClampAmount(n)
	}
	if cmd.Flags().Changed("difficulty") {
		v, _ := cmd.Flags().GetString("difficulty")
		if req.Difficulty, err = trivia.ParseDifficulty(v); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("type") {
		v, _ := cmd.Flags().GetString("type")
		if req.Type, err = trivia.ParseQuestionType(v); err != nil {
			return err
		}
	}
	showAnswers, _ := cmd.Flags().GetBool("answers")

	res, err := d.newLoader().Load(cmdContext(cmd), req)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}

	out := cmd.OutOrStdout()
	if res.Empty() {
		fmt.Fprintln(out, "No questions available.")
		return nil
	}
	if notice := sessionscreen.DegradedNotice(res, len(res.Questions)); notice != "" {
		fmt.Fprintln(out, notice)
		fmt.Fprintln(out)
	}

	for i, q := range res.Questions {
		fmt.Fprintf(out, "%d. %s\n", i+1, q.Text())
		for j, a := range q.Answers() {
			mark := " "
			if showAnswers && q.IsCorrect(a) {
				mark = "*"
			}
			fmt.Fprintf(out, "  %s %d) %s\n", mark, j+1, a)
		}
		fmt.Fprintln(out)
	}
	return nil
}
