package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/histquiz/internal/settings"
	"github.com/abhisek/histquiz/internal/trivia"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change quiz settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved quiz settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer d.Close()

		printSettings(cmd.OutOrStdout(), d.settings.Current())
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change quiz settings",
	Long: `Change one or more quiz settings. Flags that are not given keep their
saved value. The amount is clamped to 1-20; 0 means the default of 10.`,
	RunE: runSettingsSet,
}

func init() {
	settingsSetCmd.Flags().Int("amount", 0, "Number of questions (1-20)")
	settingsSetCmd.Flags().String("difficulty", "", "easy, medium, hard or any")
	settingsSetCmd.Flags().String("type", "", "multiple or boolean")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer d.Close()

	next := d.settings.Current()
	if cmd.Flags().Changed("amount") {
		n, _ := cmd.Flags().GetInt("amount")
		next.Amount = settings.ClampAmount(n)
	}
	if cmd.Flags().Changed("difficulty") {
		v, _ := cmd.Flags().GetString("difficulty")
		if next.Difficulty, err = trivia.ParseDifficulty(v); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("type") {
		v, _ := cmd.Flags().GetString("type")
		if next.Type, err = trivia.ParseQuestionType(v); err != nil {
			return err
		}
	}

	if err := d.settings.Save(cmdContext(cmd), next); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Settings saved")
	printSettings(cmd.OutOrStdout(), next)
	return nil
}

func printSettings(w io.Writer, s settings.Settings) {
	fmt.Fprintf(w, "Amount:     %d\n", s.Amount)
	fmt.Fprintf(w, "Difficulty: %s\n", s.Difficulty)
	fmt.Fprintf(w, "Type:       %s\n", s.Type.Label())
}
