package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var highscoreCmd = &cobra.Command{
	Use:   "highscore",
	Short: "Show or reset the high score",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer d.Close()

		best, err := d.ledger.Get(cmdContext(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "High score: %d\n", best)
		return nil
	},
}

var highscoreResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the high score to zero",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.ledger.Reset(cmdContext(cmd)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "High score reset")
		return nil
	},
}

func init() {
	highscoreCmd.AddCommand(highscoreResetCmd)
}
