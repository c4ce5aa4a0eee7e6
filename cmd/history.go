package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/abhisek/histquiz/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished quiz sessions",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum sessions to list (0 = all)")
	historyCmd.Flags().Duration("since", 0, "Only sessions finished within this duration, e.g. 168h")
}

func runHistory(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmdContext(cmd)
	limit, _ := cmd.Flags().GetInt("limit")
	since, _ := cmd.Flags().GetDuration("since")

	opts := store.QueryOpts{Limit: limit}
	if since > 0 {
		opts.From = time.Now().Add(-since)
	}

	repo := d.store.SessionRepo()
	recs, err := repo.ListSessions(ctx, opts)
	if err != nil {
		return err
	}
	stats, err := repo.Stats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d sessions, %d passed, %.0f%% accuracy\n\n",
		stats.Sessions, stats.Passed, stats.Accuracy()*100)
	if len(recs) == 0 {
		fmt.Fprintln(out, "No sessions yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FINISHED\tSCORE\tDIFFICULTY\tTYPE\tRESULT")
	for _, r := range recs {
		result := "fail"
		if r.Passed {
			result = "pass"
		}
		diff := r.Requested.Difficulty.String()
		if r.Degraded {
			diff += " -> " + r.UsedDifficulty.String()
		}
		fmt.Fprintf(tw, "%s\t%d/%d\t%s\t%s\t%s\n",
			r.FinishedAt.Local().Format("2006-01-02 15:04"), r.Correct, r.Total,
			diff, r.Requested.Type.Label(), result)
	}
	return tw.Flush()
}
