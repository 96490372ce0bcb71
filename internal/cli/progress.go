package cli

import (
	"fmt"
	"strconv"

	"chordtrainer/internal/core/model"

	"github.com/spf13/cobra"
)

func newProgressCommand(flags *globalFlags, opts Options) *cobra.Command {
	var (
		sortBy    string
		ascending bool
		limit     int
	)

	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Show logged practice sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := model.ParseSortKey(sortBy)
			if !ok {
				return fmt.Errorf("unknown sort column %q: use start, end or duration", sortBy)
			}

			env, err := flags.environment(cmd, opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			records, err := env.Progress.SortedView(key, !ascending)
			if err != nil {
				return err
			}
			summary := model.Summarize(records)

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No sessions logged in %s\n", env.Progress.Path())
				return nil
			}
			if limit > 0 && limit < len(records) {
				records = records[:limit]
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					model.FormatTimestamp(record.Start),
					model.FormatTimestamp(record.End),
					strconv.Itoa(record.Duration),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Session Start", "Session End", "Seconds"}, rows))
			fmt.Fprintf(out, "Sessions: %d  Total: %s  Average: %s\n",
				summary.Count, formatSeconds(summary.Total), formatSeconds(summary.Average))
			return nil
		},
	}

	progressCmd.Flags().StringVar(&sortBy, "sort", string(model.SortByStart), "sort column: start, end or duration")
	progressCmd.Flags().BoolVar(&ascending, "asc", false, "sort ascending instead of newest or longest first")
	progressCmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n sessions")
	return progressCmd
}

func formatSeconds(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes, rest := seconds/60, seconds%60
	if minutes < 60 {
		return fmt.Sprintf("%dm%02ds", minutes, rest)
	}
	return fmt.Sprintf("%dh%02dm%02ds", minutes/60, minutes%60, rest)
}
