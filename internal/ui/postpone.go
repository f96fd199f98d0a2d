package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) postponeCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "postpone [id...]",
		Short: "Push tasks forward by whole days",
		Long: `Shift one or more tasks by a number of days, keeping their start
times. This is a bulk operation: each task is moved independently, ids
that do not exist are skipped, and no conflict check is performed on
the target days.`,
		Example: `  ritmo postpone 12 --days=1
  ritmo postpone 12 13 14 --days=7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			n, err := a.svc.BulkReschedule(context.Background(), ids, days)
			if err != nil {
				return err
			}

			fmt.Printf("Postponed %d tasks by %d day(s)\n", n, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 1, "Number of days to shift (negative moves earlier)")

	return cmd
}
