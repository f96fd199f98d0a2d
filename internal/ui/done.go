package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [id...]",
		Short: "Mark tasks as completed",
		Long: `Mark one or more tasks as completed. Completing an already
completed task is a no-op and keeps the original completion time.

Example:
  ritmo done 12 13`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			ctx := context.Background()
			for _, id := range ids {
				t, err := a.svc.Complete(ctx, id)
				if err != nil {
					return err
				}
				fmt.Printf("Completed task #%d: %s\n", t.ID, t.Title)
			}
			return nil
		},
	}
}
