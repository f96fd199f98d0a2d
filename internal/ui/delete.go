package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	var bulk bool

	cmd := &cobra.Command{
		Use:     "rm [id...]",
		Aliases: []string{"delete"},
		Short:   "Delete tasks",
		Long: `Delete one or more tasks by id. Deleting an id that does not
exist is silently ignored.

Example:
  ritmo rm 12
  ritmo rm 12 13 14 --bulk`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			ctx := context.Background()

			if bulk || len(ids) > 1 {
				n, err := a.svc.BulkDelete(ctx, ids)
				if err != nil {
					return err
				}
				fmt.Printf("Deleted %d tasks\n", n)
				return nil
			}

			if err := a.svc.Delete(ctx, ids[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted task #%d\n", ids[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&bulk, "bulk", false, "Delete as a bulk operation")

	return cmd
}
