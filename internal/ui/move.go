package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritmoapp/ritmo/internal/dateutil"
)

func (a *App) moveCmd() *cobra.Command {
	var (
		date  string
		start string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move a task to a different slot",
		Long: `Move a task to a new date and/or start time. Duration is kept.

Omitting --date keeps the task on its current day; omitting --time keeps
its current start. The target slot goes through the same conflict check
as a new task.

Example:
  ritmo move 12 --date=tomorrow --time=14:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			newDate := ""
			if date != "" {
				day, err := parseDateArg(date, a.svc.Now())
				if err != nil {
					return err
				}
				newDate = dateutil.FormatDate(day)
			}

			t, res, err := a.svc.Move(context.Background(), id, newDate, start, force)
			if err != nil {
				return err
			}
			if t == nil {
				PrintConflict(res)
				return nil
			}

			fmt.Printf("Moved task #%d to %s %s-%s\n",
				t.ID, dateutil.FormatDate(t.Date), t.Time, t.EndTime())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD or relative)")
	cmd.Flags().StringVar(&start, "time", "", "New start time (HH:MM)")
	cmd.Flags().BoolVar(&force, "force", false, "Move even if the slot is occupied")

	return cmd
}
