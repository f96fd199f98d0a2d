package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/task"
)

func (a *App) editCmd() *cobra.Command {
	var (
		title      string
		date       string
		start      string
		duration   int
		category   string
		goalID     string
		accType    string
		accPartner string
		accCheckIn string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "edit [id...]",
		Short: "Edit task fields",
		Long: `Edit one or more fields of an existing task. Only the flags you
pass are changed. Edits that affect the task's placement (date, time,
duration) re-run the conflict check; cosmetic edits do not.

With several ids the same patch is applied to each as a bulk edit:
missing ids are skipped and the conflict check is bypassed.

Example:
  ritmo edit 12 --title="Review PRs" --duration=45
  ritmo edit 12 13 14 --category=growth`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			var patch task.Patch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("date") {
				day, err := parseDateArg(date, a.svc.Now())
				if err != nil {
					return err
				}
				patch.Date = &day
			}
			if cmd.Flags().Changed("time") {
				patch.Time = &start
			}
			if cmd.Flags().Changed("duration") {
				patch.DurationMinutes = &duration
			}
			if cmd.Flags().Changed("category") {
				c := task.Category(category)
				patch.Category = &c
			}
			if cmd.Flags().Changed("goal") {
				patch.GoalID = &goalID
			}
			if cmd.Flags().Changed("accountability") {
				var acc *task.Accountability
				if accType != "none" {
					acc = &task.Accountability{
						Type:        task.AccountabilityType(accType),
						Partner:     accPartner,
						CheckInTime: accCheckIn,
					}
				}
				patch.Accountability = &acc
			}

			if len(ids) > 1 {
				n, err := a.svc.BulkEdit(context.Background(), ids, patch)
				if err != nil {
					return err
				}
				fmt.Printf("Updated %d tasks\n", n)
				return nil
			}

			t, res, err := a.svc.Edit(context.Background(), ids[0], patch, force)
			if err != nil {
				return err
			}
			if t == nil {
				PrintConflict(res)
				return nil
			}

			fmt.Printf("Updated task #%d: %s %s %s-%s\n",
				t.ID, t.Title, dateutil.FormatDate(t.Date), t.Time, t.EndTime())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD or relative)")
	cmd.Flags().StringVar(&start, "time", "", "New start time (HH:MM)")
	cmd.Flags().IntVar(&duration, "duration", 0, "New duration in minutes")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVar(&goalID, "goal", "", "New goal link")
	cmd.Flags().StringVar(&accType, "accountability", "", "Accountability type (ai, partner, team, public) or \"none\" to clear")
	cmd.Flags().StringVar(&accPartner, "partner", "", "Accountability partner name")
	cmd.Flags().StringVar(&accCheckIn, "check-in", "", "Accountability check-in time (HH:MM)")
	cmd.Flags().BoolVar(&force, "force", false, "Apply even if the new slot is occupied")

	return cmd
}
