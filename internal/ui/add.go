package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/sched"
	"github.com/ritmoapp/ritmo/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		start       string
		duration    int
		category    string
		recurring   string
		goalID      string
		accType     string
		accPartner  string
		accCheckIn  string
		force       bool
		fromTpl     string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task to a day's slot grid.

If the requested slot is occupied the task is not created; instead the
overlapping tasks and suggested resolutions are printed. Use --force to
schedule it anyway.

Example:
  ritmo add "Write documentation" --date=tomorrow --time=09:00 --duration=60 --category=work`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			day, err := parseDateArg(date, a.svc.Now())
			if err != nil {
				return err
			}

			if fromTpl != "" {
				return a.addFromTemplate(ctx, fromTpl, day, start, force)
			}
			if len(args) == 0 {
				return fmt.Errorf("a title is required unless --template is given")
			}

			var acc *task.Accountability
			if accType != "" {
				acc = &task.Accountability{
					Type:        task.AccountabilityType(accType),
					Partner:     accPartner,
					CheckInTime: accCheckIn,
				}
			}

			t, res, err := a.svc.Create(ctx, sched.CreateSpec{
				Title:           args[0],
				Category:        task.Category(category),
				Date:            dateutil.FormatDate(day),
				Time:            start,
				DurationMinutes: duration,
				Accountability:  acc,
				Recurring:       recurring,
				GoalID:          goalID,
				Force:           force,
			})
			if err != nil {
				return err
			}
			if t == nil {
				PrintConflict(res)
				return nil
			}

			fmt.Printf("Created task #%d: %s %s %s-%s\n",
				t.ID, t.Title, dateutil.FormatDate(t.Date), t.Time, t.EndTime())
			if res != nil && res.HasConflict() {
				fmt.Println(formatWarn("Scheduled over existing tasks (--force)."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD or relative, default: today)")
	cmd.Flags().StringVar(&start, "time", "", "Start time (HH:MM, slot-aligned, required)")
	cmd.Flags().IntVar(&duration, "duration", 30, "Duration in minutes")
	cmd.Flags().StringVar(&category, "category", "general", "Category: work, wellness, fitness, growth or general")
	cmd.Flags().StringVar(&recurring, "recurring", "", "Recurrence label (e.g. daily, weekly)")
	cmd.Flags().StringVar(&goalID, "goal", "", "Goal this task contributes to")
	cmd.Flags().StringVar(&accType, "accountability", "", "Accountability type: ai, partner, team or public")
	cmd.Flags().StringVar(&accPartner, "partner", "", "Accountability partner name")
	cmd.Flags().StringVar(&accCheckIn, "check-in", "", "Accountability check-in time (HH:MM)")
	cmd.Flags().BoolVar(&force, "force", false, "Schedule even if the slot is occupied")
	cmd.Flags().StringVar(&fromTpl, "template", "", "Create from a named template")

	return cmd
}

func (a *App) addFromTemplate(ctx context.Context, name string, day time.Time, start string, force bool) error {
	tpls, err := a.repo.ListTemplates(ctx)
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}
	var tpl *task.Template
	for _, candidate := range tpls {
		if candidate.Name == name {
			tpl = candidate
			break
		}
	}
	if tpl == nil {
		return fmt.Errorf("template %q not found", name)
	}

	t, res, err := a.svc.CreateFromTemplate(ctx, tpl, dateutil.FormatDate(day), start, force)
	if err != nil {
		return err
	}
	if t == nil {
		PrintConflict(res)
		return nil
	}
	fmt.Printf("Created task #%d from template %q: %s %s-%s\n",
		t.ID, tpl.Name, t.Title, t.Time, t.EndTime())
	return nil
}
