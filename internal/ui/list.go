package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/task"
	"github.com/ritmoapp/ritmo/internal/view"
)

func (a *App) listCmd() *cobra.Command {
	var (
		category string
		pending  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks grouped by date",
		Long: `List every scheduled task, grouped by date and ordered by start
time within each day.`,
		Example: `  ritmo list
  ritmo list --category=work
  ritmo list --pending`,
		RunE: func(_ *cobra.Command, _ []string) error {
			groups := view.List(a.svc.Store())
			if len(groups) == 0 {
				fmt.Println("No tasks scheduled.")
				return nil
			}

			printed := 0
			for _, g := range groups {
				var tasks []*task.Task
				for _, t := range g.Tasks {
					if category != "" && t.Category != task.Category(category) {
						continue
					}
					if pending && t.Completed {
						continue
					}
					tasks = append(tasks, t)
				}
				if len(tasks) == 0 {
					continue
				}

				if printed > 0 {
					fmt.Println()
				}
				fmt.Println(formatHeader(fmt.Sprintf("=== %s ===", dateutil.FormatDate(g.Date))))
				for _, t := range tasks {
					PrintTaskRow(t)
				}
				printed++
			}

			if printed == 0 {
				fmt.Println("No tasks match the filter.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show tasks in this category")
	cmd.Flags().BoolVar(&pending, "pending", false, "Only show incomplete tasks")

	return cmd
}
