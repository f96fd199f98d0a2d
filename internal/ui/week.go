package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/view"
)

func (a *App) weekCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the week's schedule",
		Long: `Show the Monday-to-Sunday week containing a date, one section per
day, with a weekly completion summary at the bottom.`,
		Example: `  ritmo week
  ritmo week --date=2026-09-07`,
		RunE: func(_ *cobra.Command, _ []string) error {
			day, err := parseDateArg(date, a.svc.Now())
			if err != nil {
				return err
			}

			w := view.WeekOf(a.svc.Store(), day)
			fmt.Println(formatHeader(fmt.Sprintf("Week %s – %s",
				dateutil.FormatDate(w.Start), dateutil.FormatDate(w.End()))))

			var total view.Stats
			for _, d := range w.Days {
				fmt.Printf("\n%s\n", formatHeader(d.Date.Format("Monday 02")))
				if len(d.Tasks) == 0 {
					fmt.Println(formatMuted("  (nothing scheduled)"))
					continue
				}
				for _, t := range d.Tasks {
					PrintTaskRow(t)
				}
				s := d.Stats()
				total.Total += s.Total
				total.Completed += s.Completed
				total.MinutesPlanned += s.MinutesPlanned
			}

			fmt.Printf("\n%s\n", separator())
			PrintDayStats(total)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date inside the week (default: today)")

	return cmd
}
