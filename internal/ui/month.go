package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritmoapp/ritmo/internal/view"
)

func (a *App) monthCmd() *cobra.Command {
	var (
		date string
		year bool
	)

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show a month overview",
		Long: `Show one line per day of the month with task counts. --year shows
a twelve-line yearly summary instead.`,
		Example: `  ritmo month
  ritmo month --date=2026-10-01
  ritmo month --year`,
		RunE: func(_ *cobra.Command, _ []string) error {
			day, err := parseDateArg(date, a.svc.Now())
			if err != nil {
				return err
			}

			if year {
				fmt.Println(formatHeader(fmt.Sprintf("%d", day.Year())))
				for _, m := range view.YearOf(a.svc.Store(), day) {
					if m.Total == 0 {
						fmt.Printf("  %-10s %s\n", m.Month, formatMuted("–"))
						continue
					}
					fmt.Printf("  %-10s %s\n", m.Month,
						formatStats(fmt.Sprintf("%d/%d done", m.Completed, m.Total)))
				}
				return nil
			}

			fmt.Println(formatHeader(day.Format("January 2006")))
			for _, d := range view.MonthOf(a.svc.Store(), day) {
				s := d.Stats()
				if s.Total == 0 {
					continue
				}
				fmt.Printf("  %s  %d tasks, %d done, %s planned\n",
					d.Date.Format("Mon 02"), s.Total, s.Completed, FormatDuration(s.MinutesPlanned))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date inside the month (default: today)")
	cmd.Flags().BoolVar(&year, "year", false, "Show the yearly summary instead")

	return cmd
}
