package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/slot"
	"github.com/ritmoapp/ritmo/internal/view"
)

func (a *App) dayCmd() *cobra.Command {
	var (
		date      string
		showSlots bool
		copyText  bool
	)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show a single day's schedule",
		Long: `Show the schedule for one day, ordered by start time, with a
completion summary. --slots renders the full slot grid instead; when
the day is today, the current slot is marked.`,
		Example: `  ritmo day
  ritmo day --date=tomorrow
  ritmo day --slots
  ritmo day --copy`,
		RunE: func(_ *cobra.Command, _ []string) error {
			day, err := parseDateArg(date, a.svc.Now())
			if err != nil {
				return err
			}

			d := view.DayOf(a.svc.Store(), day)

			if copyText {
				text := dayText(d)
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Println("Day copied to clipboard.")
				return nil
			}

			fmt.Println(formatHeader(d.Date.Format("Monday, January 2, 2006")))
			fmt.Println(separator())

			if showSlots {
				a.printSlotGrid(d)
			} else if len(d.Tasks) == 0 {
				fmt.Println(formatMuted("  (nothing scheduled)"))
			} else {
				for _, t := range d.Tasks {
					PrintTaskRow(t)
				}
			}

			fmt.Println(separator())
			PrintDayStats(d.Stats())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to show (YYYY-MM-DD or relative, default: today)")
	cmd.Flags().BoolVar(&showSlots, "slots", false, "Render the full slot grid")
	cmd.Flags().BoolVar(&copyText, "copy", false, "Copy the day as plain text to the clipboard")

	return cmd
}

// printSlotGrid renders every grid slot with its occupant, if any. Slots
// covered by a task's tail are marked with a continuation bar.
func (a *App) printSlotGrid(d view.Day) {
	grid := a.svc.Grid()
	nowSlot, hasNow := view.NowIndicator(grid, d.Date, a.svc.Now())

	for i := 0; i < grid.Slots(); i++ {
		start := grid.SlotTime(i)
		startMin, _ := slot.ParseClock(start)

		marker := " "
		if hasNow && i == nowSlot {
			marker = formatWarn("▶")
		}

		var occupant string
		for _, t := range d.Tasks {
			if t.Start() == startMin {
				occupant = categoryColor(t.Category).Sprintf("#%d %s", t.ID, t.Title)
				break
			}
			if t.Start() < startMin && startMin < t.End() {
				occupant = categoryColor(t.Category).Sprint("│")
				break
			}
		}
		if occupant == "" {
			occupant = formatMuted("·")
		}

		fmt.Printf("%s %s  %s\n", marker, start, occupant)
	}
}

// dayText renders a day as plain text for sharing.
func dayText(d view.Day) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", dateutil.FormatDate(d.Date))
	if len(d.Tasks) == 0 {
		b.WriteString("(nothing scheduled)\n")
		return b.String()
	}
	for _, t := range d.Tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s-%s %s\n", mark, t.Time, t.EndTime(), t.Title)
	}
	s := d.Stats()
	fmt.Fprintf(&b, "%d/%d done, %s planned\n", s.Completed, s.Total, FormatDuration(s.MinutesPlanned))
	return b.String()
}
