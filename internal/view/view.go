// Package view provides read-only projections of the task store into
// day, week, month, year and list groupings for presentation. Nothing
// here mutates the store.
package view

import (
	"slices"
	"time"

	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/slot"
	"github.com/ritmoapp/ritmo/internal/task"
)

// Day holds the tasks of a single date, sorted by start time.
type Day struct {
	Date  time.Time
	Tasks []*task.Task
}

// Stats summarizes a day for display.
type Stats struct {
	Total          int
	Completed      int
	MinutesPlanned int
}

// Stats computes display counters for the day.
func (d Day) Stats() Stats {
	var s Stats
	for _, t := range d.Tasks {
		s.Total++
		s.MinutesPlanned += t.DurationMinutes
		if t.Completed {
			s.Completed++
		}
	}
	return s
}

// DayOf projects the store onto a single date.
func DayOf(store *task.Store, date time.Time) Day {
	tasks := store.ByDate(date)
	sortByStart(tasks)
	return Day{Date: dateutil.TruncateToDay(date), Tasks: tasks}
}

// Week holds Monday through Sunday of the week containing a date.
type Week struct {
	Start time.Time // Monday
	Days  [7]Day
}

// WeekOf projects the store onto the ISO week containing date.
func WeekOf(store *task.Store, date time.Time) Week {
	monday, _ := dateutil.WeekRange(date)
	w := Week{Start: monday}
	for i := 0; i < 7; i++ {
		w.Days[i] = DayOf(store, monday.AddDate(0, 0, i))
	}
	return w
}

// End returns the Sunday of the week.
func (w Week) End() time.Time {
	return w.Start.AddDate(0, 0, 6)
}

// MonthOf projects the store onto every day of the month containing date.
func MonthOf(store *task.Store, date time.Time) []Day {
	first, last := dateutil.MonthRange(date)
	days := make([]Day, 0, 31)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, DayOf(store, d))
	}
	return days
}

// MonthSummary aggregates one month for the year projection.
type MonthSummary struct {
	Month     time.Month
	Total     int
	Completed int
}

// YearOf summarizes the store per month for the year containing date.
func YearOf(store *task.Store, date time.Time) [12]MonthSummary {
	var months [12]MonthSummary
	for i := range months {
		months[i].Month = time.Month(i + 1)
	}
	for _, t := range store.All() {
		if t.Date.Year() != date.Year() {
			continue
		}
		m := &months[int(t.Date.Month())-1]
		m.Total++
		if t.Completed {
			m.Completed++
		}
	}
	return months
}

// Group is one date's worth of tasks in the flat list projection.
type Group struct {
	Date  time.Time
	Tasks []*task.Task
}

// List projects the whole store as date-ordered groups of start-ordered
// tasks.
func List(store *task.Store) []Group {
	byDate := make(map[time.Time][]*task.Task)
	for _, t := range store.All() {
		day := dateutil.TruncateToDay(t.Date)
		byDate[day] = append(byDate[day], t)
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, func(a, b time.Time) int {
		return a.Compare(b)
	})

	groups := make([]Group, 0, len(dates))
	for _, d := range dates {
		tasks := byDate[d]
		sortByStart(tasks)
		groups = append(groups, Group{Date: d, Tasks: tasks})
	}
	return groups
}

// NowIndicator returns the grid slot index of the current time when the
// displayed date is today, and false otherwise (or when now is outside
// the modeled window).
func NowIndicator(grid *slot.Grid, displayed time.Time, now time.Time) (int, bool) {
	if !dateutil.SameDay(displayed, now) {
		return 0, false
	}
	m := now.Hour()*60 + now.Minute()
	open, _ := slot.ParseClock(grid.DayStart())
	last, _ := slot.ParseClock(grid.DayEnd())
	if m < open || m >= last+grid.Step() {
		return 0, false
	}
	return (m - open) / grid.Step(), true
}

func sortByStart(tasks []*task.Task) {
	slices.SortFunc(tasks, func(a, b *task.Task) int {
		if a.Time < b.Time {
			return -1
		}
		if a.Time > b.Time {
			return 1
		}
		return int(a.ID - b.ID)
	})
}
