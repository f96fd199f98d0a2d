package view

import (
	"testing"
	"time"

	"github.com/ritmoapp/ritmo/internal/slot"
	"github.com/ritmoapp/ritmo/internal/task"
)

func seedStore(t *testing.T) *task.Store {
	t.Helper()
	mk := func(id int64, date string, start string, duration int, completed bool) *task.Task {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			t.Fatalf("bad date %q: %v", date, err)
		}
		return &task.Task{
			ID: id, Title: "T", Date: day, Time: start,
			DurationMinutes: duration, Category: task.CategoryGeneral,
			Completed: completed,
		}
	}
	s, err := task.NewStoreWith([]*task.Task{
		mk(1, "2024-06-05", "14:00", 60, false), // Wednesday
		mk(2, "2024-06-05", "09:00", 30, true),
		mk(3, "2024-06-07", "09:00", 60, false), // Friday
		mk(4, "2024-07-01", "09:00", 60, true),  // next month
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestDayOf(t *testing.T) {
	s := seedStore(t)
	d := DayOf(s, time.Date(2024, 6, 5, 16, 0, 0, 0, time.UTC))

	if len(d.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(d.Tasks))
	}
	// Sorted by start time, not insertion order.
	if d.Tasks[0].ID != 2 || d.Tasks[1].ID != 1 {
		t.Errorf("got order %d,%d, want 2,1", d.Tasks[0].ID, d.Tasks[1].ID)
	}

	stats := d.Stats()
	if stats.Total != 2 || stats.Completed != 1 || stats.MinutesPlanned != 90 {
		t.Errorf("got stats %+v", stats)
	}
}

func TestWeekOf(t *testing.T) {
	s := seedStore(t)
	w := WeekOf(s, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))

	if !w.Start.Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got start %v, want Monday 2024-06-03", w.Start)
	}
	if !w.End().Equal(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got end %v, want Sunday 2024-06-09", w.End())
	}
	if len(w.Days[2].Tasks) != 2 { // Wednesday
		t.Errorf("got %d tasks on Wednesday, want 2", len(w.Days[2].Tasks))
	}
	if len(w.Days[4].Tasks) != 1 { // Friday
		t.Errorf("got %d tasks on Friday, want 1", len(w.Days[4].Tasks))
	}
	if len(w.Days[0].Tasks) != 0 {
		t.Errorf("got %d tasks on Monday, want 0", len(w.Days[0].Tasks))
	}
}

func TestMonthOf(t *testing.T) {
	s := seedStore(t)
	days := MonthOf(s, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	if len(days) != 30 {
		t.Fatalf("got %d days for June, want 30", len(days))
	}
	total := 0
	for _, d := range days {
		total += len(d.Tasks)
	}
	if total != 3 {
		t.Errorf("got %d tasks in June, want 3", total)
	}
}

func TestYearOf(t *testing.T) {
	s := seedStore(t)
	months := YearOf(s, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	if months[5].Total != 3 { // June
		t.Errorf("got June total %d, want 3", months[5].Total)
	}
	if months[5].Completed != 1 {
		t.Errorf("got June completed %d, want 1", months[5].Completed)
	}
	if months[6].Total != 1 { // July
		t.Errorf("got July total %d, want 1", months[6].Total)
	}
	if months[0].Total != 0 {
		t.Errorf("got January total %d, want 0", months[0].Total)
	}
}

func TestList(t *testing.T) {
	s := seedStore(t)
	groups := List(s)

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	// Date-ordered groups.
	if groups[0].Date.Format("2006-01-02") != "2024-06-05" {
		t.Errorf("got first group %v", groups[0].Date)
	}
	if groups[2].Date.Format("2006-01-02") != "2024-07-01" {
		t.Errorf("got last group %v", groups[2].Date)
	}
	// Start-ordered tasks inside a group.
	if groups[0].Tasks[0].ID != 2 {
		t.Errorf("got first task %d, want 2", groups[0].Tasks[0].ID)
	}
}

func TestNowIndicator(t *testing.T) {
	grid := slot.Default()
	displayed := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		wantIdx  int
		wantShow bool
	}{
		{"window open", time.Date(2024, 6, 5, 6, 0, 0, 0, time.UTC), 0, true},
		{"mid slot", time.Date(2024, 6, 5, 6, 10, 0, 0, time.UTC), 0, true},
		{"mid morning", time.Date(2024, 6, 5, 9, 30, 0, 0, time.UTC), 14, true},
		{"inside last slot", time.Date(2024, 6, 5, 23, 59, 0, 0, time.UTC), 71, true},
		{"before window", time.Date(2024, 6, 5, 5, 0, 0, 0, time.UTC), 0, false},
		{"different day", time.Date(2024, 6, 6, 9, 0, 0, 0, time.UTC), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, show := NowIndicator(grid, displayed, tt.now)
			if show != tt.wantShow {
				t.Fatalf("got show=%v, want %v", show, tt.wantShow)
			}
			if show && idx != tt.wantIdx {
				t.Errorf("got index %d, want %d", idx, tt.wantIdx)
			}
		})
	}
}
