package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/task"
)

// Dates are stored as plain YYYY-MM-DD text. A task written from one
// timezone must come back on the same calendar day everywhere.
func TestDateRoundTripAcrossTimezones(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ritmo.db")
	repo := openRepo(t, dbPath)
	ctx := context.Background()

	tsk, err := task.New("Late planning", task.CategoryWork, "2026-03-04", "22:00", 60)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}

	// Pretend the process runs in a zone far from UTC.
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	tsk.Date = time.Date(2026, 3, 4, 0, 0, 0, 0, tokyo)

	if err := repo.InsertTask(ctx, tsk); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.ListTasksByDateRange(ctx,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("have %d tasks, want 1", len(got))
	}
	if dateutil.FormatDate(got[0].Date) != "2026-03-04" {
		t.Errorf("Date = %s, want 2026-03-04", dateutil.FormatDate(got[0].Date))
	}
	if got[0].Time != "22:00" {
		t.Errorf("Time = %q, want 22:00", got[0].Time)
	}
}

func TestDateRangeBoundariesAreInclusive(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ritmo.db")
	repo := openRepo(t, dbPath)
	ctx := context.Background()

	for _, date := range []string{"2026-03-01", "2026-03-15", "2026-03-31"} {
		tsk, err := task.New("t", task.CategoryGeneral, date, "08:00", 30)
		if err != nil {
			t.Fatalf("new task: %v", err)
		}
		if err := repo.InsertTask(ctx, tsk); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, err := repo.ListTasksByDateRange(ctx,
		mustParseDate(t, "2026-03-01"), mustParseDate(t, "2026-03-31"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("inclusive range returned %d tasks, want 3", len(got))
	}
}

func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return date
}
