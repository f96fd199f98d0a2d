package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ritmoapp/ritmo/internal/task"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "ritmo_test.db"))
	if err != nil {
		t.Fatalf("creating repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleTask() *task.Task {
	return &task.Task{
		Title:           "Morning run",
		Date:            time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:            "07:00",
		DurationMinutes: 45,
		Category:        task.CategoryFitness,
		Recurring:       "weekly",
		GoalID:          "goal-123",
		Accountability: &task.Accountability{
			Type:        task.AccountabilityPartner,
			Partner:     "sam",
			CheckInTime: "18:00",
		},
		CreatedAt: time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestInsertAndListTask(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := sampleTask()
	if err := repo.InsertTask(ctx, in); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if in.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	got, err := repo.ListTasksByDateRange(ctx, in.Date, in.Date)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tasks, want 1", len(got))
	}

	out := got[0]
	if out.Title != in.Title || out.Time != in.Time || out.DurationMinutes != in.DurationMinutes {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if out.Category != task.CategoryFitness {
		t.Errorf("got category %q", out.Category)
	}
	if out.Recurring != "weekly" || out.GoalID != "goal-123" {
		t.Errorf("got recurring %q, goal %q", out.Recurring, out.GoalID)
	}
	if out.Accountability == nil || out.Accountability.Partner != "sam" || out.Accountability.CheckInTime != "18:00" {
		t.Errorf("got accountability %+v", out.Accountability)
	}
	if out.Completed {
		t.Error("new task should not be completed")
	}
}

func TestListTasksByDateRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2024-06-01", "2024-06-03", "2024-06-10"} {
		tk := sampleTask()
		tk.Date, _ = time.Parse("2006-01-02", date)
		if err := repo.InsertTask(ctx, tk); err != nil {
			t.Fatalf("insert %s: %v", date, err)
		}
	}

	got, err := repo.ListTasksByDateRange(ctx,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d tasks in range, want 2", len(got))
	}
}

func TestUpdateTask(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("patch subset of fields", func(t *testing.T) {
		tk := sampleTask()
		if err := repo.InsertTask(ctx, tk); err != nil {
			t.Fatalf("insert: %v", err)
		}

		newTime := "08:00"
		newDur := 60
		if err := repo.UpdateTask(ctx, tk.ID, task.Patch{Time: &newTime, DurationMinutes: &newDur}); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, err := repo.ListTasksByDateRange(ctx, tk.Date, tk.Date)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if got[0].Time != "08:00" || got[0].DurationMinutes != 60 {
			t.Errorf("patch not applied: %+v", got[0])
		}
		if got[0].Title != tk.Title {
			t.Errorf("unpatched field changed: %q", got[0].Title)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		newTime := "08:00"
		err := repo.UpdateTask(ctx, 9999, task.Patch{Time: &newTime})
		if !errors.Is(err, task.ErrTaskNotFound) {
			t.Errorf("got %v, want ErrTaskNotFound", err)
		}
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		if err := repo.UpdateTask(ctx, 9999, task.Patch{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSetTaskCompleted(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tk := sampleTask()
	if err := repo.InsertTask(ctx, tk); err != nil {
		t.Fatalf("insert: %v", err)
	}

	first := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	if err := repo.SetTaskCompleted(ctx, tk.ID, first); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Completing again must not move the original timestamp.
	if err := repo.SetTaskCompleted(ctx, tk.ID, first.Add(2*time.Hour)); err != nil {
		t.Fatalf("re-complete: %v", err)
	}

	got, err := repo.ListTasksByDateRange(ctx, tk.Date, tk.Date)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !got[0].Completed {
		t.Fatal("task not completed")
	}
	if got[0].CompletedAt == nil || !got[0].CompletedAt.Equal(first) {
		t.Errorf("got completedAt %v, want %v", got[0].CompletedAt, first)
	}

	if err := repo.SetTaskCompleted(ctx, 9999, first); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tk := sampleTask()
	if err := repo.InsertTask(ctx, tk); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.DeleteTask(ctx, tk.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := repo.ListTasksByDateRange(ctx, tk.Date, tk.Date)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d tasks after delete, want 0", len(got))
	}

	// Deleting an absent id is a no-op.
	if err := repo.DeleteTask(ctx, 9999); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseDateColumn(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  time.Time
		isErr bool
	}{
		{name: "date only", in: "2026-03-04", want: time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)},
		// The driver can return DATE columns in RFC3339 form; only the
		// date part carries meaning.
		{name: "rfc3339 midnight", in: "2026-03-04T00:00:00Z", want: time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)},
		{name: "garbage", in: "not-a-date", isErr: true},
		{name: "empty", in: "", isErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.in)
			if tt.isErr {
				if err == nil {
					t.Fatalf("got %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTimestampColumn(t *testing.T) {
	want := time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)
	for _, in := range []string{"2026-03-04T09:30:00Z", "2026-03-04 09:30:00"} {
		got, err := parseTimestamp(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got.Year() != want.Year() || got.Minute() != want.Minute() {
			t.Errorf("parse %q: got %v", in, got)
		}
	}
	if _, err := parseTimestamp("yesterday-ish"); err == nil {
		t.Error("expected error for unrecognized timestamp")
	}
}

func TestTemplates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tpl, err := task.NewTemplate("gym", "Gym session", task.CategoryFitness, 60, "18:00", []string{"health", "strength"})
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	if err := repo.InsertTemplate(ctx, tpl); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if tpl.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	if err := repo.IncrementTemplateUsage(ctx, tpl.ID); err != nil {
		t.Fatalf("increment: %v", err)
	}

	got, err := repo.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d templates, want 1", len(got))
	}
	out := got[0]
	if out.Name != "gym" || out.DefaultTime != "18:00" || out.EstimatedDuration != 60 {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if len(out.Tags) != 2 || out.Tags[0] != "health" {
		t.Errorf("got tags %v", out.Tags)
	}
	if out.UsageCount != 1 {
		t.Errorf("got usage count %d, want 1", out.UsageCount)
	}

	if err := repo.IncrementTemplateUsage(ctx, 9999); err == nil {
		t.Error("expected error for missing template")
	}
}
