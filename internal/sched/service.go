// Package sched implements the scheduling operations: the only call
// sites allowed to mutate the session task store. Each time-affecting
// operation runs the conflict detector before committing, and a blocked
// operation leaves the store untouched until the caller forces it.
package sched

import (
	"context"
	"fmt"
	"time"

	"github.com/ritmoapp/ritmo/internal/conflict"
	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/slot"
	"github.com/ritmoapp/ritmo/internal/task"
)

// Service wires the store, the conflict detector and the optional
// persistence mirror. now is injectable for deterministic tests.
type Service struct {
	store    *task.Store
	grid     *slot.Grid
	detector *conflict.Detector
	repo     task.Repository // optional; nil means session-only
	now      func() time.Time
}

// NewService creates a scheduling service. repo may be nil for a
// session-only store; now may be nil to use time.Now.
func NewService(store *task.Store, grid *slot.Grid, repo task.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:    store,
		grid:     grid,
		detector: conflict.NewDetector(grid),
		repo:     repo,
		now:      now,
	}
}

// Store exposes the session store for read-only projections.
func (s *Service) Store() *task.Store {
	return s.store
}

// Grid exposes the slot grid shared by all components.
func (s *Service) Grid() *slot.Grid {
	return s.grid
}

// Detector exposes the conflict detector for advisory queries.
func (s *Service) Detector() *conflict.Detector {
	return s.detector
}

// Now returns the service's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// CreateSpec carries the fields for a new task.
type CreateSpec struct {
	Title           string
	Category        task.Category
	Date            string // YYYY-MM-DD, empty for today
	Time            string // "HH:MM"
	DurationMinutes int
	Accountability  *task.Accountability
	Recurring       string
	GoalID          string
	Force           bool // commit even when conflicts are reported
}

// Create validates and inserts a new task. When the placement overlaps
// existing tasks and Force is unset, the conflict result is returned and
// nothing is inserted.
func (s *Service) Create(ctx context.Context, spec CreateSpec) (*task.Task, *conflict.Result, error) {
	t, err := task.New(spec.Title, spec.Category, spec.Date, spec.Time, spec.DurationMinutes)
	if err != nil {
		return nil, nil, err
	}
	if err := s.grid.ValidatePlacement(t.Time, t.DurationMinutes); err != nil {
		return nil, nil, err
	}
	if err := task.ValidateAccountability(spec.Accountability); err != nil {
		return nil, nil, err
	}
	t.Accountability = spec.Accountability
	t.Recurring = spec.Recurring
	t.GoalID = spec.GoalID

	res, err := s.detector.Check(s.store, t.Date, t.Time, t.DurationMinutes, t.Category, 0)
	if err != nil {
		return nil, nil, err
	}
	if res.HasConflict() && !spec.Force {
		return nil, res, nil
	}

	if err := s.commitInsert(ctx, t); err != nil {
		return nil, nil, err
	}
	return t, res, nil
}

// CreateFromTemplate materializes a task from a template and inserts it
// through the same conflict gate as Create. On commit the template's
// usage counter is bumped.
func (s *Service) CreateFromTemplate(ctx context.Context, tpl *task.Template, date, startTime string, force bool) (*task.Task, *conflict.Result, error) {
	t, err := tpl.Materialize(date, startTime)
	if err != nil {
		return nil, nil, err
	}
	if err := s.grid.ValidatePlacement(t.Time, t.DurationMinutes); err != nil {
		return nil, nil, err
	}

	res, err := s.detector.Check(s.store, t.Date, t.Time, t.DurationMinutes, t.Category, 0)
	if err != nil {
		return nil, nil, err
	}
	if res.HasConflict() && !force {
		return nil, res, nil
	}

	if err := s.commitInsert(ctx, t); err != nil {
		return nil, nil, err
	}

	tpl.UsageCount++
	if s.repo != nil {
		if err := s.repo.IncrementTemplateUsage(ctx, tpl.ID); err != nil {
			return nil, nil, fmt.Errorf("recording template usage: %w", err)
		}
	}
	return t, res, nil
}

// Move reschedules a task to a new time and optionally a new date. The
// task itself is excluded from the conflict scan so it never blocks its
// own move.
func (s *Service) Move(ctx context.Context, id int64, newDate, newTime string, force bool) (*task.Task, *conflict.Result, error) {
	t := s.store.Get(id)
	if t == nil {
		return nil, nil, fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}

	date := t.Date
	if newDate != "" {
		d, err := dateutil.ParseDate(newDate)
		if err != nil {
			return nil, nil, err
		}
		date = d
	}
	if newTime == "" {
		newTime = t.Time
	}
	if err := s.grid.ValidatePlacement(newTime, t.DurationMinutes); err != nil {
		return nil, nil, err
	}

	res, err := s.detector.Check(s.store, date, newTime, t.DurationMinutes, t.Category, id)
	if err != nil {
		return nil, nil, err
	}
	if res.HasConflict() && !force {
		return nil, res, nil
	}

	patch := task.Patch{Date: &date, Time: &newTime}
	if err := s.commitUpdate(ctx, id, patch); err != nil {
		return nil, nil, err
	}
	return t, res, nil
}

// Edit applies a free-form patch. Title, duration and time fields are
// validated first; the conflict gate re-runs only when the patch can
// change the task's placement.
func (s *Service) Edit(ctx context.Context, id int64, patch task.Patch, force bool) (*task.Task, *conflict.Result, error) {
	t := s.store.Get(id)
	if t == nil {
		return nil, nil, fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}

	if patch.Title != nil && *patch.Title == "" {
		return nil, nil, task.ErrEmptyTitle
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", task.ErrInvalidCategory, *patch.Category)
	}
	if patch.DurationMinutes != nil && *patch.DurationMinutes <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", task.ErrInvalidDuration, *patch.DurationMinutes)
	}
	if patch.Accountability != nil {
		if err := task.ValidateAccountability(*patch.Accountability); err != nil {
			return nil, nil, err
		}
	}

	if patch.TimeAffecting() {
		date := t.Date
		if patch.Date != nil {
			date = dateutil.TruncateToDay(*patch.Date)
		}
		startTime := t.Time
		if patch.Time != nil {
			startTime = *patch.Time
		}
		duration := t.DurationMinutes
		if patch.DurationMinutes != nil {
			duration = *patch.DurationMinutes
		}
		if err := s.grid.ValidatePlacement(startTime, duration); err != nil {
			return nil, nil, err
		}

		category := t.Category
		if patch.Category != nil {
			category = *patch.Category
		}
		res, err := s.detector.Check(s.store, date, startTime, duration, category, id)
		if err != nil {
			return nil, nil, err
		}
		if res.HasConflict() && !force {
			return nil, res, nil
		}
		if err := s.commitUpdate(ctx, id, patch); err != nil {
			return nil, nil, err
		}
		return t, res, nil
	}

	if err := s.commitUpdate(ctx, id, patch); err != nil {
		return nil, nil, err
	}
	return t, nil, nil
}

// Delete removes a task unconditionally. Deleting an absent id is a
// no-op, not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s.repo != nil {
		if err := s.repo.DeleteTask(ctx, id); err != nil {
			return fmt.Errorf("deleting task: %w", err)
		}
	}
	s.store.Remove(id)
	return nil
}

// Complete marks a task done, stamping it with the injected clock. The
// transition is one-way; completing an already-completed task keeps the
// original timestamp.
func (s *Service) Complete(ctx context.Context, id int64) (*task.Task, error) {
	t := s.store.Get(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}
	if t.Completed {
		return t, nil
	}

	now := s.now()
	if s.repo != nil {
		if err := s.repo.SetTaskCompleted(ctx, id, now); err != nil {
			return nil, fmt.Errorf("recording completion: %w", err)
		}
	}
	t.MarkCompleted(now)
	return t, nil
}

// BulkReschedule shifts every listed task's date by deltaDays. Bulk
// operations bypass the conflict detector by design. Records apply one
// by one and are not rolled back on partial failure; absent ids are
// skipped. Returns the number of tasks shifted.
func (s *Service) BulkReschedule(ctx context.Context, ids []int64, deltaDays int) (int, error) {
	applied := 0
	for _, id := range ids {
		t := s.store.Get(id)
		if t == nil {
			continue
		}
		newDate := dateutil.AddDays(t.Date, deltaDays)
		patch := task.Patch{Date: &newDate}
		if err := s.commitUpdate(ctx, id, patch); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// BulkEdit applies a uniform patch to every listed task, bypassing the
// conflict detector. Absent ids are skipped.
func (s *Service) BulkEdit(ctx context.Context, ids []int64, patch task.Patch) (int, error) {
	if patch.Title != nil && *patch.Title == "" {
		return 0, task.ErrEmptyTitle
	}
	if patch.DurationMinutes != nil && *patch.DurationMinutes <= 0 {
		return 0, fmt.Errorf("%w: %d", task.ErrInvalidDuration, *patch.DurationMinutes)
	}
	if patch.Time != nil {
		// The effective duration varies per task, so the shared check
		// uses one slot; per-task overflow is tolerated like any other
		// bulk conflict.
		dur := s.grid.Step()
		if patch.DurationMinutes != nil {
			dur = *patch.DurationMinutes
		}
		if err := s.grid.ValidatePlacement(*patch.Time, dur); err != nil {
			return 0, err
		}
	}
	applied := 0
	for _, id := range ids {
		if s.store.Get(id) == nil {
			continue
		}
		if err := s.commitUpdate(ctx, id, patch); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// BulkDelete removes every listed task. Absent ids are skipped.
func (s *Service) BulkDelete(ctx context.Context, ids []int64) (int, error) {
	applied := 0
	for _, id := range ids {
		if s.store.Get(id) == nil {
			continue
		}
		if err := s.Delete(ctx, id); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// commitInsert persists (mirror first, then memory) so a failed write
// never leaves the session store ahead of the mirror.
func (s *Service) commitInsert(ctx context.Context, t *task.Task) error {
	if s.repo != nil {
		if err := s.repo.InsertTask(ctx, t); err != nil {
			return fmt.Errorf("persisting task: %w", err)
		}
	} else {
		t.ID = s.store.NextID()
	}
	return s.store.Insert(t)
}

func (s *Service) commitUpdate(ctx context.Context, id int64, patch task.Patch) error {
	if s.repo != nil {
		if err := s.repo.UpdateTask(ctx, id, patch); err != nil {
			return fmt.Errorf("persisting update: %w", err)
		}
	}
	_, err := s.store.Update(id, patch)
	return err
}
