// Package task defines the core domain types for ritmo.
package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/slot"
)

// Validation errors.
var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrInvalidCategory  = errors.New("category must be work, wellness, fitness, growth or general")
	ErrInvalidDuration  = errors.New("duration must be a positive number of minutes")
	ErrInvalidCheckIn   = errors.New("check-in time must be in HH:MM format")
)

// Domain errors.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrDuplicateID  = errors.New("task id already exists")
)

// Category groups tasks for display and suggestion heuristics. It carries
// no scheduling invariant.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryWellness Category = "wellness"
	CategoryFitness  Category = "fitness"
	CategoryGrowth   Category = "growth"
	CategoryGeneral  Category = "general"
)

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{CategoryWork, CategoryWellness, CategoryFitness, CategoryGrowth, CategoryGeneral}
}

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryWellness, CategoryFitness, CategoryGrowth, CategoryGeneral:
		return true
	default:
		return false
	}
}

// AccountabilityType identifies who holds the user to a task.
type AccountabilityType string

const (
	AccountabilityAI      AccountabilityType = "ai"
	AccountabilityPartner AccountabilityType = "partner"
	AccountabilityTeam    AccountabilityType = "team"
	AccountabilityPublic  AccountabilityType = "public"
)

// Accountability is informational metadata attached to a task. It has no
// effect on scheduling.
type Accountability struct {
	Type         AccountabilityType
	Partner      string
	CheckInTime  string // "HH:MM", optional
	Consequences string
	Rewards      string
}

// Task represents a schedulable unit of work occupying
// [Time, Time+DurationMinutes) on a single calendar date.
type Task struct {
	ID              int64
	Title           string
	Date            time.Time // day granularity
	Time            string    // "HH:MM" start, slot-aligned
	DurationMinutes int
	Category        Category
	Completed       bool
	CompletedAt     *time.Time // set exactly when Completed flips true, never cleared
	Accountability  *Accountability
	Recurring       string // e.g. "daily", "weekly"; informational
	GoalID          string // provenance link to a goal, informational
	TemplateID      *int64 // template that materialized this task, if any
	CreatedAt       time.Time
}

// New creates a Task with validation. date can be empty (defaults to today)
// or YYYY-MM-DD. startTime must be HH:MM; grid alignment and window checks
// happen at scheduling time, not here.
func New(title string, category Category, date, startTime string, durationMinutes int) (*Task, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if category == "" {
		category = CategoryGeneral
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, durationMinutes)
	}

	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	if _, err := slot.ParseClock(startTime); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}

	return &Task{
		Title:           title,
		Category:        category,
		Date:            day,
		Time:            startTime,
		DurationMinutes: durationMinutes,
		CreatedAt:       time.Now(),
	}, nil
}

// Start returns the start of the task in minutes since midnight.
func (t *Task) Start() int {
	m, err := slot.ParseClock(t.Time)
	if err != nil {
		return 0
	}
	return m
}

// End returns the exclusive end of the task in minutes since midnight.
func (t *Task) End() int {
	return t.Start() + t.DurationMinutes
}

// EndTime returns the task end as "HH:MM".
func (t *Task) EndTime() string {
	return slot.Clock(t.End())
}

// OverlapsWith returns true if this task overlaps another. Tasks on
// different dates never overlap; a task never spans midnight.
func (t *Task) OverlapsWith(other *Task) bool {
	if other == nil {
		return false
	}
	if !dateutil.SameDay(t.Date, other.Date) {
		return false
	}
	return slot.Overlaps(t.Start(), t.End(), other.Start(), other.End())
}

// MarkCompleted flips the task to completed at the given instant. The
// transition is one-way: a completed task keeps its original CompletedAt.
func (t *Task) MarkCompleted(now time.Time) {
	if t.Completed {
		return
	}
	t.Completed = true
	t.CompletedAt = &now
}

// ValidateAccountability checks the optional accountability structure.
func ValidateAccountability(a *Accountability) error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AccountabilityAI, AccountabilityPartner, AccountabilityTeam, AccountabilityPublic:
	default:
		return fmt.Errorf("invalid accountability type %q", a.Type)
	}
	if a.CheckInTime != "" {
		if _, err := slot.ParseClock(a.CheckInTime); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidCheckIn, a.CheckInTime)
		}
	}
	return nil
}

// Patch describes a partial update to a task. Nil fields are left
// untouched by Store.Update.
type Patch struct {
	Title           *string
	Date            *time.Time
	Time            *string
	DurationMinutes *int
	Category        *Category
	Accountability  **Accountability
	Recurring       *string
	GoalID          *string
}

// TimeAffecting returns true if applying the patch can change the task's
// placement, requiring a fresh conflict check.
func (p Patch) TimeAffecting() bool {
	return p.Date != nil || p.Time != nil || p.DurationMinutes != nil
}

// Apply merges the patch into a task in place.
func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Date != nil {
		t.Date = dateutil.TruncateToDay(*p.Date)
	}
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.DurationMinutes != nil {
		t.DurationMinutes = *p.DurationMinutes
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Accountability != nil {
		t.Accountability = *p.Accountability
	}
	if p.Recurring != nil {
		t.Recurring = *p.Recurring
	}
	if p.GoalID != nil {
		t.GoalID = *p.GoalID
	}
}
