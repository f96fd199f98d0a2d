package task

import (
	"context"
	"time"
)

// Repository is the persistent record store mirroring the session Store.
// The in-memory Store remains the source of truth for conflict checks
// within a session; the repository is the durable copy.
type Repository interface {
	// InsertTask persists a new task and assigns its ID.
	InsertTask(ctx context.Context, t *Task) error

	// UpdateTask merges a patch into the stored task.
	// Returns ErrTaskNotFound if the id is absent.
	UpdateTask(ctx context.Context, id int64, patch Patch) error

	// SetTaskCompleted records a completion timestamp.
	SetTaskCompleted(ctx context.Context, id int64, completedAt time.Time) error

	// DeleteTask removes a task. Deleting an absent id is not an error.
	DeleteTask(ctx context.Context, id int64) error

	// ListTasksByDateRange returns all tasks dated within [start, end].
	ListTasksByDateRange(ctx context.Context, start, end time.Time) ([]*Task, error)

	// InsertTemplate persists a new template and assigns its ID.
	InsertTemplate(ctx context.Context, tpl *Template) error

	// ListTemplates returns all templates ordered by name.
	ListTemplates(ctx context.Context) ([]*Template, error)

	// IncrementTemplateUsage bumps a template's usage counter.
	IncrementTemplateUsage(ctx context.Context, id int64) error

	// Close releases any resources held by the repository.
	Close() error
}
