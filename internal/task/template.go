package task

import (
	"errors"
	"fmt"
)

// ErrEmptyTemplateName is returned when creating a template without a name.
var ErrEmptyTemplateName = errors.New("template name cannot be empty")

// Template is a named, reusable set of task defaults. It is not itself
// schedulable; it materializes Tasks.
type Template struct {
	ID                int64
	Name              string
	Title             string
	Category          Category
	EstimatedDuration int    // minutes
	DefaultTime       string // "HH:MM", optional
	Tags              []string
	UsageCount        int
}

// NewTemplate creates a Template with validation.
func NewTemplate(name, title string, category Category, estimatedDuration int, defaultTime string, tags []string) (*Template, error) {
	if name == "" {
		return nil, ErrEmptyTemplateName
	}
	if title == "" {
		title = name
	}
	if category == "" {
		category = CategoryGeneral
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	if estimatedDuration <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, estimatedDuration)
	}
	return &Template{
		Name:              name,
		Title:             title,
		Category:          category,
		EstimatedDuration: estimatedDuration,
		DefaultTime:       defaultTime,
		Tags:              tags,
	}, nil
}

// Materialize pre-fills a new task from the template's defaults. The
// caller supplies the date and may override the start time; an empty
// startTime falls back to the template default. UsageCount is bumped by
// the scheduling operation once the task is actually created.
func (tpl *Template) Materialize(date, startTime string) (*Task, error) {
	if startTime == "" {
		startTime = tpl.DefaultTime
	}
	t, err := New(tpl.Title, tpl.Category, date, startTime, tpl.EstimatedDuration)
	if err != nil {
		return nil, err
	}
	id := tpl.ID
	t.TemplateID = &id
	return t, nil
}
