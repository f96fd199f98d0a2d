// Package db provides the SQLite persistence mirror for the session
// task store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/task"
)

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// InsertTask persists a new task and assigns its ID.
func (s *SQLite) InsertTask(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (
			title, date, start_time, duration_minutes, category,
			completed, completed_at,
			acc_type, acc_partner, acc_checkin, acc_consequences, acc_rewards,
			recurring, goal_id, template_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var completedAt any
	if t.CompletedAt != nil {
		completedAt = t.CompletedAt.Format(time.RFC3339)
	}
	accType, accPartner, accCheckIn, accConsequences, accRewards := accountabilityColumns(t.Accountability)

	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, query,
		t.Title,
		dateutil.FormatDate(t.Date),
		t.Time,
		t.DurationMinutes,
		t.Category,
		t.Completed,
		completedAt,
		accType, accPartner, accCheckIn, accConsequences, accRewards,
		nullIfEmpty(t.Recurring),
		nullIfEmpty(t.GoalID),
		t.TemplateID,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	t.ID = id

	return nil
}

// UpdateTask merges a patch into the stored task.
func (s *SQLite) UpdateTask(ctx context.Context, id int64, patch task.Patch) error {
	var (
		sets []string
		args []any
	)
	appendSet := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Title != nil {
		appendSet("title", *patch.Title)
	}
	if patch.Date != nil {
		appendSet("date", dateutil.FormatDate(*patch.Date))
	}
	if patch.Time != nil {
		appendSet("start_time", *patch.Time)
	}
	if patch.DurationMinutes != nil {
		appendSet("duration_minutes", *patch.DurationMinutes)
	}
	if patch.Category != nil {
		appendSet("category", *patch.Category)
	}
	if patch.Accountability != nil {
		accType, accPartner, accCheckIn, accConsequences, accRewards := accountabilityColumns(*patch.Accountability)
		appendSet("acc_type", accType)
		appendSet("acc_partner", accPartner)
		appendSet("acc_checkin", accCheckIn)
		appendSet("acc_consequences", accConsequences)
		appendSet("acc_rewards", accRewards)
	}
	if patch.Recurring != nil {
		appendSet("recurring", nullIfEmpty(*patch.Recurring))
	}
	if patch.GoalID != nil {
		appendSet("goal_id", nullIfEmpty(*patch.GoalID))
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}
	return nil
}

// SetTaskCompleted records a completion timestamp. The column is only
// written once; a repeated call leaves the original value in place.
func (s *SQLite) SetTaskCompleted(ctx context.Context, id int64, completedAt time.Time) error {
	query := `
		UPDATE tasks
		SET completed = 1,
		    completed_at = COALESCE(completed_at, ?)
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query, completedAt.Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}
	return nil
}

// DeleteTask removes a task. Deleting an absent id is not an error.
func (s *SQLite) DeleteTask(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// ListTasksByDateRange returns all tasks dated within [start, end].
func (s *SQLite) ListTasksByDateRange(ctx context.Context, start, end time.Time) ([]*task.Task, error) {
	query := `
		SELECT id, title, date, start_time, duration_minutes, category,
		       completed, completed_at,
		       acc_type, acc_partner, acc_checkin, acc_consequences, acc_rewards,
		       recurring, goal_id, template_id, created_at
		FROM tasks
		WHERE date >= ? AND date <= ?
		ORDER BY date, start_time
	`

	rows, err := s.db.QueryContext(ctx, query, dateutil.FormatDate(start), dateutil.FormatDate(end))
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

func scanTask(rows *sql.Rows) (*task.Task, error) {
	var (
		t               task.Task
		date            string
		createdAt       string
		completedAt     sql.NullString
		accType         sql.NullString
		accPartner      sql.NullString
		accCheckIn      sql.NullString
		accConsequences sql.NullString
		accRewards      sql.NullString
		recurring       sql.NullString
		goalID          sql.NullString
		templateID      sql.NullInt64
	)

	err := rows.Scan(
		&t.ID,
		&t.Title,
		&date,
		&t.Time,
		&t.DurationMinutes,
		&t.Category,
		&t.Completed,
		&completedAt,
		&accType, &accPartner, &accCheckIn, &accConsequences, &accRewards,
		&recurring,
		&goalID,
		&templateID,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Date, err = parseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing task date: %w", err)
	}
	t.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	if completedAt.Valid {
		at, err := parseTimestamp(completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing completed at: %w", err)
		}
		t.CompletedAt = &at
	}
	if accType.Valid {
		t.Accountability = &task.Accountability{
			Type:         task.AccountabilityType(accType.String),
			Partner:      accPartner.String,
			CheckInTime:  accCheckIn.String,
			Consequences: accConsequences.String,
			Rewards:      accRewards.String,
		}
	}
	t.Recurring = recurring.String
	t.GoalID = goalID.String
	if templateID.Valid {
		t.TemplateID = &templateID.Int64
	}

	return &t, nil
}

// parseDate parses a date column in the formats SQLite might return.
// Date-only values are parsed as local midnight so they compare cleanly
// with dates derived from time.Now().
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// DATE columns can come back as "2006-01-02T00:00:00Z". The value is
	// date-only, so take the date part and treat it as local midnight.
	if len(s) >= 10 {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// parseTimestamp parses a DATETIME column.
func parseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// InsertTemplate persists a new template and assigns its ID.
func (s *SQLite) InsertTemplate(ctx context.Context, tpl *task.Template) error {
	query := `
		INSERT INTO templates (name, title, category, estimated_duration, default_time, tags, usage_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		tpl.Name,
		tpl.Title,
		tpl.Category,
		tpl.EstimatedDuration,
		nullIfEmpty(tpl.DefaultTime),
		nullIfEmpty(strings.Join(tpl.Tags, ",")),
		tpl.UsageCount,
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	tpl.ID = id

	return nil
}

// ListTemplates returns all templates ordered by name.
func (s *SQLite) ListTemplates(ctx context.Context) ([]*task.Template, error) {
	query := `
		SELECT id, name, title, category, estimated_duration, default_time, tags, usage_count
		FROM templates
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var templates []*task.Template
	for rows.Next() {
		var (
			tpl         task.Template
			defaultTime sql.NullString
			tags        sql.NullString
		)
		err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Title, &tpl.Category, &tpl.EstimatedDuration, &defaultTime, &tags, &tpl.UsageCount)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		tpl.DefaultTime = defaultTime.String
		if tags.Valid && tags.String != "" {
			tpl.Tags = strings.Split(tags.String, ",")
		}
		templates = append(templates, &tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}

	return templates, nil
}

// IncrementTemplateUsage bumps a template's usage counter.
func (s *SQLite) IncrementTemplateUsage(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `UPDATE templates SET usage_count = usage_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("updating template usage: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("template %d not found", id)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func accountabilityColumns(a *task.Accountability) (accType, partner, checkIn, consequences, rewards any) {
	if a == nil {
		return nil, nil, nil, nil, nil
	}
	return string(a.Type), nullIfEmpty(a.Partner), nullIfEmpty(a.CheckInTime), nullIfEmpty(a.Consequences), nullIfEmpty(a.Rewards)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
