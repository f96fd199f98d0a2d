package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS templates (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			name               TEXT NOT NULL UNIQUE,
			title              TEXT NOT NULL,
			category           TEXT CHECK(category IN ('work', 'wellness', 'fitness', 'growth', 'general')),
			estimated_duration INTEGER NOT NULL,
			default_time       TIME,
			tags               TEXT,
			usage_count        INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			title            TEXT NOT NULL,
			date             DATE NOT NULL,
			start_time       TIME NOT NULL,
			duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
			category         TEXT CHECK(category IN ('work', 'wellness', 'fitness', 'growth', 'general')),
			completed        INTEGER NOT NULL DEFAULT 0,
			completed_at     DATETIME,
			acc_type         TEXT,
			acc_partner      TEXT,
			acc_checkin      TIME,
			acc_consequences TEXT,
			acc_rewards      TEXT,
			recurring        TEXT,
			goal_id          TEXT,
			template_id      INTEGER REFERENCES templates(id),
			created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);
		CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
