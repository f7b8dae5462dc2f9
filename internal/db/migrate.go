package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clc_events (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		event_type  TEXT NOT NULL DEFAULT 'Other',
		event_date  TEXT NOT NULL,
		end_date    TEXT,
		start_time  TEXT,
		end_time    TEXT,
		location    TEXT,
		notes       TEXT,
		added_by    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_clc_events_date ON clc_events(event_date, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_clc_events_type ON clc_events(event_type, event_date)`,

	`CREATE TABLE IF NOT EXISTS pac_meetings (
		id           TEXT PRIMARY KEY,
		meeting_date TEXT,
		meeting_type TEXT,
		start_time   TEXT,
		location     TEXT,
		chair        TEXT,
		series_id    TEXT,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_pac_meetings_date ON pac_meetings(meeting_date)`,
	`CREATE INDEX IF NOT EXISTS idx_pac_meetings_series ON pac_meetings(series_id)`,

	`CREATE TABLE IF NOT EXISTS transition_weeks (
		id               TEXT PRIMARY KEY,
		student_initials TEXT NOT NULL,
		program          TEXT,
		term             INTEGER NOT NULL CHECK(term BETWEEN 1 AND 4),
		week_label       TEXT NOT NULL DEFAULT '',
		week_start       TEXT NOT NULL,
		mon_start TEXT, mon_end TEXT,
		tue_start TEXT, tue_end TEXT,
		wed_start TEXT, wed_end TEXT,
		thu_start TEXT, thu_end TEXT,
		fri_start TEXT, fri_end TEXT,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL,
		UNIQUE(student_initials, week_start)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_transition_weeks_start ON transition_weeks(week_start, student_initials)`,

	// Student columns were added after the first release.
	`ALTER TABLE clc_events ADD COLUMN program TEXT`,
	`ALTER TABLE clc_events ADD COLUMN student_initials TEXT`,
	`CREATE INDEX IF NOT EXISTS idx_clc_events_student ON clc_events(student_initials)`,
}
