package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS items (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			category     TEXT CHECK(category IN ('transport', 'activity', 'sightseeing', 'food', 'shopping', 'accommodation')),
			duration_min INTEGER NOT NULL CHECK(duration_min > 0),
			day          INTEGER,
			start_min    INTEGER,
			cost_cents   INTEGER NOT NULL DEFAULT 0,
			memo         TEXT NOT NULL DEFAULT '',
			location     TEXT NOT NULL DEFAULT '',
			created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
			CHECK ((day IS NULL) = (start_min IS NULL))
		);

		CREATE INDEX IF NOT EXISTS idx_items_day ON items(day, start_min);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating items table: %w", err)
	}

	return nil
}
