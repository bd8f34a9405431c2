// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/rocinante/internal/plan"
)

// SQLite implements plan.Repository using SQLite.
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

// UpsertItem inserts or replaces an item by ID.
// A placed item is re-checked for overlaps at the storage layer as a
// defense against writers that bypass the engine; returns a
// *plan.ConflictError on overlap.
func (s *SQLite) UpsertItem(ctx context.Context, item *plan.Item) error {
	if item == nil {
		return plan.ErrItemNotFound
	}

	if p := item.Placement; p != nil {
		if err := s.checkOverlap(ctx, item.ID, p.Day, p.StartMinute, item.DurationMinutes); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO items (id, title, category, duration_min, day, start_min, cost_cents, memo, location, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			duration_min = excluded.duration_min,
			day = excluded.day,
			start_min = excluded.start_min,
			cost_cents = excluded.cost_cents,
			memo = excluded.memo,
			location = excluded.location
	`

	var day, start sql.NullInt64
	if p := item.Placement; p != nil {
		day = sql.NullInt64{Int64: int64(p.Day), Valid: true}
		start = sql.NullInt64{Int64: int64(p.StartMinute), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Category,
		item.DurationMinutes,
		day,
		start,
		item.Meta.CostCents,
		item.Meta.Memo,
		item.Meta.Location,
		item.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting item: %w", err)
	}

	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLite) GetItem(ctx context.Context, id string) (*plan.Item, error) {
	query := `
		SELECT id, title, category, duration_min, day, start_min, cost_cents, memo, location, created_at
		FROM items
		WHERE id = ?
	`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", plan.ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item by ID. Deleting a missing item is not an error.
func (s *SQLite) DeleteItem(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// ListItems returns every item ordered by day, start minute and ID,
// with pool items (NULL day) last.
func (s *SQLite) ListItems(ctx context.Context) ([]*plan.Item, error) {
	query := `
		SELECT id, title, category, duration_min, day, start_min, cost_cents, memo, location, created_at
		FROM items
		ORDER BY day IS NULL, day, start_min, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectItems(rows)
}

// ListItemsForDay returns the placed items for one day ordered by
// start minute, ties broken by ID.
func (s *SQLite) ListItemsForDay(ctx context.Context, day int) ([]*plan.Item, error) {
	query := `
		SELECT id, title, category, duration_min, day, start_min, cost_cents, memo, location, created_at
		FROM items
		WHERE day = ?
		ORDER BY start_min, id
	`

	rows, err := s.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("querying items for day %d: %w", day, err)
	}
	defer func() { _ = rows.Close() }()

	return collectItems(rows)
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// checkOverlap returns a *plan.ConflictError if the candidate interval
// overlaps any stored placement on the same day, excluding the item itself.
func (s *SQLite) checkOverlap(ctx context.Context, id string, day, startMin, durationMin int) error {
	query := `
		SELECT id FROM items
		WHERE day = ? AND id != ? AND start_min < ? AND start_min + duration_min > ?
		ORDER BY start_min, id
	`

	rows, err := s.db.QueryContext(ctx, query, day, id, startMin+durationMin, startMin)
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var other string
		if err := rows.Scan(&other); err != nil {
			return fmt.Errorf("scanning overlap row: %w", err)
		}
		ids = append(ids, other)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading overlap rows: %w", err)
	}

	if len(ids) > 0 {
		return &plan.ConflictError{
			Day:         day,
			StartMinute: startMin,
			Duration:    durationMin,
			IDs:         ids,
		}
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for item scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*plan.Item, error) {
	var (
		item      plan.Item
		day       sql.NullInt64
		start     sql.NullInt64
		createdAt string
	)

	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Category,
		&item.DurationMinutes,
		&day,
		&start,
		&item.Meta.CostCents,
		&item.Meta.Memo,
		&item.Meta.Location,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if day.Valid && start.Valid {
		item.Placement = &plan.Placement{
			Day:         int(day.Int64),
			StartMinute: int(start.Int64),
		}
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		item.CreatedAt = t
	}

	return &item, nil
}

func collectItems(rows *sql.Rows) ([]*plan.Item, error) {
	var items []*plan.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading item rows: %w", err)
	}
	return items, nil
}
