package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter hands out the store-wide insertion sequence stamped on
// every question and event row. Questions are listed in sequence order.
// The ent builder has no atomic increment, so this is raw SQL.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	const seed = `INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`
	if _, err := db.Exec(seed); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next claims the next sequence number.
func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	const bump = `UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`
	var n int64
	if err := c.db.QueryRowContext(ctx, bump).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}

// timeLayout is the on-disk timestamp format. It sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
