package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type LoadHistoryStore struct {
	db *sqlx.DB
}

var (
	TriggerTypeManual    = "manual"
	TriggerTypeScheduled = "scheduled"
)

var (
	StatusInProgress = "in_progress"
	StatusSuccess    = "success"
	StatusFailure    = "failure"
)

// DefaultHistoryLimit is used when GetLatest is called with a non-positive limit.
const DefaultHistoryLimit = 20

func (lh *LoadHistoryStore) InsertLoadHistory(ctx context.Context, history *LoadHistory) error {
	query := `INSERT INTO load_history (
		source,
		tabs,
		trigger_type,
		status,
		tab_count,
		row_count,
		error_message,
		duration_ms,
		processed_at
	) VALUES (
		:source,
		:tabs,
		:trigger_type,
		:status,
		:tab_count,
		:row_count,
		:error_message,
		:duration_ms,
		:processed_at
	) RETURNING id`

	rows, err := lh.db.NamedQueryContext(ctx, query, history)
	if err != nil {
		return fmt.Errorf("failed to insert load history: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&history.ID); err != nil {
			return fmt.Errorf("failed to scan load history id: %w", err)
		}
	}
	return rows.Err()
}

// UpdateLoadResult stores the final status, counters, error text and duration
// of a previously inserted load.
func (lh *LoadHistoryStore) UpdateLoadResult(ctx context.Context, history *LoadHistory) error {
	query := `UPDATE load_history SET
		status = :status,
		tab_count = :tab_count,
		row_count = :row_count,
		error_message = :error_message,
		duration_ms = :duration_ms
	WHERE id = :id`

	res, err := lh.db.NamedExecContext(ctx, query, history)
	if err != nil {
		return fmt.Errorf("failed to update load history %d: %w", history.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("load history %d not found", history.ID)
	}
	return nil
}

// GetLatest returns up to limit loads, newest first.
func (lh *LoadHistoryStore) GetLatest(ctx context.Context, limit int) ([]LoadHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := lh.db.Rebind(`SELECT id, source, tabs, trigger_type, status, tab_count, row_count,
		error_message, duration_ms, processed_at
	FROM load_history
	ORDER BY processed_at DESC, id DESC
	LIMIT ?`)

	result := []LoadHistory{}
	if err := lh.db.SelectContext(ctx, &result, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list load history: %w", err)
	}
	return result, nil
}
