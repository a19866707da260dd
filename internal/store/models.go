package store

import (
	"time"
)

// LoadHistory represents the 'load_history' table: one row per network
// load of the spreadsheet.
type LoadHistory struct {
	ID           int64     `db:"id" json:"id"`
	Source       string    `db:"source" json:"source"`
	Tabs         string    `db:"tabs" json:"tabs"`
	TriggerType  string    `db:"trigger_type" json:"trigger_type"`
	Status       string    `db:"status" json:"status"`
	TabCount     int       `db:"tab_count" json:"tab_count"`
	RowCount     int       `db:"row_count" json:"row_count"`
	ErrorMessage string    `db:"error_message" json:"error_message,omitempty"`
	DurationMs   int64     `db:"duration_ms" json:"duration_ms"`
	ProcessedAt  time.Time `db:"processed_at" json:"processed_at"`
}
