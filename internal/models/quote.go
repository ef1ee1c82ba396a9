package models

import "time"

// Quote is a saved generation result. Rows are append-only: a quote is
// created on explicit save and removed on explicit delete, never updated.
type Quote struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Content    string    `json:"content"`
	SourceText *string   `json:"source_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
