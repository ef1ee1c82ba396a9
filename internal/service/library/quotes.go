package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quoteforge/internal/models"
)

// ListQuotes returns all quotes belonging to the user, newest first. An
// optional search term filters case-insensitively over content and source
// text. No quotes is an empty result, not an error.
func (s *Service) ListQuotes(ctx context.Context, userID int64, search string) ([]models.Quote, error) {
	if userID <= 0 {
		return []models.Quote{}, nil
	}

	query := `SELECT id, user_id, content, source_text, created_at, updated_at
		FROM quotes WHERE user_id = ?`
	args := []interface{}{userID}
	if search = strings.TrimSpace(search); search != "" {
		query += ` AND (LOWER(content) LIKE ? OR LOWER(COALESCE(source_text, '')) LIKE ?)`
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]models.Quote, 0)
	for rows.Next() {
		var q models.Quote
		var source sql.NullString
		if err := rows.Scan(&q.ID, &q.UserID, &q.Content, &source, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		if source.Valid {
			q.SourceText = &source.String
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// SaveQuote inserts a new quote owned by the user.
func (s *Service) SaveQuote(ctx context.Context, userID int64, content string, sourceText *string) (*models.Quote, error) {
	if userID <= 0 {
		return nil, errors.New("invalid user id")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("content cannot be empty")
	}

	var source sql.NullString
	if sourceText != nil && strings.TrimSpace(*sourceText) != "" {
		source = sql.NullString{String: *sourceText, Valid: true}
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO quotes (user_id, content, source_text, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		userID, content, source, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("save quote: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("quote id: %w", err)
	}
	quote := &models.Quote{ID: id, UserID: userID, Content: content, CreatedAt: now, UpdatedAt: now}
	if source.Valid {
		quote.SourceText = &source.String
	}
	return quote, nil
}

// DeleteQuote removes a quote by id, scoped to its owner. Deleting a quote
// that does not exist or belongs to someone else returns sql.ErrNoRows.
func (s *Service) DeleteQuote(ctx context.Context, userID, quoteID int64) error {
	if quoteID <= 0 {
		return errors.New("invalid quote id")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ? AND user_id = ?`, quoteID, userID)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
