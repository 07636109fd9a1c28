// Package notes implements the saved study-notes surface.
package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/ROHANDEV-web/school-assistant/internal/db"
)

// Note is one saved study note.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists notes.
type Store struct {
	db *db.DB
}

// NewStore creates a new notes store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create saves a note for the user.
func (s *Store) Create(ctx context.Context, userID int64, title, content string) (*Note, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (user_id, title, content, created_at) VALUES (?, ?, ?, ?)`,
		userID, title, content, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading note id: %w", err)
	}
	return &Note{ID: id, UserID: userID, Title: title, Content: content, CreatedAt: now}, nil
}

// List returns the user's notes, newest first.
func (s *Store) List(ctx context.Context, userID int64) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, content, created_at FROM notes
		 WHERE user_id = ? ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var list []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// Delete removes a note if it belongs to the user. Returns whether a
// row was deleted.
func (s *Store) Delete(ctx context.Context, userID, noteID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND user_id = ?`, noteID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting note: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
