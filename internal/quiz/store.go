package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ROHANDEV-web/school-assistant/internal/db"
)

// Store persists quiz attempts.
type Store struct {
	db *db.DB
}

// NewStore creates a new quiz store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// RecordAttempt saves a completed quiz submission.
func (s *Store) RecordAttempt(ctx context.Context, a Attempt) (*Attempt, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_attempts (id, user_id, topic, score, total, xp_earned, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Topic, a.Score, a.Total, a.XPEarned, a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting attempt: %w", err)
	}
	return &a, nil
}

// History returns a user's attempts, newest first.
func (s *Store) History(ctx context.Context, userID int64, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, topic, score, total, xp_earned, created_at
		 FROM quiz_attempts WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.Topic, &a.Score, &a.Total, &a.XPEarned, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
