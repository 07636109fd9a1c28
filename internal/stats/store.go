// Package stats serves the analytics and leaderboard read views.
package stats

import (
	"context"
	"fmt"

	"github.com/ROHANDEV-web/school-assistant/internal/db"
)

// LeaderboardEntry is one row of the XP ranking.
type LeaderboardEntry struct {
	Username string `json:"username"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
}

// QuizHistoryEntry is one past quiz result, score rendered "s/t".
type QuizHistoryEntry struct {
	Topic string `json:"topic"`
	Score string `json:"score"`
}

// Analytics is the per-user activity summary.
type Analytics struct {
	Subjects    map[string]int     `json:"subjects"`
	QuizHistory []QuizHistoryEntry `json:"quiz_history"`
}

// XPPerLevel is how much experience advances one level.
const XPPerLevel = 100

// Level converts an XP total into a level number, starting at 1.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// Store reads aggregate activity data.
type Store struct {
	db *db.DB
}

// NewStore creates a new stats store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// LogQuestion records an asked question for the subject breakdown.
func (s *Store) LogQuestion(ctx context.Context, userID int64, subject, tool string) error {
	if subject == "" {
		subject = "General"
	}
	if tool == "" {
		tool = "chat"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO question_log (user_id, subject, tool) VALUES (?, ?, ?)`,
		userID, subject, tool)
	if err != nil {
		return fmt.Errorf("logging question: %w", err)
	}
	return nil
}

// UserAnalytics builds the subject breakdown and quiz history for a user.
func (s *Store) UserAnalytics(ctx context.Context, userID int64) (*Analytics, error) {
	out := &Analytics{
		Subjects:    map[string]int{},
		QuizHistory: []QuizHistoryEntry{},
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, COUNT(*) FROM question_log WHERE user_id = ? GROUP BY subject`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying subject breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var subject string
		var count int
		if err := rows.Scan(&subject, &count); err != nil {
			return nil, fmt.Errorf("scanning subject row: %w", err)
		}
		out.Subjects[subject] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hrows, err := s.db.QueryContext(ctx,
		`SELECT topic, score, total FROM quiz_attempts
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT 20`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying quiz history: %w", err)
	}
	defer hrows.Close()
	for hrows.Next() {
		var topic string
		var score, total int
		if err := hrows.Scan(&topic, &score, &total); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		out.QuizHistory = append(out.QuizHistory, QuizHistoryEntry{
			Topic: topic,
			Score: fmt.Sprintf("%d/%d", score, total),
		})
	}
	return out, hrows.Err()
}

// Leaderboard returns the top users by XP.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT username, xp FROM users ORDER BY xp DESC, username ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.XP); err != nil {
			return nil, fmt.Errorf("scanning leaderboard row: %w", err)
		}
		e.Level = Level(e.XP)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
