// Package credits enforces the daily question budget and the ad-reward
// limit extension.
package credits

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ROHANDEV-web/school-assistant/internal/db"
)

// ErrLimitReached signals that the user has exhausted today's questions.
var ErrLimitReached = errors.New("daily limit reached")

// DefaultDailyLimit is the question budget restored at the start of each day.
const DefaultDailyLimit = 5

// Store manages per-user question credits.
type Store struct {
	db         *db.DB
	dailyLimit int
	now        func() time.Time
}

// NewStore creates a credits store with the given reset-day limit.
func NewStore(database *db.DB, dailyLimit int) *Store {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	return &Store{db: database, dailyLimit: dailyLimit, now: time.Now}
}

// SetNow overrides the clock. Test hook.
func (s *Store) SetNow(now func() time.Time) { s.now = now }

func (s *Store) today() string {
	return s.now().UTC().Format("2006-01-02")
}

// ResetIfNewDay restores the default budget the first time a user is
// seen on a new day. Returns the user's current (possibly reset)
// questions_today and daily_limit.
func (s *Store) ResetIfNewDay(ctx context.Context, userID int64) (used, limit int, err error) {
	today := s.today()
	var lastActive string
	err = s.db.QueryRowContext(ctx,
		`SELECT questions_today, daily_limit, last_active_date FROM users WHERE id = ?`, userID,
	).Scan(&used, &limit, &lastActive)
	if err != nil {
		return 0, 0, fmt.Errorf("reading credit state: %w", err)
	}

	if lastActive != today {
		used, limit = 0, s.dailyLimit
		_, err = s.db.ExecContext(ctx,
			`UPDATE users SET questions_today = 0, daily_limit = ?, last_active_date = ? WHERE id = ?`,
			limit, today, userID,
		)
		if err != nil {
			return 0, 0, fmt.Errorf("resetting daily credits: %w", err)
		}
	}
	return used, limit, nil
}

// Consume spends one question credit. Returns the remaining count, or
// ErrLimitReached without spending if the budget is exhausted.
func (s *Store) Consume(ctx context.Context, userID int64) (left int, err error) {
	used, limit, err := s.ResetIfNewDay(ctx, userID)
	if err != nil {
		return 0, err
	}
	if used >= limit {
		return 0, ErrLimitReached
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET questions_today = questions_today + 1 WHERE id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("consuming credit: %w", err)
	}
	return limit - used - 1, nil
}

// Remaining reports the current credit balance without spending.
func (s *Store) Remaining(ctx context.Context, userID int64) (int, error) {
	used, limit, err := s.ResetIfNewDay(ctx, userID)
	if err != nil {
		return 0, err
	}
	left := limit - used
	if left < 0 {
		left = 0
	}
	return left, nil
}

// GrantAdReward raises today's limit by one in exchange for a completed
// ad view. Returns the new limit.
func (s *Store) GrantAdReward(ctx context.Context, userID int64) (int, error) {
	if _, _, err := s.ResetIfNewDay(ctx, userID); err != nil {
		return 0, err
	}
	var newLimit int
	err := s.db.QueryRowContext(ctx,
		`UPDATE users SET daily_limit = daily_limit + 1 WHERE id = ? RETURNING daily_limit`, userID,
	).Scan(&newLimit)
	if err != nil {
		return 0, fmt.Errorf("granting ad reward: %w", err)
	}
	return newLimit, nil
}

// WriteLimitReached emits the distinguished limit-reached error body.
// Clients branch on the limit_reached flag to offer the ad flow.
func WriteLimitReached(w http.ResponseWriter) {
	http.Error(w, `{"error":"Daily limit reached","limit_reached":true}`, http.StatusForbidden)
}
