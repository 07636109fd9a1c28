package auth

import "time"

// User is a registered student account.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	StudentClass   string    `json:"student_class"`
	XP             int       `json:"xp"`
	QuestionsToday int       `json:"questions_today"`
	DailyLimit     int       `json:"daily_limit"`
	LastActiveDate string    `json:"-"` // YYYY-MM-DD, drives the daily credit reset
	CreatedAt      time.Time `json:"created_at"`
}

// QuestionsLeft returns the remaining question credits recorded on the
// row. It does not apply the daily reset; day-aware callers go through
// a CreditBalance instead.
func (u *User) QuestionsLeft() int {
	left := u.DailyLimit - u.QuestionsToday
	if left < 0 {
		return 0
	}
	return left
}

// Session is a server-side login session referenced by a cookie.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}
