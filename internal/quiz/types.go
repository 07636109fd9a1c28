package quiz

import "time"

// Question is one multiple-choice question. Answer is the correct
// option verbatim, matching one entry of Options.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Attempt is one completed quiz submission.
type Attempt struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"-"`
	Topic     string    `json:"topic"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	XPEarned  int       `json:"xp_earned"`
	CreatedAt time.Time `json:"created_at"`
}

// XPPerCorrect is the experience granted per correct answer.
const XPPerCorrect = 10
