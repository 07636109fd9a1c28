package apiclient

import (
	"errors"
	"fmt"

	"github.com/ROHANDEV-web/school-assistant/internal/quiz"
	"github.com/ROHANDEV-web/school-assistant/internal/stats"
)

// APIError is an application-level error returned by the backend: the
// request reached the server and was rejected with a JSON error body.
// Transport failures are returned as ordinary wrapped errors instead.
type APIError struct {
	Status       int
	Message      string
	LimitReached bool
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// IsLimitReached reports whether err is the distinguished limit-reached
// application error.
func IsLimitReached(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.LimitReached
}

// AskResponse is the /api/ask result. QuestionsLeft is nil when the
// server answered without spending a credit (refused subjects).
type AskResponse struct {
	Answer        string `json:"answer"`
	QuestionsLeft *int   `json:"questions_left"`
}

// NotesResponse is the /api/generate-notes result.
type NotesResponse struct {
	Notes         string `json:"notes"`
	NotesHTML     string `json:"notes_html"`
	QuestionsLeft int    `json:"questions_left"`
}

// QuizResponse is the /api/generate-quiz result.
type QuizResponse struct {
	Quiz          []quiz.Question `json:"quiz"`
	QuestionsLeft int             `json:"questions_left"`
}

// AnswerResponse is the shared vision-ask / pdf-chat result.
type AnswerResponse struct {
	Answer        string `json:"answer"`
	QuestionsLeft int    `json:"questions_left"`
}

// WatchAdResponse is the /api/watch-ad result.
type WatchAdResponse struct {
	Success  bool `json:"success"`
	NewLimit int  `json:"new_limit"`
}

// SubmitScoreResponse is the /api/submit-quiz-score result.
type SubmitScoreResponse struct {
	XPEarned int `json:"xp_earned"`
}

// UpdateClassResponse is the /api/update-class result.
type UpdateClassResponse struct {
	NewClass string `json:"new_class"`
}

// Profile is the /api/me result.
type Profile struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	StudentClass  string `json:"student_class"`
	XP            int    `json:"xp"`
	QuestionsLeft int    `json:"questions_left"`
	DailyLimit    int    `json:"daily_limit"`
}

// Analytics and LeaderboardEntry mirror the server-side read views.
type (
	Analytics        = stats.Analytics
	LeaderboardEntry = stats.LeaderboardEntry
)
