package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/ROHANDEV-web/school-assistant/internal/apiclient"
	"github.com/ROHANDEV-web/school-assistant/internal/quiz"
)

var (
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrAlreadySubmitted   = errors.New("quiz already submitted")
)

// QuizFlow holds one generated quiz while the student answers it.
// Selecting an option overwrites any previous choice for that
// question; submission is a single all-or-nothing action.
type QuizFlow struct {
	client    *apiclient.Client
	topic     string
	questions []quiz.Question
	answers   map[int]string
	submitted bool
}

// QuizResult is the outcome of a submitted quiz.
type QuizResult struct {
	Score    int
	Total    int
	XPEarned int
}

// NewQuizFlow starts a quiz session over the given questions.
func NewQuizFlow(client *apiclient.Client, topic string, questions []quiz.Question) *QuizFlow {
	return &QuizFlow{
		client:    client,
		topic:     topic,
		questions: questions,
		answers:   map[int]string{},
	}
}

// Topic returns the quiz topic.
func (q *QuizFlow) Topic() string { return q.topic }

// Questions returns the quiz questions.
func (q *QuizFlow) Questions() []quiz.Question { return q.questions }

// Select records the chosen option for a question, replacing any
// earlier choice (last write wins).
func (q *QuizFlow) Select(index int, option string) error {
	if index < 0 || index >= len(q.questions) {
		return ErrQuestionOutOfRange
	}
	q.answers[index] = option
	return nil
}

// Answer returns the recorded choice for a question.
func (q *QuizFlow) Answer(index int) (string, bool) {
	ans, ok := q.answers[index]
	return ans, ok
}

// Score computes the local score; unanswered questions count as wrong.
func (q *QuizFlow) Score() int {
	return quiz.Score(q.questions, q.answers)
}

// Submit scores the quiz and reports it for the XP reward. A flow can
// be submitted at most once.
func (q *QuizFlow) Submit(ctx context.Context) (*QuizResult, error) {
	if q.submitted {
		return nil, ErrAlreadySubmitted
	}

	score := q.Score()
	total := len(q.questions)

	resp, err := q.client.SubmitQuizScore(ctx, score, total, q.topic)
	if err != nil {
		return nil, fmt.Errorf("submitting score: %w", err)
	}
	q.submitted = true

	return &QuizResult{Score: score, Total: total, XPEarned: resp.XPEarned}, nil
}
