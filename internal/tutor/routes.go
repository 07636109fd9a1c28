package tutor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/ROHANDEV-web/school-assistant/internal/auth"
	"github.com/ROHANDEV-web/school-assistant/internal/credits"
	"github.com/ROHANDEV-web/school-assistant/internal/stats"
)

// RegisterRoutes mounts the ask routes. Requires RequireUser on r.
func RegisterRoutes(r chi.Router, svc *Service, creditStore *credits.Store, statStore *stats.Store) {
	r.Post("/api/ask", handleAsk(svc, creditStore, statStore))
	r.Get("/api/ws/chat", handleChatSocket(svc, creditStore, statStore))
}

type askRequest struct {
	Question string `json:"question"`
	Subject  string `json:"subject"`
}

type askResponse struct {
	Answer        string `json:"answer"`
	QuestionsLeft *int   `json:"questions_left,omitempty"`
}

// answerQuestion runs the shared ask flow: limit check, refusal check,
// LLM call, credit spend, subject logging. The returned questions_left
// pointer is nil when no credit was consumed (refused subjects).
func answerQuestion(r *http.Request, svc *Service, creditStore *credits.Store, statStore *stats.Store, question, subject string) (*askResponse, error) {
	ctx := r.Context()
	user := auth.UserFromContext(ctx)

	if IsForbiddenSubject(subject) {
		return &askResponse{Answer: RefusalAnswer}, nil
	}

	left, err := creditStore.Remaining(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if left <= 0 {
		return nil, credits.ErrLimitReached
	}

	answer, err := svc.Answer(ctx, subject, question)
	if err != nil {
		return nil, err
	}

	// Spend the credit only after a successful completion.
	left, err = creditStore.Consume(ctx, user.ID)
	if err != nil && !errors.Is(err, credits.ErrLimitReached) {
		return nil, err
	}
	if err := statStore.LogQuestion(ctx, user.ID, subject, "chat"); err != nil {
		logrus.WithError(err).Warn("logging question failed")
	}

	logrus.WithFields(logrus.Fields{
		"user":    user.Username,
		"subject": subject,
		"left":    left,
	}).Info("question answered")

	return &askResponse{Answer: answer, QuestionsLeft: &left}, nil
}

func handleAsk(svc *Service, creditStore *credits.Store, statStore *stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Question) == "" {
			http.Error(w, `{"error":"question is required"}`, http.StatusBadRequest)
			return
		}

		resp, err := answerQuestion(r, svc, creditStore, statStore, req.Question, req.Subject)
		if err != nil {
			if errors.Is(err, credits.ErrLimitReached) {
				credits.WriteLimitReached(w)
				return
			}
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
