package quiz

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/ROHANDEV-web/school-assistant/internal/auth"
)

// RegisterRoutes mounts the quiz submission route. Requires RequireUser on r.
func RegisterRoutes(r chi.Router, store *Store, users *auth.Store) {
	r.Post("/api/submit-quiz-score", handleSubmitScore(store, users))
}

type submitScoreRequest struct {
	Score int    `json:"score"`
	Total int    `json:"total"`
	Topic string `json:"topic"`
}

func handleSubmitScore(store *Store, users *auth.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		var req submitScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Total <= 0 || req.Score < 0 || req.Score > req.Total {
			http.Error(w, `{"error":"invalid score"}`, http.StatusBadRequest)
			return
		}

		xp := req.Score * XPPerCorrect

		if _, err := store.RecordAttempt(r.Context(), Attempt{
			UserID:   user.ID,
			Topic:    strings.TrimSpace(req.Topic),
			Score:    req.Score,
			Total:    req.Total,
			XPEarned: xp,
		}); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if err := users.AddXP(r.Context(), user.ID, xp); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		logrus.WithFields(logrus.Fields{
			"user":  user.Username,
			"topic": req.Topic,
			"score": req.Score,
			"total": req.Total,
			"xp":    xp,
		}).Info("quiz submitted")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"xp_earned": xp})
	}
}
