package credits

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ROHANDEV-web/school-assistant/internal/auth"
)

// RegisterRoutes mounts the ad-reward route. Requires RequireUser on r.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Post("/api/watch-ad", handleWatchAd(store))
}

func handleWatchAd(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		newLimit, err := store.GrantAdReward(r.Context(), user.ID)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":   true,
			"new_limit": newLimit,
		})
	}
}
