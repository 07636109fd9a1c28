package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// CreditBalance reports how many question credits a user has left
// today, applying the daily reset first.
type CreditBalance interface {
	Remaining(ctx context.Context, userID int64) (int, error)
}

// RegisterRoutes mounts the public account routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Post("/api/register", handleRegister(store))
	r.Post("/api/login", handleLogin(store))
	r.Post("/api/logout", handleLogout(store))
}

// RegisterUserRoutes mounts account routes that require a session. The
// router passed in must already carry RequireUser. balance supplies the
// day-aware credit count shown on the profile.
func RegisterUserRoutes(r chi.Router, store *Store, balance CreditBalance) {
	r.Get("/api/me", handleMe(balance))
	r.Post("/api/update-class", handleUpdateClass(store))
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func setSessionCookie(w http.ResponseWriter, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func handleRegister(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
			http.Error(w, `{"error":"username, email and password are required"}`, http.StatusBadRequest)
			return
		}

		user, err := store.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) {
				http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
				return
			}
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		sess, err := store.CreateSession(r.Context(), user.ID)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		setSessionCookie(w, sess)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user)
	}
}

func handleLogin(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		user, err := store.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
				return
			}
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		sess, err := store.CreateSession(r.Context(), user.ID)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		setSessionCookie(w, sess)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}

func handleLogout(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			store.DeleteSession(r.Context(), cookie.Value)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}
}

// handleMe returns the authenticated user's profile, including how many
// question credits remain today. The count goes through the credit
// balance so a login on a new day shows the restored budget, not the
// row left over from yesterday.
func handleMe(balance CreditBalance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		left, err := balance.Remaining(r.Context(), user.ID)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			*User
			QuestionsLeft int `json:"questions_left"`
		}{user, left})
	}
}

type updateClassRequest struct {
	StudentClass string `json:"student_class"`
}

func handleUpdateClass(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())

		var req updateClassRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		class := strings.TrimSpace(req.StudentClass)
		if class == "" {
			http.Error(w, `{"error":"student_class is required"}`, http.StatusBadRequest)
			return
		}

		if err := store.UpdateClass(r.Context(), user.ID, class); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"new_class": class})
	}
}
