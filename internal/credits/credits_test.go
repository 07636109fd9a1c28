package credits

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ROHANDEV-web/school-assistant/internal/auth"
	"github.com/ROHANDEV-web/school-assistant/internal/db"
)

func setupStore(t *testing.T) (*Store, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database, 5), database
}

func createUser(t *testing.T, database *db.DB, lastActive string) int64 {
	t.Helper()
	res, err := database.Exec(
		`INSERT INTO users (username, email, password_hash, last_active_date) VALUES (?, ?, ?, ?)`,
		"alice", "alice@example.com", "x", lastActive,
	)
	if err != nil {
		t.Fatalf("inserting user: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("LastInsertId: %v", err)
	}
	return id
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func TestConsumeCountsDown(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()
	userID := createUser(t, database, today())

	for want := 4; want >= 0; want-- {
		left, err := store.Consume(ctx, userID)
		if err != nil {
			t.Fatalf("Consume: %v", err)
		}
		if left != want {
			t.Errorf("Consume left = %d, want %d", left, want)
		}
	}

	if _, err := store.Consume(ctx, userID); err != ErrLimitReached {
		t.Errorf("Consume past limit = %v, want ErrLimitReached", err)
	}

	left, err := store.Remaining(ctx, userID)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if left != 0 {
		t.Errorf("Remaining = %d, want 0", left)
	}
}

func TestDailyReset(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()
	userID := createUser(t, database, today())

	for i := 0; i < 5; i++ {
		if _, err := store.Consume(ctx, userID); err != nil {
			t.Fatalf("Consume: %v", err)
		}
	}

	// Next day: the budget comes back, even after an ad raised the limit.
	if _, err := store.GrantAdReward(ctx, userID); err != nil {
		t.Fatalf("GrantAdReward: %v", err)
	}
	store.SetNow(func() time.Time { return time.Now().UTC().Add(24 * time.Hour) })

	left, err := store.Remaining(ctx, userID)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if left != 5 {
		t.Errorf("Remaining after reset = %d, want 5", left)
	}
}

func TestGrantAdReward(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()
	userID := createUser(t, database, today())

	newLimit, err := store.GrantAdReward(ctx, userID)
	if err != nil {
		t.Fatalf("GrantAdReward: %v", err)
	}
	if newLimit != 6 {
		t.Errorf("new limit = %d, want 6", newLimit)
	}

	left, err := store.Remaining(ctx, userID)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if left != 6 {
		t.Errorf("Remaining after reward = %d, want 6", left)
	}
}

func TestWriteLimitReached(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteLimitReached(rec)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	var body struct {
		Error        string `json:"error"`
		LimitReached bool   `json:"limit_reached"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error != "Daily limit reached" {
		t.Errorf("error = %q, want %q", body.Error, "Daily limit reached")
	}
	if !body.LimitReached {
		t.Error("limit_reached = false, want true")
	}
}

func TestMeResetsOnNewDay(t *testing.T) {
	store, database := setupStore(t)
	userID := createUser(t, database, "2026-01-01")
	if _, err := database.Exec(`UPDATE users SET questions_today = 5 WHERE id = ?`, userID); err != nil {
		t.Fatalf("updating user: %v", err)
	}

	authStore := auth.NewStore(database)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			user, err := authStore.GetByID(req.Context(), userID)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			next.ServeHTTP(w, req.WithContext(auth.WithUser(req.Context(), user)))
		})
	})
	auth.RegisterUserRoutes(r, authStore, store)

	// The profile must show the restored budget on a new day, not the
	// exhausted row carried over from yesterday.
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var me struct {
		QuestionsLeft int `json:"questions_left"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&me); err != nil {
		t.Fatalf("decoding me response: %v", err)
	}
	if me.QuestionsLeft != 5 {
		t.Errorf("me questions_left = %d, want 5", me.QuestionsLeft)
	}
}

func TestWatchAdEndpoint(t *testing.T) {
	store, database := setupStore(t)
	userID := createUser(t, database, today())

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodPost, "/api/watch-ad", nil)
	req = req.WithContext(auth.WithUser(req.Context(), &auth.User{ID: userID}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success  bool `json:"success"`
		NewLimit int  `json:"new_limit"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if body.NewLimit != 6 {
		t.Errorf("new_limit = %d, want 6", body.NewLimit)
	}
}
