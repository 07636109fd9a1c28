package apiclient

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ROHANDEV-web/school-assistant/internal/auth"
	"github.com/ROHANDEV-web/school-assistant/internal/credits"
	"github.com/ROHANDEV-web/school-assistant/internal/db"
	"github.com/ROHANDEV-web/school-assistant/internal/llm"
	"github.com/ROHANDEV-web/school-assistant/internal/notes"
	"github.com/ROHANDEV-web/school-assistant/internal/quiz"
	"github.com/ROHANDEV-web/school-assistant/internal/stats"
	"github.com/ROHANDEV-web/school-assistant/internal/tools"
	"github.com/ROHANDEV-web/school-assistant/internal/tutor"
)

type fakeProvider struct {
	content string
}

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: f.content}, nil
}

func (f *fakeProvider) Name() string { return "fake" }

// startServer runs the full API stack against an in-memory database.
func startServer(t *testing.T, provider llm.Provider) *Client {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	authStore := auth.NewStore(database)
	creditStore := credits.NewStore(database, 5)
	statStore := stats.NewStore(database)

	r := chi.NewRouter()
	auth.RegisterRoutes(r, authStore)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireUser(authStore))
		auth.RegisterUserRoutes(pr, authStore, creditStore)
		credits.RegisterRoutes(pr, creditStore)
		tutor.RegisterRoutes(pr, tutor.NewService(provider, "test-model"), creditStore, statStore)
		tools.RegisterRoutes(pr, tools.NewService(provider, "test-model", ""), creditStore, statStore)
		quiz.RegisterRoutes(pr, quiz.NewStore(database), authStore)
		notes.RegisterRoutes(pr, notes.NewStore(database))
		stats.RegisterRoutes(pr, statStore)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestRegisterAskAndCredits(t *testing.T) {
	client := startServer(t, &fakeProvider{content: "The answer is 4."})
	ctx := context.Background()

	if err := client.Register(ctx, "alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// The session cookie from registration authenticates /api/me.
	profile, err := client.Me(ctx)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if profile.Username != "alice" {
		t.Errorf("username = %q, want alice", profile.Username)
	}
	if profile.QuestionsLeft != 5 {
		t.Errorf("questions_left = %d, want 5", profile.QuestionsLeft)
	}

	resp, err := client.Ask(ctx, "What is 2+2?", "Maths")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if resp.Answer != "The answer is 4." {
		t.Errorf("answer = %q", resp.Answer)
	}
	if resp.QuestionsLeft == nil || *resp.QuestionsLeft != 4 {
		t.Errorf("questions_left = %v, want 4", resp.QuestionsLeft)
	}
}

func TestLoginFailureIsAPIError(t *testing.T) {
	client := startServer(t, &fakeProvider{content: "x"})
	ctx := context.Background()

	err := client.Login(ctx, "ghost", "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Login error = %v, want *APIError", err)
	}
	if apiErr.Status != 401 {
		t.Errorf("status = %d, want 401", apiErr.Status)
	}
	if apiErr.LimitReached {
		t.Error("limit_reached set on a login failure")
	}
}

func TestLimitReachedError(t *testing.T) {
	client := startServer(t, &fakeProvider{content: "hello"})
	ctx := context.Background()

	if err := client.Register(ctx, "alice", "alice@example.com", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := client.Ask(ctx, "question?", "Maths"); err != nil {
			t.Fatalf("Ask %d: %v", i+1, err)
		}
	}

	_, err := client.Ask(ctx, "one more?", "Maths")
	if !IsLimitReached(err) {
		t.Fatalf("error = %v, want limit reached", err)
	}

	// The ad reward restores one question.
	ad, err := client.WatchAd(ctx)
	if err != nil {
		t.Fatalf("WatchAd: %v", err)
	}
	if !ad.Success || ad.NewLimit != 6 {
		t.Errorf("WatchAd = %+v, want success with new_limit 6", ad)
	}
	if _, err := client.Ask(ctx, "one more?", "Maths"); err != nil {
		t.Errorf("Ask after reward: %v", err)
	}
}

func TestQuizRoundTrip(t *testing.T) {
	quizJSON := `{"quiz":[
		{"question":"2+2?","options":["3","4"],"answer":"4"},
		{"question":"3+3?","options":["5","6"],"answer":"6"}
	]}`
	client := startServer(t, &fakeProvider{content: quizJSON})
	ctx := context.Background()

	if err := client.Register(ctx, "alice", "alice@example.com", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := client.GenerateQuiz(ctx, "Maths", "Arithmetic")
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if len(resp.Quiz) != 2 {
		t.Fatalf("quiz length = %d, want 2", len(resp.Quiz))
	}

	score, err := client.SubmitQuizScore(ctx, 2, 2, "Arithmetic")
	if err != nil {
		t.Fatalf("SubmitQuizScore: %v", err)
	}
	if score.XPEarned != 20 {
		t.Errorf("xp_earned = %d, want 20", score.XPEarned)
	}

	analytics, err := client.Analytics(ctx)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if len(analytics.QuizHistory) != 1 || analytics.QuizHistory[0].Score != "2/2" {
		t.Errorf("quiz history = %+v, want one 2/2 entry", analytics.QuizHistory)
	}

	board, err := client.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) != 1 || board[0].XP != 20 {
		t.Errorf("leaderboard = %+v, want alice with 20 XP", board)
	}
}

func TestDownloadPDFReturnsRawBytes(t *testing.T) {
	client := startServer(t, &fakeProvider{content: "x"})
	ctx := context.Background()

	if err := client.Register(ctx, "alice", "alice@example.com", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	data, err := client.DownloadPDF(ctx, "Notes", "# Notes\n\nSome content.")
	if err != nil {
		t.Fatalf("DownloadPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("DownloadPDF did not return a PDF document")
	}
}

func TestLogoutDropsSession(t *testing.T) {
	client := startServer(t, &fakeProvider{content: "x"})
	ctx := context.Background()

	if err := client.Register(ctx, "alice", "alice@example.com", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := client.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err := client.Me(ctx)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 401 {
		t.Errorf("Me after logout = %v, want 401 APIError", err)
	}
}
