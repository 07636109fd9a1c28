package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ROHANDEV-web/school-assistant/internal/apiclient"
)

// newTestClient points an API client at a canned handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := apiclient.New(srv.URL)
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	return client
}

func TestChatFlowAsk(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":"Four.","questions_left":3}`))
	})

	tr := NewTranscript(nil)
	flow := NewChatFlow(client, tr)

	limitReached := flow.Ask(context.Background(), "What is 2+2?", "Maths")
	if limitReached {
		t.Error("limitReached = true on a normal answer")
	}

	msgs := tr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[0].Text != "What is 2+2?" {
		t.Errorf("user message = %+v", msgs[0])
	}
	if msgs[1].Role != RoleAssistant || msgs[1].Text != "Four." {
		t.Errorf("assistant message = %+v", msgs[1])
	}
	if left, ok := tr.Credits(); !ok || left != 3 {
		t.Errorf("credits = %d, %v; want 3, true", left, ok)
	}
}

func TestChatFlowBlankQuestionIsNoOp(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server called for a blank question")
	})

	flow := NewChatFlow(client, NewTranscript(nil))
	if flow.Ask(context.Background(), "   ", "Maths") {
		t.Error("limitReached = true for a blank question")
	}
	if len(flow.Transcript().Messages()) != 0 {
		t.Error("blank question produced transcript messages")
	}
}

func TestChatFlowLimitReached(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Daily limit reached","limit_reached":true}`, http.StatusForbidden)
	})

	tr := NewTranscript(nil)
	flow := NewChatFlow(client, tr)

	if !flow.Ask(context.Background(), "One more?", "Maths") {
		t.Error("limitReached = false on a 403 limit response")
	}

	msgs := tr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	if msgs[1].Role != RoleSystem || msgs[1].Text != "Daily limit reached" {
		t.Errorf("system message = %+v", msgs[1])
	}
	if tr.HasPending() {
		t.Error("placeholder left pending after an error")
	}
}

func TestChatFlowNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := apiclient.New(srv.URL)
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	srv.Close() // connection refused from now on

	tr := NewTranscript(nil)
	flow := NewChatFlow(client, tr)

	if flow.Ask(context.Background(), "Hello?", "") {
		t.Error("limitReached = true on a network error")
	}

	msgs := tr.Messages()
	if len(msgs) != 2 || msgs[1].Role != RoleSystem {
		t.Fatalf("messages = %+v, want user + system", msgs)
	}
	if tr.HasPending() {
		t.Error("placeholder left pending after a network error")
	}
}
