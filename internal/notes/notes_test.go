package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ROHANDEV-web/school-assistant/internal/auth"
	"github.com/ROHANDEV-web/school-assistant/internal/db"
)

func setup(t *testing.T) (*Store, *auth.User, *auth.User) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	users := auth.NewStore(database)
	ctx := context.Background()
	alice, err := users.Register(ctx, "alice", "alice@example.com", "pw")
	if err != nil {
		t.Fatalf("Register alice: %v", err)
	}
	bob, err := users.Register(ctx, "bob", "bob@example.com", "pw")
	if err != nil {
		t.Fatalf("Register bob: %v", err)
	}
	return NewStore(database), alice, bob
}

func TestCreateListDelete(t *testing.T) {
	store, alice, bob := setup(t)
	ctx := context.Background()

	note, err := store.Create(ctx, alice.ID, "Photosynthesis", "Light + CO2 -> sugar")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.ID == 0 {
		t.Error("Create returned zero ID")
	}

	list, err := store.List(ctx, alice.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Photosynthesis" {
		t.Errorf("List = %+v, want one note titled Photosynthesis", list)
	}

	// Other users see nothing and cannot delete.
	other, err := store.List(ctx, bob.ID)
	if err != nil {
		t.Fatalf("List bob: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("bob's list has %d notes, want 0", len(other))
	}
	deleted, err := store.Delete(ctx, bob.ID, note.ID)
	if err != nil {
		t.Fatalf("Delete as bob: %v", err)
	}
	if deleted {
		t.Error("bob deleted alice's note")
	}

	deleted, err = store.Delete(ctx, alice.ID, note.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Error("Delete did not remove the note")
	}
}

func withUser(req *http.Request, u *auth.User) *http.Request {
	return req.WithContext(auth.WithUser(req.Context(), u))
}

func TestNotesEndpoints(t *testing.T) {
	store, alice, bob := setup(t)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	// Create.
	req := httptest.NewRequest(http.MethodPost, "/api/notes",
		bytes.NewBufferString(`{"title":"Algebra","content":"x = 2"}`))
	req = withUser(req, alice)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created Note
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decoding created note: %v", err)
	}

	// Missing fields are rejected.
	req = withUser(httptest.NewRequest(http.MethodPost, "/api/notes",
		bytes.NewBufferString(`{"title":"","content":""}`)), alice)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty create status = %d, want 400", rec.Code)
	}

	// List.
	req = withUser(httptest.NewRequest(http.MethodGet, "/api/notes", nil), alice)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var list []Note
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("list length = %d, want 1", len(list))
	}

	// Deleting someone else's note is a 404.
	req = withUser(httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/notes/%d", created.ID), nil), bob)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user delete status = %d, want 404", rec.Code)
	}

	// Owner delete succeeds.
	req = withUser(httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/notes/%d", created.ID), nil), alice)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}
