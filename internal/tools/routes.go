package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/ROHANDEV-web/school-assistant/internal/auth"
	"github.com/ROHANDEV-web/school-assistant/internal/credits"
	"github.com/ROHANDEV-web/school-assistant/internal/markdown"
	"github.com/ROHANDEV-web/school-assistant/internal/quiz"
	"github.com/ROHANDEV-web/school-assistant/internal/stats"
)

// maxUploadBytes caps image and PDF uploads.
const maxUploadBytes = 16 << 20

// RegisterRoutes mounts all generation tool routes. Requires
// RequireUser on r.
func RegisterRoutes(r chi.Router, svc *Service, creditStore *credits.Store, statStore *stats.Store) {
	h := &handlers{svc: svc, credits: creditStore, stats: statStore}
	r.Post("/api/generate-notes", h.generateNotes)
	r.Post("/api/generate-quiz", h.generateQuiz)
	r.Post("/api/vision-ask", h.visionAsk)
	r.Post("/api/pdf-chat", h.pdfChat)
	r.Post("/api/download-pdf", h.downloadPDF)
}

type handlers struct {
	svc     *Service
	credits *credits.Store
	stats   *stats.Store
}

type generateRequest struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
}

// ensureCredit rejects the request when today's budget is spent.
func (h *handlers) ensureCredit(w http.ResponseWriter, r *http.Request) bool {
	user := auth.UserFromContext(r.Context())
	left, err := h.credits.Remaining(r.Context(), user.ID)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return false
	}
	if left <= 0 {
		credits.WriteLimitReached(w)
		return false
	}
	return true
}

// spendCredit consumes one credit after a successful generation and
// logs the usage for analytics.
func (h *handlers) spendCredit(r *http.Request, subject, tool string) int {
	user := auth.UserFromContext(r.Context())
	left, err := h.credits.Consume(r.Context(), user.ID)
	if err != nil && !errors.Is(err, credits.ErrLimitReached) {
		logrus.WithError(err).Warn("consuming credit failed")
	}
	if err := h.stats.LogQuestion(r.Context(), user.ID, subject, tool); err != nil {
		logrus.WithError(err).Warn("logging question failed")
	}
	return left
}

func (h *handlers) generateNotes(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		http.Error(w, `{"error":"topic is required"}`, http.StatusBadRequest)
		return
	}
	if !h.ensureCredit(w, r) {
		return
	}

	notes, err := h.svc.GenerateNotes(r.Context(), req.Subject, req.Topic)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	left := h.spendCredit(r, req.Subject, "notes")

	html, err := markdown.Render(notes)
	if err != nil {
		logrus.WithError(err).Warn("rendering notes markdown failed")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"notes":          notes,
		"notes_html":     html,
		"questions_left": left,
	})
}

func (h *handlers) generateQuiz(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		http.Error(w, `{"error":"topic is required"}`, http.StatusBadRequest)
		return
	}
	if !h.ensureCredit(w, r) {
		return
	}

	questions, err := h.svc.GenerateQuiz(r.Context(), req.Subject, req.Topic)
	if err != nil {
		if errors.Is(err, ErrBadQuizOutput) {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadGateway)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	left := h.spendCredit(r, req.Subject, "quiz")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Quiz          []quiz.Question `json:"quiz"`
		QuestionsLeft int             `json:"questions_left"`
	}{questions, left})
}

// readUpload pulls one uploaded file out of a multipart request.
func readUpload(r *http.Request, field string) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("parsing multipart form: %w", err)
	}
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %s file", field)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s upload: %w", field, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty %s upload", field)
	}
	return data, nil
}

func (h *handlers) visionAsk(w http.ResponseWriter, r *http.Request) {
	image, err := readUpload(r, "image")
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	if !h.ensureCredit(w, r) {
		return
	}

	answer, err := h.svc.VisionAnswer(r.Context(), image, r.FormValue("question"))
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	left := h.spendCredit(r, "Vision", "vision")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"answer":         answer,
		"questions_left": left,
	})
}

func (h *handlers) pdfChat(w http.ResponseWriter, r *http.Request) {
	doc, err := readUpload(r, "pdf")
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		http.Error(w, `{"error":"question is required"}`, http.StatusBadRequest)
		return
	}
	if !h.ensureCredit(w, r) {
		return
	}

	answer, err := h.svc.PDFAnswer(r.Context(), doc, question)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	left := h.spendCredit(r, "PDF", "pdf")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"answer":         answer,
		"questions_left": left,
	})
}

type downloadRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *handlers) downloadPDF(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, `{"error":"content is required"}`, http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		req.Title = "Study Notes"
	}

	data, err := BuildDocument(req.Title, req.Content)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="study_doc.pdf"`)
	w.Write(data)
}
