// Package tools implements the content-generation tools: study notes,
// quizzes, vision Q&A and PDF chat.
package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ROHANDEV-web/school-assistant/internal/llm"
	"github.com/ROHANDEV-web/school-assistant/internal/quiz"
)

// ErrBadQuizOutput signals that the model produced an unusable quiz.
var ErrBadQuizOutput = errors.New("model returned malformed quiz")

const (
	maxTokens   = 1024
	quizTokens  = 2048
	temperature = 0.7

	// pdfContextLimit caps how much extracted document text is sent
	// to the model.
	pdfContextLimit = 8000
)

// Service runs all generation tools through the configured LLM.
type Service struct {
	provider    llm.Provider
	model       string
	visionModel string
}

// NewService creates a tools service. visionModel may be empty, in
// which case the chat model handles vision requests too.
func NewService(provider llm.Provider, model, visionModel string) *Service {
	if visionModel == "" {
		visionModel = model
	}
	return &Service{provider: provider, model: model, visionModel: visionModel}
}

// GenerateNotes produces markdown study notes for a topic.
func (s *Service) GenerateNotes(ctx context.Context, subject, topic string) (string, error) {
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: notesSystemPrompt},
			{Role: llm.RoleUser, Content: buildNotesPrompt(subject, topic)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generating notes: %w", err)
	}
	return resp.Content, nil
}

type quizPayload struct {
	Quiz []quiz.Question `json:"quiz"`
}

// GenerateQuiz produces a multiple-choice quiz for a topic.
func (s *Service) GenerateQuiz(ctx context.Context, subject, topic string) ([]quiz.Question, error) {
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: quizSystemPrompt},
			{Role: llm.RoleUser, Content: buildQuizPrompt(subject, topic)},
		},
		MaxTokens:   quizTokens,
		Temperature: temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("generating quiz: %w", err)
	}

	questions, err := parseQuiz(resp.Content)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// parseQuiz decodes and validates the model's quiz JSON.
func parseQuiz(content string) ([]quiz.Question, error) {
	content = stripCodeFence(content)

	var payload quizPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadQuizOutput, err)
	}
	if len(payload.Quiz) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrBadQuizOutput)
	}
	for i, q := range payload.Quiz {
		if strings.TrimSpace(q.Question) == "" || len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d incomplete", ErrBadQuizOutput, i+1)
		}
		valid := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("%w: question %d answer not among options", ErrBadQuizOutput, i+1)
		}
	}
	return payload.Quiz, nil
}

// stripCodeFence removes a surrounding markdown fence some models emit
// even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// VisionAnswer answers a question about an uploaded image.
func (s *Service) VisionAnswer(ctx context.Context, imageData []byte, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		question = defaultVisionQuestion
	}

	mime := http.DetectContentType(imageData)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(imageData))

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.visionModel,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: visionSystemPrompt},
			{Role: llm.RoleUser, Content: question, ImageURLs: []string{dataURL}},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("vision request: %w", err)
	}
	return resp.Content, nil
}

// PDFAnswer answers a question about an uploaded PDF.
func (s *Service) PDFAnswer(ctx context.Context, pdfData []byte, question string) (string, error) {
	text, err := extractPDFText(pdfData)
	if err != nil {
		return "", err
	}
	if len(text) > pdfContextLimit {
		text = text[:pdfContextLimit]
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: pdfSystemPrompt},
			{Role: llm.RoleUser, Content: buildPDFPrompt(question, text)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("pdf chat request: %w", err)
	}
	return resp.Content, nil
}
