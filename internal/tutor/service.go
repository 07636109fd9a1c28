// Package tutor implements the AI question-answering flow.
package tutor

import (
	"context"
	"fmt"

	"github.com/ROHANDEV-web/school-assistant/internal/llm"
)

// Completion limits mirror the production tutoring settings.
const (
	maxTokens   = 1024
	temperature = 0.7
)

// Service answers student questions through the configured LLM.
type Service struct {
	provider llm.Provider
	model    string
}

// NewService creates a tutor service.
func NewService(provider llm.Provider, model string) *Service {
	return &Service{provider: provider, model: model}
}

// Answer asks the LLM one subject-framed question.
func (s *Service) Answer(ctx context.Context, subject, question string) (string, error) {
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: BuildUserPrompt(subject, question)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("completing question: %w", err)
	}
	return resp.Content, nil
}
