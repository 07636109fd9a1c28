package console

import (
	"context"
	"errors"
	"strings"

	"github.com/ROHANDEV-web/school-assistant/internal/apiclient"
)

// ChatFlow drives one question/answer cycle against the transcript:
// user message, pending placeholder, then the reconciled assistant or
// system message. Errors are surfaced as system messages, never
// returned; the flow reports whether the daily limit was hit so the
// caller can offer the ad reward.
type ChatFlow struct {
	client     *apiclient.Client
	transcript *Transcript
}

// NewChatFlow creates a chat flow writing into the given transcript.
func NewChatFlow(client *apiclient.Client, transcript *Transcript) *ChatFlow {
	return &ChatFlow{client: client, transcript: transcript}
}

// Transcript returns the flow's transcript.
func (f *ChatFlow) Transcript() *Transcript { return f.transcript }

// Ask submits one question. A blank question is a silent no-op.
func (f *ChatFlow) Ask(ctx context.Context, question, subject string) (limitReached bool) {
	question = strings.TrimSpace(question)
	if question == "" {
		return false
	}

	f.transcript.Append(RoleUser, question)
	pending := f.transcript.AppendPending("Thinking...")

	resp, err := f.client.Ask(ctx, question, subject)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = "Limit Reached"
			}
			f.transcript.Resolve(pending, RoleSystem, msg)
			return apiErr.LimitReached
		}
		f.transcript.Resolve(pending, RoleSystem, "Network error: "+err.Error())
		return false
	}

	f.transcript.Resolve(pending, RoleAssistant, resp.Answer)
	if resp.QuestionsLeft != nil {
		f.transcript.UpdateCredits(*resp.QuestionsLeft)
	}
	return false
}
