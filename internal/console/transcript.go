// Package console implements the interactive client flows: the chat
// transcript, the tool session state machine, quiz taking, the
// ad-reward countdown and the tab views.
package console

import "sync"

// Role identifies who produced a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one transcript entry. Pending marks the transient
// placeholder shown while a request is in flight.
type Message struct {
	Role    Role
	Text    string
	Pending bool
}

// Transcript is an append-only message log. Messages are never
// removed; a pending placeholder is resolved in place when the
// response (or error) arrives.
type Transcript struct {
	mu       sync.Mutex
	messages []Message
	credits  int
	hasCreds bool
	onCredit func(left int)
}

// NewTranscript creates a transcript. onCredit, if non-nil, observes
// every credit balance update (the display hook).
func NewTranscript(onCredit func(left int)) *Transcript {
	return &Transcript{onCredit: onCredit}
}

// Append adds a finished message.
func (t *Transcript) Append(role Role, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, Message{Role: role, Text: text})
}

// AppendPending adds a placeholder message and returns its handle.
func (t *Transcript) AppendPending(text string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, Message{Role: RoleAssistant, Text: text, Pending: true})
	return len(t.messages) - 1
}

// Resolve replaces the pending placeholder with the final message.
// Resolving an already-resolved handle is a no-op.
func (t *Transcript) Resolve(handle int, role Role, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if handle < 0 || handle >= len(t.messages) || !t.messages[handle].Pending {
		return
	}
	t.messages[handle] = Message{Role: role, Text: text}
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// HasPending reports whether any placeholder is unresolved.
func (t *Transcript) HasPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, m := range t.messages {
		if m.Pending {
			return true
		}
	}
	return false
}

// UpdateCredits records the latest questions-remaining count and
// notifies the display hook.
func (t *Transcript) UpdateCredits(left int) {
	t.mu.Lock()
	t.credits = left
	t.hasCreds = true
	hook := t.onCredit
	t.mu.Unlock()
	if hook != nil {
		hook(left)
	}
}

// Credits returns the last known balance and whether one was ever seen.
func (t *Transcript) Credits() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.credits, t.hasCreds
}
