package console

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ROHANDEV-web/school-assistant/internal/apiclient"
)

// Tool identifies one content-generation mode.
type Tool string

const (
	ToolNotes  Tool = "notes"
	ToolQuiz   Tool = "quiz"
	ToolVision Tool = "vision"
	ToolPDF    Tool = "pdf"
)

// ToolState is the tool session state machine.
type ToolState int

const (
	StateClosed ToolState = iota
	StateForm
	StateLoading
	StateResult
)

var (
	ErrNoToolOpen    = errors.New("no tool session open")
	ErrUnknownTool   = errors.New("unknown tool")
	ErrTopicRequired = errors.New("topic is required")
	ErrFileRequired  = errors.New("file is required")
)

// ToolInput is the form content for one generation.
type ToolInput struct {
	Subject  string
	Topic    string
	FileName string
	FileData []byte
}

// ToolResult is a finished generation: either rendered content (notes,
// vision, pdf) or a quiz handoff.
type ToolResult struct {
	Tool          Tool
	Content       string
	Quiz          *QuizFlow
	QuestionsLeft int
}

// ToolFlow owns one tool session at a time. State is scoped to the
// flow instance, not package-global, so concurrent sessions cannot
// corrupt each other; starting a new generation cancels any request
// the previous one still has in flight.
type ToolFlow struct {
	client *apiclient.Client

	mu     sync.Mutex
	state  ToolState
	tool   Tool
	gen    uint64
	cancel context.CancelFunc
}

// NewToolFlow creates a closed tool flow.
func NewToolFlow(client *apiclient.Client) *ToolFlow {
	return &ToolFlow{client: client}
}

// State returns the current session state.
func (f *ToolFlow) State() ToolState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ActiveTool returns the open tool, if any.
func (f *ToolFlow) ActiveTool() (Tool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tool, f.state != StateClosed
}

// Open starts a session for the given tool, replacing any open one.
func (f *ToolFlow) Open(tool Tool) error {
	switch tool {
	case ToolNotes, ToolQuiz, ToolVision, ToolPDF:
	default:
		return ErrUnknownTool
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelInFlight()
	f.tool = tool
	f.state = StateForm
	return nil
}

// Close ends the session and clears its state.
func (f *ToolFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelInFlight()
	f.tool = ""
	f.state = StateClosed
}

// cancelInFlight aborts a superseded generation and advances the
// generation counter so the aborted call knows it no longer owns the
// session. Callers hold f.mu.
func (f *ToolFlow) cancelInFlight() {
	f.gen++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// validate enforces the per-tool form requirements before dispatch.
func validate(tool Tool, input ToolInput) error {
	switch tool {
	case ToolNotes, ToolQuiz:
		if strings.TrimSpace(input.Topic) == "" {
			return ErrTopicRequired
		}
	case ToolVision:
		if len(input.FileData) == 0 {
			return ErrFileRequired
		}
	case ToolPDF:
		if strings.TrimSpace(input.Topic) == "" {
			return ErrTopicRequired
		}
		if len(input.FileData) == 0 {
			return ErrFileRequired
		}
	}
	return nil
}

// Generate runs the open tool against the backend. On success the
// session moves to the result state; on any error it closes, matching
// the modal behavior. A limit-reached error is returned as-is so the
// caller can offer the ad reward flow. A call superseded by a newer
// Generate, Open, or Close returns an error without touching the
// session, so a slow earlier response can never overwrite a newer one.
func (f *ToolFlow) Generate(ctx context.Context, input ToolInput) (*ToolResult, error) {
	f.mu.Lock()
	if f.state == StateClosed {
		f.mu.Unlock()
		return nil, ErrNoToolOpen
	}
	tool := f.tool
	if err := validate(tool, input); err != nil {
		f.mu.Unlock()
		return nil, err
	}

	f.cancelInFlight()
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	gen := f.gen
	f.state = StateLoading
	f.mu.Unlock()

	result, err := f.dispatch(ctx, tool, input)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		// A newer generation, Open, or Close took over the session
		// while this call was in flight; its state is not ours to
		// touch anymore.
		if err != nil {
			return nil, err
		}
		return nil, ctx.Err()
	}
	f.cancel = nil
	if err != nil {
		f.tool = ""
		f.state = StateClosed
		return nil, err
	}
	f.state = StateResult
	return result, nil
}

func (f *ToolFlow) dispatch(ctx context.Context, tool Tool, input ToolInput) (*ToolResult, error) {
	switch tool {
	case ToolNotes:
		resp, err := f.client.GenerateNotes(ctx, input.Subject, input.Topic)
		if err != nil {
			return nil, err
		}
		return &ToolResult{Tool: tool, Content: resp.Notes, QuestionsLeft: resp.QuestionsLeft}, nil

	case ToolQuiz:
		resp, err := f.client.GenerateQuiz(ctx, input.Subject, input.Topic)
		if err != nil {
			return nil, err
		}
		return &ToolResult{
			Tool:          tool,
			Quiz:          NewQuizFlow(f.client, input.Topic, resp.Quiz),
			QuestionsLeft: resp.QuestionsLeft,
		}, nil

	case ToolVision:
		resp, err := f.client.VisionAsk(ctx, input.FileName, input.FileData, input.Topic)
		if err != nil {
			return nil, err
		}
		return &ToolResult{Tool: tool, Content: resp.Answer, QuestionsLeft: resp.QuestionsLeft}, nil

	case ToolPDF:
		resp, err := f.client.PDFChat(ctx, input.FileName, input.FileData, input.Topic)
		if err != nil {
			return nil, err
		}
		return &ToolResult{Tool: tool, Content: resp.Answer, QuestionsLeft: resp.QuestionsLeft}, nil
	}
	return nil, ErrUnknownTool
}
