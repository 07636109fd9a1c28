package console

import "testing"

func TestTranscriptAppendAndResolve(t *testing.T) {
	tr := NewTranscript(nil)

	tr.Append(RoleUser, "What is 2+2?")
	handle := tr.AppendPending("Thinking...")

	if !tr.HasPending() {
		t.Error("HasPending = false with an open placeholder")
	}

	tr.Resolve(handle, RoleAssistant, "Four.")

	msgs := tr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	if msgs[1].Text != "Four." || msgs[1].Pending {
		t.Errorf("resolved message = %+v", msgs[1])
	}
	if tr.HasPending() {
		t.Error("HasPending = true after resolve")
	}

	// Resolving twice is a no-op.
	tr.Resolve(handle, RoleSystem, "overwritten")
	if got := tr.Messages()[1].Text; got != "Four." {
		t.Errorf("double resolve changed message to %q", got)
	}
}

func TestTranscriptResolveOutOfRange(t *testing.T) {
	tr := NewTranscript(nil)
	tr.Resolve(0, RoleAssistant, "nothing here")
	tr.Resolve(-1, RoleAssistant, "nothing here")
	if len(tr.Messages()) != 0 {
		t.Error("out-of-range resolve created messages")
	}
}

func TestTranscriptEveryQuestionGetsOneReply(t *testing.T) {
	tr := NewTranscript(nil)

	for i := 0; i < 10; i++ {
		tr.Append(RoleUser, "question")
		h := tr.AppendPending("Thinking...")
		tr.Resolve(h, RoleAssistant, "answer")
	}

	msgs := tr.Messages()
	var users, answers int
	for _, m := range msgs {
		switch {
		case m.Pending:
			t.Errorf("unresolved placeholder: %+v", m)
		case m.Role == RoleUser:
			users++
		case m.Role == RoleAssistant:
			answers++
		}
	}
	if users != 10 || answers != 10 {
		t.Errorf("users = %d, answers = %d, want 10 each", users, answers)
	}
}

func TestTranscriptCredits(t *testing.T) {
	var seen []int
	tr := NewTranscript(func(left int) { seen = append(seen, left) })

	if _, ok := tr.Credits(); ok {
		t.Error("Credits reported a balance before any update")
	}

	tr.UpdateCredits(4)
	tr.UpdateCredits(3)

	left, ok := tr.Credits()
	if !ok || left != 3 {
		t.Errorf("Credits = %d, %v; want 3, true", left, ok)
	}
	if len(seen) != 2 || seen[0] != 4 || seen[1] != 3 {
		t.Errorf("hook saw %v, want [4 3]", seen)
	}
}
