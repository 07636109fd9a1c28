package tutor

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a helpful AI tutor for students from Grade 1 to College. " +
	"Provide clear explanations and code examples when needed."

// RefusalAnswer is returned for subjects the tutor does not cover.
const RefusalAnswer = "I do not answer questions related to Hindi, English Literature, or Sanskrit."

var forbiddenSubjects = map[string]bool{
	"hindi":              true,
	"english literature": true,
	"sanskrit":           true,
}

// IsForbiddenSubject reports whether the subject is refused outright.
func IsForbiddenSubject(subject string) bool {
	return forbiddenSubjects[strings.ToLower(strings.TrimSpace(subject))]
}

// BuildUserPrompt frames the student's question with its subject.
func BuildUserPrompt(subject, question string) string {
	if strings.TrimSpace(subject) == "" {
		subject = "General"
	}
	return fmt.Sprintf("Subject: %s. Question: %s", subject, question)
}
