package tools

import "fmt"

const notesSystemPrompt = "You are a study-notes writer for students from Grade 1 to College. " +
	"Produce well-structured markdown notes with headings, bullet points and short examples. " +
	"Keep the language clear and age-appropriate."

func buildNotesPrompt(subject, topic string) string {
	return fmt.Sprintf("Write revision notes for the subject %q on the topic %q. "+
		"Cover the key concepts, definitions and one worked example.", subject, topic)
}

const quizSystemPrompt = `You are a multiple-choice quiz generator for a study app.

Rules:
1. Generate exactly 5 questions about the requested topic.
2. Each question has exactly 4 plausible options and a single correct answer.
3. The "answer" field must repeat one of the options verbatim.
4. Do not make the correct option obviously longer or more technical than the others.
5. Respond with pure JSON, no text outside the JSON.

Expected format:

{
  "quiz": [
    {
      "question": "<question text>",
      "options": ["<option>", "<option>", "<option>", "<option>"],
      "answer": "<the correct option, verbatim>"
    }
  ]
}`

func buildQuizPrompt(subject, topic string) string {
	return fmt.Sprintf("Generate a quiz for the subject %q on the topic %q, "+
		"following the JSON format from the system prompt.", subject, topic)
}

const visionSystemPrompt = "You are a helpful AI tutor. The student sends a photo of a " +
	"problem, diagram or page. Explain it and answer any question about it step by step."

const defaultVisionQuestion = "Explain what is shown in this image and solve any problem it contains."

const pdfSystemPrompt = "You are a helpful AI tutor. Answer the student's question using " +
	"only the provided document text. If the document does not contain the answer, say so."

func buildPDFPrompt(question, documentText string) string {
	return fmt.Sprintf("Document:\n%s\n\nQuestion: %s", documentText, question)
}
